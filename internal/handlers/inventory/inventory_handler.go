package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"ead-service/internal/domain/inventory"
	xerrors "ead-service/internal/pkg/errors"
	"ead-service/internal/pkg/response"
	invsvc "ead-service/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventory *invsvc.Service
}

func NewInventoryHandler(inventory *invsvc.Service) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// AddProduct registers a new stock line.
func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var req inventory.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid product", err)
		return
	}

	p, err := h.inventory.AddProduct(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrConflict):
			response.Error(c, http.StatusConflict, "product already exists", err)
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "invalid product", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to add product", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "product added", p)
}

// ListProducts returns the stock, ordered by name.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products, err := h.inventory.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list products", err)
		return
	}
	response.Success(c, 0, "products retrieved", products)
}

// DeleteProduct removes a stock line.
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	if err := h.inventory.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete product", err)
		return
	}

	response.Success(c, 0, "product deleted", nil)
}

// Withdraw finalizes a stock withdrawal.
func (h *InventoryHandler) Withdraw(c *gin.Context) {
	var req inventory.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid withdrawal", err)
		return
	}

	record, err := h.inventory.Withdraw(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInsufficientStock):
			response.Error(c, http.StatusUnprocessableEntity, "insufficient stock", err)
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "invalid withdrawal", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to finalize withdrawal", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "withdrawal finalized", record)
}

// History returns the withdrawal history, newest first.
func (h *InventoryHandler) History(c *gin.Context) {
	records, err := h.inventory.History(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list withdrawals", err)
		return
	}
	response.Success(c, 0, "withdrawals retrieved", records)
}
