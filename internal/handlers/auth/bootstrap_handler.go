package auth

import (
	"net/http"

	"ead-service/internal/pkg/jwt"
	"ead-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues operator tokens. Day-to-day identity tokens come
// from the upstream identity provider; this endpoint only exists so an
// operator can mint an admin token on a fresh deployment.
type AuthHandler struct {
	generator  *jwt.Generator
	secretHash string
	logger     *zap.Logger
}

func NewAuthHandler(generator *jwt.Generator, secretHash string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{generator: generator, secretHash: secretHash, logger: logger}
}

type bootstrapRequest struct {
	Principal string `json:"principal" binding:"required"`
	Secret    string `json:"secret" binding:"required"`
}

// Bootstrap exchanges the deployment secret for an admin access token.
// Disabled entirely when no secret hash is configured.
func (h *AuthHandler) Bootstrap(c *gin.Context) {
	if h.secretHash == "" {
		response.NotFound(c, "not found")
		return
	}

	var req bootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.secretHash), []byte(req.Secret)); err != nil {
		h.logger.Warn("bootstrap rejected", zap.String("principal", req.Principal))
		response.Unauthorized(c, "invalid secret")
		return
	}

	token, jti, err := h.generator.GenerateAdminToken(req.Principal)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	h.logger.Info("bootstrap admin token issued",
		zap.String("principal", req.Principal),
		zap.String("jti", jti))

	response.Success(c, 0, "token issued", gin.H{"token": token})
}
