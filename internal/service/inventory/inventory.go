package inventory

import (
	"context"
	"fmt"
	"strings"

	"ead-service/internal/domain/inventory"
	xerrors "ead-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Repository interface {
	CreateProduct(ctx context.Context, name string, quantity int) (*inventory.Product, error)
	ListProducts(ctx context.Context) ([]inventory.Product, error)
	GetProduct(ctx context.Context, id int64) (*inventory.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateWithdrawal(ctx context.Context, beneficiary string, items []inventory.WithdrawalItem) (*inventory.WithdrawalRecord, error)
	ListWithdrawals(ctx context.Context) ([]inventory.WithdrawalRecord, error)
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddProduct registers a new stock line. Names are trimmed and must be
// unique; the initial quantity may be zero but never negative.
func (s *Service) AddProduct(ctx context.Context, req *inventory.CreateProductRequest) (*inventory.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required: %w", xerrors.ErrInvalidInput)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be >= 0: %w", xerrors.ErrInvalidInput)
	}

	p, err := s.repo.CreateProduct(ctx, name, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product registered", zap.String("name", p.Name), zap.Int("quantity", p.Quantity))
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// Withdraw validates and finalizes a stock withdrawal. Items for the same
// product are merged first so the stock check sees the aggregate quantity;
// any shortfall rejects the whole withdrawal before any mutation.
func (s *Service) Withdraw(ctx context.Context, req *inventory.WithdrawRequest) (*inventory.WithdrawalRecord, error) {
	beneficiary := strings.TrimSpace(req.BeneficiaryName)
	if beneficiary == "" {
		return nil, fmt.Errorf("beneficiary name is required: %w", xerrors.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("withdrawal needs at least one item: %w", xerrors.ErrInvalidInput)
	}

	merged, err := mergeItems(req.Items)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	available := make(map[string]int, len(products))
	for _, p := range products {
		available[p.Name] = p.Quantity
	}

	for _, item := range merged {
		stock, ok := available[item.ProductName]
		if !ok {
			return nil, fmt.Errorf("product %q: %w", item.ProductName, xerrors.ErrNotFound)
		}
		if item.Quantity > stock {
			return nil, fmt.Errorf("product %q has %d in stock, requested %d: %w",
				item.ProductName, stock, item.Quantity, xerrors.ErrInsufficientStock)
		}
	}

	record, err := s.repo.CreateWithdrawal(ctx, beneficiary, merged)
	if err != nil {
		return nil, err
	}
	s.logger.Info("withdrawal finalized",
		zap.Int64("withdrawal_id", record.ID),
		zap.String("beneficiary", record.BeneficiaryName),
		zap.Int("items", len(record.Items)),
	)
	return record, nil
}

func (s *Service) History(ctx context.Context) ([]inventory.WithdrawalRecord, error) {
	return s.repo.ListWithdrawals(ctx)
}

// mergeItems collapses duplicate product lines into one aggregate quantity,
// preserving first-seen order.
func mergeItems(items []inventory.WithdrawalItem) ([]inventory.WithdrawalItem, error) {
	index := make(map[string]int)
	var merged []inventory.WithdrawalItem
	for _, item := range items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			return nil, fmt.Errorf("item product name is required: %w", xerrors.ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item quantity must be >= 1: %w", xerrors.ErrInvalidInput)
		}
		if i, ok := index[name]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[name] = len(merged)
		merged = append(merged, inventory.WithdrawalItem{ProductName: name, Quantity: item.Quantity})
	}
	return merged, nil
}
