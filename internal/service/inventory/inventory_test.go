package inventory

import (
	"context"
	"testing"

	"ead-service/internal/domain/inventory"
	xerrors "ead-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	products    []inventory.Product
	withdrawals []inventory.WithdrawalRecord
	nextID      int64
}

func (f *fakeRepo) CreateProduct(_ context.Context, name string, quantity int) (*inventory.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return nil, xerrors.ErrConflict
		}
	}
	f.nextID++
	p := inventory.Product{ID: f.nextID, Name: name, Quantity: quantity}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeRepo) ListProducts(_ context.Context) ([]inventory.Product, error) {
	return append([]inventory.Product(nil), f.products...), nil
}

func (f *fakeRepo) GetProduct(_ context.Context, id int64) (*inventory.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id int64) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakeRepo) CreateWithdrawal(_ context.Context, beneficiary string, items []inventory.WithdrawalItem) (*inventory.WithdrawalRecord, error) {
	for _, item := range items {
		for i := range f.products {
			if f.products[i].Name == item.ProductName {
				if f.products[i].Quantity < item.Quantity {
					return nil, xerrors.ErrInsufficientStock
				}
				f.products[i].Quantity -= item.Quantity
			}
		}
	}
	f.nextID++
	rec := inventory.WithdrawalRecord{ID: f.nextID, BeneficiaryName: beneficiary, Items: items}
	f.withdrawals = append(f.withdrawals, rec)
	return &rec, nil
}

func (f *fakeRepo) ListWithdrawals(_ context.Context) ([]inventory.WithdrawalRecord, error) {
	return append([]inventory.WithdrawalRecord(nil), f.withdrawals...), nil
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, zap.NewNop())
}

func TestAddProductValidation(t *testing.T) {
	svc := newService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "   ", Quantity: 5})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "Luvas", Quantity: -1})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	p, err := svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "  Luvas  ", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "Luvas", p.Name)

	_, err = svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "Luvas", Quantity: 3})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestWithdrawHappyPath(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "Capacete", Quantity: 5})
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "Luvas", Quantity: 10})
	require.NoError(t, err)

	rec, err := svc.Withdraw(ctx, &inventory.WithdrawRequest{
		BeneficiaryName: "João Souza",
		Items: []inventory.WithdrawalItem{
			{ProductName: "Capacete", Quantity: 2},
			{ProductName: "Luvas", Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "João Souza", rec.BeneficiaryName)
	assert.Len(t, rec.Items, 2)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, products[0].Quantity)
	assert.Equal(t, 6, products[1].Quantity)
}

func TestWithdrawAggregatesDuplicateItems(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, &inventory.CreateProductRequest{Name: "Capacete", Quantity: 5})
	require.NoError(t, err)

	// 3 + 3 exceeds the 5 in stock even though each line alone fits.
	_, err = svc.Withdraw(ctx, &inventory.WithdrawRequest{
		BeneficiaryName: "João",
		Items: []inventory.WithdrawalItem{
			{ProductName: "Capacete", Quantity: 3},
			{ProductName: "Capacete", Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, xerrors.ErrInsufficientStock)

	// Nothing was decremented by the rejected withdrawal.
	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, products[0].Quantity)

	// The aggregate fitting the stock goes through as one merged line.
	rec, err := svc.Withdraw(ctx, &inventory.WithdrawRequest{
		BeneficiaryName: "João",
		Items: []inventory.WithdrawalItem{
			{ProductName: "Capacete", Quantity: 2},
			{ProductName: "Capacete", Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, 5, rec.Items[0].Quantity)
}

func TestWithdrawUnknownProduct(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.Withdraw(context.Background(), &inventory.WithdrawRequest{
		BeneficiaryName: "João",
		Items:           []inventory.WithdrawalItem{{ProductName: "Inexistente", Quantity: 1}},
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestWithdrawValidation(t *testing.T) {
	svc := newService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, &inventory.WithdrawRequest{BeneficiaryName: " "})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.Withdraw(ctx, &inventory.WithdrawRequest{BeneficiaryName: "João"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.Withdraw(ctx, &inventory.WithdrawRequest{
		BeneficiaryName: "João",
		Items:           []inventory.WithdrawalItem{{ProductName: "Luvas", Quantity: 0}},
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestMergeItemsPreservesFirstSeenOrder(t *testing.T) {
	merged, err := mergeItems([]inventory.WithdrawalItem{
		{ProductName: "B", Quantity: 1},
		{ProductName: "A", Quantity: 2},
		{ProductName: "B", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, inventory.WithdrawalItem{ProductName: "B", Quantity: 4}, merged[0])
	assert.Equal(t, inventory.WithdrawalItem{ProductName: "A", Quantity: 2}, merged[1])
}
