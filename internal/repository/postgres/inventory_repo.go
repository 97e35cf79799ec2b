package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ead-service/internal/domain/inventory"
	xerrors "ead-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type InventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// EnsureSchema creates the inventory tables if they do not exist yet.
func (r *InventoryRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Pool().Exec(ctx, `
		CREATE TABLE IF NOT EXISTS h2e_products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS h2e_withdrawals (
			id BIGSERIAL PRIMARY KEY,
			beneficiary_name TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL DEFAULT now(),
			items JSONB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure inventory schema: %w", err)
	}
	return nil
}

// ========== Product Methods ==========

// CreateProduct inserts a new product. A duplicate name is a conflict.
func (r *InventoryRepository) CreateProduct(ctx context.Context, name string, quantity int) (*inventory.Product, error) {
	query := `
		INSERT INTO h2e_products (name, quantity)
		VALUES ($1, $2)
		RETURNING id, name, quantity, created_at
	`

	var p inventory.Product
	err := r.db.Pool().QueryRow(ctx, query, name, quantity).Scan(&p.ID, &p.Name, &p.Quantity, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, xerrors.ErrConflict
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &p, nil
}

// ListProducts returns all products ordered by name.
func (r *InventoryRepository) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	query := `
		SELECT id, name, quantity, created_at
		FROM h2e_products
		ORDER BY name
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []inventory.Product
	for rows.Next() {
		var p inventory.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetProduct retrieves a product by ID.
func (r *InventoryRepository) GetProduct(ctx context.Context, id int64) (*inventory.Product, error) {
	query := `
		SELECT id, name, quantity, created_at
		FROM h2e_products
		WHERE id = $1
	`

	var p inventory.Product
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Quantity, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// DeleteProduct removes a product row.
func (r *InventoryRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM h2e_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ========== Withdrawal Methods ==========

// CreateWithdrawal decrements stock for every item and records the
// withdrawal in one transaction. Rows are locked while checked so stock can
// never go negative; any shortfall aborts the whole withdrawal.
func (r *InventoryRepository) CreateWithdrawal(ctx context.Context, beneficiary string, items []inventory.WithdrawalItem) (*inventory.WithdrawalRecord, error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		var available int
		err := tx.QueryRow(ctx,
			`SELECT quantity FROM h2e_products WHERE name = $1 FOR UPDATE`,
			item.ProductName,
		).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %q: %w", item.ProductName, xerrors.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check stock for %q: %w", item.ProductName, err)
		}

		if item.Quantity > available {
			return nil, fmt.Errorf("product %q has %d in stock: %w", item.ProductName, available, xerrors.ErrInsufficientStock)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE h2e_products SET quantity = quantity - $1 WHERE name = $2`,
			item.Quantity, item.ProductName,
		); err != nil {
			return nil, fmt.Errorf("failed to decrement stock for %q: %w", item.ProductName, err)
		}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawal items: %w", err)
	}

	var record inventory.WithdrawalRecord
	err = tx.QueryRow(ctx, `
		INSERT INTO h2e_withdrawals (beneficiary_name, items)
		VALUES ($1, $2)
		RETURNING id, beneficiary_name, date
	`, beneficiary, itemsJSON).Scan(&record.ID, &record.BeneficiaryName, &record.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to record withdrawal: %w", err)
	}
	record.Items = items

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	return &record, nil
}

// ListWithdrawals returns the withdrawal history, newest first.
func (r *InventoryRepository) ListWithdrawals(ctx context.Context) ([]inventory.WithdrawalRecord, error) {
	query := `
		SELECT id, beneficiary_name, date, items
		FROM h2e_withdrawals
		ORDER BY date DESC
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	defer rows.Close()

	var records []inventory.WithdrawalRecord
	for rows.Next() {
		var rec inventory.WithdrawalRecord
		var itemsJSON []byte
		if err := rows.Scan(&rec.ID, &rec.BeneficiaryName, &rec.Date, &itemsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &rec.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal withdrawal items: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
