package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

const productColumns = `id, name, kind, parent_id, stock_quantity, stock_status, manage_stock, regular_price, sale_price, total_sales`

// Product returns the product with the given id, or an error wrapping
// catalog.ErrNotFound.
func (s *Store) Product(ctx context.Context, id int64) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ?
	`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read product %d: %w", id, err)
	}
	return p, nil
}

// VariationsOf returns the variations of a variable parent, ordered by
// id for deterministic rollups.
//
// Returns an empty slice (not nil) when the parent has no variations.
func (s *Store) VariationsOf(ctx context.Context, parentID int64) ([]*catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE parent_id = ? AND kind = ?
		ORDER BY id ASC
	`, parentID, catalog.KindVariation)
	if err != nil {
		return nil, fmt.Errorf("query variations: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListProducts returns every product ordered by name (case-insensitive)
// then id. Variations are included; callers that present a catalog view
// filter them out by kind.
func (s *Store) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name COLLATE NOCASE ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// RecentChanges returns the newest change-log rows, most recent first,
// capped at limit (or all rows when limit <= 0).
func (s *Store) RecentChanges(ctx context.Context, limit int) ([]catalog.Change, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, field, old_value, new_value, batch_id, changed_at
		FROM change_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query change log: %w", err)
	}
	defer rows.Close()

	changes := []catalog.Change{}
	for rows.Next() {
		var (
			c         catalog.Change
			field     string
			old       sql.NullString
			now       sql.NullString
			changedAt string
		)
		if err := rows.Scan(&c.ID, &c.ProductID, &field, &old, &now, &c.BatchID, &changedAt); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		c.Field = catalog.Field(field)
		c.OldValue = old.String
		c.NewValue = now.String
		ts, err := time.Parse(time.RFC3339Nano, changedAt)
		if err != nil {
			return nil, fmt.Errorf("parse change time %q: %w", changedAt, err)
		}
		c.ChangedAt = ts
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate change log: %w", err)
	}

	return changes, nil
}

// ChangeCount returns the persisted change counter (0 when the row has
// never been written).
func (s *Store) ChangeCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM counters WHERE name = ?
	`, changeCountCounter).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read change count: %w", err)
	}
	return n, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanProduct.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p           catalog.Product
		kind        string
		status      string
		qty         sql.NullInt64
		manageStock int
	)
	err := row.Scan(
		&p.ID, &p.Name, &kind, &p.ParentID, &qty, &status,
		&manageStock, &p.RegularPrice, &p.SalePrice, &p.TotalSales,
	)
	if err != nil {
		return nil, err
	}

	p.Kind = catalog.Kind(kind)
	p.StockStatus = catalog.StockStatus(status)
	p.ManageStock = manageStock != 0
	if qty.Valid {
		n := int(qty.Int64)
		p.StockQuantity = &n
	}

	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]*catalog.Product, error) {
	products := []*catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
