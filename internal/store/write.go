package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// SaveProduct upserts the product's field values. The engine only ever
// saves products it previously loaded, but the upsert also serves the
// import path, which writes products wholesale.
func (s *Store) SaveProduct(ctx context.Context, p *catalog.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products
		(id, name, kind, parent_id, stock_quantity, stock_status, manage_stock, regular_price, sale_price, total_sales)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			parent_id = excluded.parent_id,
			stock_quantity = excluded.stock_quantity,
			stock_status = excluded.stock_status,
			manage_stock = excluded.manage_stock,
			regular_price = excluded.regular_price,
			sale_price = excluded.sale_price,
			total_sales = excluded.total_sales
	`,
		p.ID,
		p.Name,
		string(p.Kind),
		p.ParentID,
		nullableQty(p.StockQuantity),
		string(p.StockStatus),
		boolToInt(p.ManageStock),
		p.RegularPrice,
		p.SalePrice,
		p.TotalSales,
	)
	if err != nil {
		return fmt.Errorf("save product %d: %w", p.ID, err)
	}

	return nil
}

// AppendChange inserts one audit row. Timestamps are stored as
// RFC 3339 with nanoseconds so ordering survives the TEXT column.
func (s *Store) AppendChange(ctx context.Context, c catalog.Change) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO change_log
		(product_id, field, old_value, new_value, batch_id, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		c.ProductID,
		string(c.Field),
		c.OldValue,
		c.NewValue,
		c.BatchID,
		c.ChangedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append change: %w", err)
	}

	return nil
}

// SetChangeCount persists the usage gate's counter.
func (s *Store) SetChangeCount(ctx context.Context, n int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (name, value)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, changeCountCounter, n)
	if err != nil {
		return fmt.Errorf("set change count: %w", err)
	}

	return nil
}

// ImportProducts writes a batch of products in one transaction.
// Existing ids are overwritten. Used by the import command to seed or
// refresh the local catalog; the engine itself never creates products.
func (s *Store) ImportProducts(ctx context.Context, products []*catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import products: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products
		(id, name, kind, parent_id, stock_quantity, stock_status, manage_stock, regular_price, sale_price, total_sales)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			parent_id = excluded.parent_id,
			stock_quantity = excluded.stock_quantity,
			stock_status = excluded.stock_status,
			manage_stock = excluded.manage_stock,
			regular_price = excluded.regular_price,
			sale_price = excluded.sale_price,
			total_sales = excluded.total_sales
	`)
	if err != nil {
		return fmt.Errorf("import products: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			string(p.Kind),
			p.ParentID,
			nullableQty(p.StockQuantity),
			string(p.StockStatus),
			boolToInt(p.ManageStock),
			p.RegularPrice,
			p.SalePrice,
			p.TotalSales,
		)
		if err != nil {
			return fmt.Errorf("import product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import products: commit: %w", err)
	}

	return nil
}

func nullableQty(qty *int) any {
	if qty == nil {
		return nil
	}
	return *qty
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
