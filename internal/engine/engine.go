package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// ProductStore is the engine's view of the catalog. The engine never
// creates or deletes products, only reads and mutates fields through
// this interface. Implemented by store.Store (SQLite) and
// store.MemoryStore.
type ProductStore interface {
	// Product returns the product with the given id, or an error
	// wrapping catalog.ErrNotFound.
	Product(ctx context.Context, id int64) (*catalog.Product, error)

	// SaveProduct persists the product's current field values.
	SaveProduct(ctx context.Context, p *catalog.Product) error

	// VariationsOf returns the live variations of a variable parent,
	// ordered by id.
	VariationsOf(ctx context.Context, parentID int64) ([]*catalog.Product, error)

	// AppendChange records one applied mutation in the change log.
	AppendChange(ctx context.Context, c catalog.Change) error
}

// Engine applies validated field mutations to the catalog: gate check,
// coercion, persistence, tier classification and - for variation stock
// writes - the synchronous parent rollup.
type Engine struct {
	store      ProductStore
	gate       *UsageGate
	thresholds Thresholds
	colors     ColorScheme
	licenseKey string
	tokens     TokenGenerator
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds sets the stock tier boundaries.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithColors sets the tier color tokens.
func WithColors(c ColorScheme) Option {
	return func(e *Engine) { e.colors = c }
}

// WithLicenseKey sets the operator's license key, consulted by the
// gate on every mutating call. Empty means unlicensed.
func WithLicenseKey(key string) Option {
	return func(e *Engine) { e.licenseKey = key }
}

// WithTokenGenerator overrides the batch token source (tests use
// FixedGenerator).
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithClock injects a time source for change-log timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine over the given store and gate.
func New(store ProductStore, gate *UsageGate, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		gate:       gate,
		thresholds: DefaultThresholds,
		colors:     DefaultColors,
		tokens:     UUIDv7Generator{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Gate exposes the engine's usage gate, mainly for the license check
// operation and diagnostics.
func (e *Engine) Gate() *UsageGate {
	return e.gate
}

// ParentRollup is the aggregate a variable product displays in place
// of its own (nonexistent) stock.
type ParentRollup struct {
	ParentID   int64  `json:"parent_id"`
	TotalStock int    `json:"total_stock"`
	TotalSales int    `json:"total_sales"`
	Color      string `json:"color"`
}

// UpdateResult is the outcome of a single-field mutation: the saved
// field values, the recomputed tier color, and the parent rollup when
// a variation's stock changed.
type UpdateResult struct {
	ProductID     int64               `json:"product_id"`
	Field         catalog.Field       `json:"field"`
	Name          string              `json:"name"`
	StockQuantity *int                `json:"stock_quantity"`
	StockStatus   catalog.StockStatus `json:"stock_status"`
	ManageStock   bool                `json:"manage_stock"`
	RegularPrice  float64             `json:"regular_price"`
	SalePrice     float64             `json:"sale_price"`
	Color         string              `json:"color"`
	Parent        *ParentRollup       `json:"parent,omitempty"`
}

// UpdateField applies one validated field mutation to one product.
//
// Order of operations: gate check, load, coerce+apply, save, change
// log, counter bump, classify, and - only when a variation's
// stock_quantity changed - the synchronous parent rollup. A failed
// save surfaces as *PersistenceError and leaves the counter untouched.
func (e *Engine) UpdateField(ctx context.Context, id int64, field catalog.Field, raw string) (*UpdateResult, error) {
	if err := e.gate.CheckAllowed(ctx, e.licenseKey); err != nil {
		return nil, err
	}

	p, err := e.store.Product(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, &NotFoundError{ProductID: id}
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}

	old, err := applyField(p, field, raw)
	if err != nil {
		return nil, err
	}

	if err := e.store.SaveProduct(ctx, p); err != nil {
		return nil, &PersistenceError{ProductID: id, Err: err}
	}

	e.logChange(ctx, p.ID, field, old, fieldValue(p, field), e.tokens.Generate())
	e.gate.RecordChange(ctx)

	res := &UpdateResult{
		ProductID:     p.ID,
		Field:         field,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		StockStatus:   p.StockStatus,
		ManageStock:   p.ManageStock,
		RegularPrice:  p.RegularPrice,
		SalePrice:     p.SalePrice,
		Color:         Classify(p.QuantityOrZero(), e.thresholds, e.colors),
	}

	// The parent's displayed total is always the live sum over its
	// variations, recomputed after every variation stock write.
	if p.IsVariation() && field == catalog.FieldStockQuantity && p.ParentID != 0 {
		rollup, err := e.Rollup(ctx, p.ParentID)
		if err != nil {
			slog.Warn("parent rollup failed", "parent_id", p.ParentID, "error", err)
		} else {
			res.Parent = rollup
		}
	}

	return res, nil
}

// CheckLicense validates the key (or the configured one when key is
// empty) through the gate's verdict cache.
func (e *Engine) CheckLicense(ctx context.Context, key string) Verdict {
	if key == "" {
		key = e.licenseKey
	}
	return e.gate.CheckLicense(ctx, key)
}

// Classify exposes the configured classification for a quantity.
func (e *Engine) Classify(qty int) string {
	return Classify(qty, e.thresholds, e.colors)
}

// logChange appends an audit row. The mutation already succeeded, so a
// change-log failure is logged rather than surfaced.
func (e *Engine) logChange(ctx context.Context, productID int64, field catalog.Field, old, now, batchID string) {
	err := e.store.AppendChange(ctx, catalog.Change{
		ProductID: productID,
		Field:     field,
		OldValue:  old,
		NewValue:  now,
		BatchID:   batchID,
		ChangedAt: e.now(),
	})
	if err != nil {
		slog.Warn("append change log", "product_id", productID, "field", field, "error", err)
	}
}
