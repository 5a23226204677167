package engine

import (
	"context"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// BulkResult summarizes one bulk operation. SkippedIDs preserves the
// order in which items were skipped. LimitReached warns that the free
// allowance was crossed during (or before) this batch without a valid
// license; the writes already applied stand regardless.
type BulkResult struct {
	BatchID      string  `json:"batch_id"`
	UpdatedCount int     `json:"updated_count"`
	SkippedIDs   []int64 `json:"skipped_ids"`
	LimitReached bool    `json:"limit_reached"`
}

// BulkApply runs one arithmetic transformation over a selection of
// products, isolating per-item failures.
//
// The gate is consulted once, before the loop; a denial aborts the
// whole call. Inside the loop nothing aborts the batch: a missing
// product, a variable-kind product (which has no directly settable
// stock or price) or a failed save puts the id in SkippedIDs and the
// loop continues. Every applied item bumps the change counter and
// gets a change-log row tagged with the batch token.
func (e *Engine) BulkApply(ctx context.Context, ids []int64, field catalog.Field, op catalog.Operation, value float64) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoSelection
	}
	if !field.BulkEditable() {
		return nil, &UnsupportedFieldError{Field: string(field)}
	}

	if err := e.gate.CheckAllowed(ctx, e.licenseKey); err != nil {
		return nil, err
	}

	res := &BulkResult{
		BatchID:    e.tokens.Generate(),
		SkippedIDs: []int64{},
	}

	for _, id := range ids {
		p, err := e.store.Product(ctx, id)
		if err != nil {
			res.SkippedIDs = append(res.SkippedIDs, id)
			continue
		}

		// Variable products only ever display an aggregate; their
		// stock and prices are not directly settable.
		if p.Kind == catalog.KindVariable {
			res.SkippedIDs = append(res.SkippedIDs, id)
			continue
		}

		current, ok := currentValue(p, field)
		if !ok {
			res.SkippedIDs = append(res.SkippedIDs, id)
			continue
		}

		next, ok := transform(current, op, value)
		if !ok {
			res.SkippedIDs = append(res.SkippedIDs, id)
			continue
		}

		old := fieldValue(p, field)
		applyBulkValue(p, field, next)

		if err := e.store.SaveProduct(ctx, p); err != nil {
			res.SkippedIDs = append(res.SkippedIDs, id)
			continue
		}

		e.logChange(ctx, p.ID, field, old, fieldValue(p, field), res.BatchID)
		e.gate.RecordChange(ctx)
		res.UpdatedCount++
	}

	if res.UpdatedCount > 0 {
		res.LimitReached = e.gate.LimitReached(ctx, e.licenseKey)
	}

	return res, nil
}

// currentValue reads the numeric value the operation starts from. An
// unmanaged stock quantity reads as 0, so increments start counting
// rather than skipping.
func currentValue(p *catalog.Product, field catalog.Field) (float64, bool) {
	switch field {
	case catalog.FieldStockQuantity:
		return float64(p.QuantityOrZero()), true
	case catalog.FieldRegularPrice:
		return p.RegularPrice, true
	case catalog.FieldSalePrice:
		return p.SalePrice, true
	}
	return 0, false
}

// transform computes the new value for one item.
func transform(current float64, op catalog.Operation, value float64) (float64, bool) {
	switch op {
	case catalog.OpSet:
		return value, true
	case catalog.OpIncrease:
		return current + value, true
	case catalog.OpDecrease:
		return current - value, true
	case catalog.OpIncreasePercent:
		return current * (1 + value/100), true
	case catalog.OpDecreasePercent:
		return current * (1 - value/100), true
	}
	return 0, false
}

// applyBulkValue writes the computed value back onto the product.
// Stock quantities truncate toward zero; prices keep the full decimal.
func applyBulkValue(p *catalog.Product, field catalog.Field, value float64) {
	switch field {
	case catalog.FieldStockQuantity:
		qty := int(value)
		p.StockQuantity = &qty
	case catalog.FieldRegularPrice:
		p.RegularPrice = value
	case catalog.FieldSalePrice:
		p.SalePrice = value
	}
}
