package engine

import (
	"context"
	"fmt"
)

// Rollup recomputes a variable parent's aggregate from its live
// variations: stock quantities and total sales are summed, and the
// stock total is classified with the current thresholds. A variation
// without a managed quantity contributes 0 stock.
//
// The rollup is never cached; each call reads the variation set fresh
// from the store.
func (e *Engine) Rollup(ctx context.Context, parentID int64) (*ParentRollup, error) {
	variations, err := e.store.VariationsOf(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("load variations of %d: %w", parentID, err)
	}

	totalStock := 0
	totalSales := 0
	for _, v := range variations {
		if v.StockQuantity != nil {
			totalStock += *v.StockQuantity
		}
		totalSales += v.TotalSales
	}

	return &ParentRollup{
		ParentID:   parentID,
		TotalStock: totalStock,
		TotalSales: totalSales,
		Color:      Classify(totalStock, e.thresholds, e.colors),
	}, nil
}
