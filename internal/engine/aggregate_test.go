package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollup_SumsStockAndSales(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	v1 := variation(11, 10, 2)
	v1.TotalSales = 4
	v2 := variation(12, 10, 5)
	v2.TotalSales = 1
	v3 := variation(13, 10, 0)
	v3.StockQuantity = nil
	seedProduct(t, s, v1)
	seedProduct(t, s, v2)
	seedProduct(t, s, v3)

	rollup, err := e.Rollup(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(10), rollup.ParentID)
	assert.Equal(t, 7, rollup.TotalStock)
	assert.Equal(t, 5, rollup.TotalSales)
	assert.Equal(t, DefaultColors.Medium, rollup.Color)
}

func TestRollup_NoVariations(t *testing.T) {
	e, _ := newTestEngine(t)

	rollup, err := e.Rollup(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 0, rollup.TotalStock)
	assert.Equal(t, 0, rollup.TotalSales)
	assert.Equal(t, DefaultColors.Low, rollup.Color)
}

func TestRollup_IgnoresOtherParents(t *testing.T) {
	e, s := newTestEngine(t)
	seedProduct(t, s, variation(11, 10, 2))
	seedProduct(t, s, variation(21, 20, 100))

	rollup, err := e.Rollup(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 2, rollup.TotalStock)
}

func TestRollup_NegativeQuantitiesSum(t *testing.T) {
	e, s := newTestEngine(t)
	seedProduct(t, s, variation(11, 10, -3))
	seedProduct(t, s, variation(12, 10, 5))

	rollup, err := e.Rollup(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 2, rollup.TotalStock)
}
