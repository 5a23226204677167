package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseField(t *testing.T) {
	valid := []string{"stock_quantity", "stock_status", "manage_stock", "regular_price", "sale_price", "name"}
	for _, s := range valid {
		f, ok := ParseField(s)
		assert.True(t, ok, "field %q should parse", s)
		assert.Equal(t, Field(s), f)
	}

	for _, s := range []string{"", "weight", "Stock_Quantity", "price"} {
		_, ok := ParseField(s)
		assert.False(t, ok, "field %q should not parse", s)
	}
}

func TestField_BulkEditable(t *testing.T) {
	assert.True(t, FieldStockQuantity.BulkEditable())
	assert.True(t, FieldRegularPrice.BulkEditable())
	assert.True(t, FieldSalePrice.BulkEditable())

	assert.False(t, FieldStockStatus.BulkEditable())
	assert.False(t, FieldManageStock.BulkEditable())
	assert.False(t, FieldName.BulkEditable())
}

func TestParseOperation(t *testing.T) {
	valid := []string{"set", "increase", "decrease", "increase_percent", "decrease_percent"}
	for _, s := range valid {
		op, ok := ParseOperation(s)
		assert.True(t, ok, "operation %q should parse", s)
		assert.Equal(t, Operation(s), op)
	}

	for _, s := range []string{"", "multiply", "SET", "add"} {
		_, ok := ParseOperation(s)
		assert.False(t, ok, "operation %q should not parse", s)
	}
}

func TestParseStockStatus(t *testing.T) {
	st, ok := ParseStockStatus("instock")
	assert.True(t, ok)
	assert.Equal(t, StatusInStock, st)

	st, ok = ParseStockStatus("outofstock")
	assert.True(t, ok)
	assert.Equal(t, StatusOutOfStock, st)

	for _, s := range []string{"", "onbackorder", "in stock", "INSTOCK"} {
		_, ok := ParseStockStatus(s)
		assert.False(t, ok, "status %q should not parse", s)
	}
}

func TestProduct_QuantityOrZero(t *testing.T) {
	p := &Product{}
	assert.Equal(t, 0, p.QuantityOrZero())

	qty := -2
	p.StockQuantity = &qty
	assert.Equal(t, -2, p.QuantityOrZero())
}

func TestProduct_IsVariation(t *testing.T) {
	assert.True(t, (&Product{Kind: KindVariation}).IsVariation())
	assert.False(t, (&Product{Kind: KindSimple}).IsVariation())
	assert.False(t, (&Product{Kind: KindVariable}).IsVariation())
}

func TestProduct_CloneIsDeep(t *testing.T) {
	qty := 5
	p := &Product{ID: 1, Name: "Widget", StockQuantity: &qty}

	c := p.Clone()
	*c.StockQuantity = 99
	c.Name = "Changed"

	assert.Equal(t, 5, *p.StockQuantity)
	assert.Equal(t, "Widget", p.Name)
}

func TestProduct_CloneNilQuantity(t *testing.T) {
	p := &Product{ID: 1}

	c := p.Clone()

	assert.Nil(t, c.StockQuantity)
}
