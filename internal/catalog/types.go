// Package catalog defines the product value objects the stock engine
// mutates and aggregates. The catalog itself is owned by an external
// store; this package only describes its shape.
package catalog

import "errors"

// ErrNotFound is returned (wrapped) by stores when a product id does
// not resolve to a live product.
var ErrNotFound = errors.New("product not found")

// Kind identifies the product type. Only simple products and variations
// carry directly editable stock; variable products expose an aggregate
// computed over their variations.
type Kind string

const (
	KindSimple    Kind = "simple"
	KindVariable  Kind = "variable"
	KindVariation Kind = "variation"
	KindGrouped   Kind = "grouped"
	KindExternal  Kind = "external"
)

// StockStatus is the binary availability flag on a product.
type StockStatus string

const (
	StatusInStock    StockStatus = "instock"
	StatusOutOfStock StockStatus = "outofstock"
)

// ParseStockStatus validates a raw status string against the closed set.
func ParseStockStatus(s string) (StockStatus, bool) {
	switch StockStatus(s) {
	case StatusInStock, StatusOutOfStock:
		return StockStatus(s), true
	}
	return "", false
}

// Product is the mutable view of a catalog entry.
//
// StockQuantity is a pointer because a product that does not manage
// stock has no quantity at all; nil contributes 0 to parent rollups.
// ParentID is set only for variations.
type Product struct {
	ID            int64
	Name          string
	Kind          Kind
	ParentID      int64
	StockQuantity *int
	StockStatus   StockStatus
	ManageStock   bool
	RegularPrice  float64
	SalePrice     float64
	TotalSales    int
}

// IsVariation reports whether the product is a variation of a variable
// parent.
func (p *Product) IsVariation() bool {
	return p.Kind == KindVariation
}

// QuantityOrZero returns the stock quantity, treating an unmanaged
// (nil) quantity as zero.
func (p *Product) QuantityOrZero() int {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}

// Clone returns a deep copy of the product. Stores hand out clones so
// callers can mutate freely before saving.
func (p *Product) Clone() *Product {
	c := *p
	if p.StockQuantity != nil {
		qty := *p.StockQuantity
		c.StockQuantity = &qty
	}
	return &c
}
