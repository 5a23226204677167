package store

import (
	"path/filepath"
	"testing"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// createTestStore opens a SQLite store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestProduct builds a simple product with sensible defaults.
func createTestProduct(id int64, name string, qty int) *catalog.Product {
	q := qty
	return &catalog.Product{
		ID:            id,
		Name:          name,
		Kind:          catalog.KindSimple,
		StockQuantity: &q,
		StockStatus:   catalog.StatusInStock,
		ManageStock:   true,
		RegularPrice:  10,
	}
}

// createTestVariation builds a variation under the given parent.
func createTestVariation(id, parentID int64, qty int) *catalog.Product {
	q := qty
	return &catalog.Product{
		ID:            id,
		Name:          "Variation",
		Kind:          catalog.KindVariation,
		ParentID:      parentID,
		StockQuantity: &q,
		StockStatus:   catalog.StatusInStock,
		ManageStock:   true,
	}
}
