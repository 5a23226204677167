package engine

import (
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// applyField validates raw input for one field and applies it to the
// product in memory. It returns the field's previous value formatted
// for the change log. The caller owns persistence and the counter.
//
// Coercion is deliberately lenient for numeric fields to stay
// compatible with the data the dashboard has historically accepted:
// non-numeric quantities and prices coerce to 0, and negative
// quantities are stored as-is. Stock status is the one strictly
// validated enum.
func applyField(p *catalog.Product, field catalog.Field, raw string) (old string, err error) {
	switch field {
	case catalog.FieldStockQuantity:
		old = formatQuantity(p.StockQuantity)
		qty := lenientInt(raw)
		p.StockQuantity = &qty

	case catalog.FieldStockStatus:
		old = string(p.StockStatus)
		status, ok := catalog.ParseStockStatus(raw)
		if !ok {
			return "", &InvalidEnumValueError{Field: string(field), Value: raw}
		}
		p.StockStatus = status

	case catalog.FieldManageStock:
		old = formatBool(p.ManageStock)
		// "yes" enables, anything else disables; never fails.
		p.ManageStock = raw == "yes"

	case catalog.FieldRegularPrice:
		old = formatPrice(p.RegularPrice)
		p.RegularPrice = lenientFloat(raw)

	case catalog.FieldSalePrice:
		old = formatPrice(p.SalePrice)
		p.SalePrice = lenientFloat(raw)

	case catalog.FieldName:
		old = p.Name
		p.Name = norm.NFC.String(raw)

	default:
		return "", &UnsupportedFieldError{Field: string(field)}
	}

	return old, nil
}

// fieldValue formats the current value of a field for the change log.
func fieldValue(p *catalog.Product, field catalog.Field) string {
	switch field {
	case catalog.FieldStockQuantity:
		return formatQuantity(p.StockQuantity)
	case catalog.FieldStockStatus:
		return string(p.StockStatus)
	case catalog.FieldManageStock:
		return formatBool(p.ManageStock)
	case catalog.FieldRegularPrice:
		return formatPrice(p.RegularPrice)
	case catalog.FieldSalePrice:
		return formatPrice(p.SalePrice)
	case catalog.FieldName:
		return p.Name
	}
	return ""
}

// lenientInt parses an integer, coercing unparsable input to 0.
// Negative values pass through unchanged.
func lenientInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// lenientFloat parses a decimal, coercing unparsable input to 0.
func lenientFloat(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

func formatQuantity(qty *int) string {
	if qty == nil {
		return ""
	}
	return strconv.Itoa(*qty)
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
