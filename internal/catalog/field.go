package catalog

import "time"

// Field names the editable product attributes. The set is closed:
// unknown strings fail at parse time, never at dispatch time.
type Field string

const (
	FieldStockQuantity Field = "stock_quantity"
	FieldStockStatus   Field = "stock_status"
	FieldManageStock   Field = "manage_stock"
	FieldRegularPrice  Field = "regular_price"
	FieldSalePrice     Field = "sale_price"
	FieldName          Field = "name"
)

// ParseField validates a raw field name against the closed set.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldStockQuantity, FieldStockStatus, FieldManageStock,
		FieldRegularPrice, FieldSalePrice, FieldName:
		return Field(s), true
	}
	return "", false
}

// BulkEditable reports whether the field may be targeted by a bulk
// operation. Bulk edits are restricted to the numeric fields; status,
// manage-stock and name edits are single-item only.
func (f Field) BulkEditable() bool {
	switch f {
	case FieldStockQuantity, FieldRegularPrice, FieldSalePrice:
		return true
	}
	return false
}

// Operation is the arithmetic transformation a bulk edit applies to
// each selected product's current value.
type Operation string

const (
	OpSet             Operation = "set"
	OpIncrease        Operation = "increase"
	OpDecrease        Operation = "decrease"
	OpIncreasePercent Operation = "increase_percent"
	OpDecreasePercent Operation = "decrease_percent"
)

// ParseOperation validates a raw operation name against the closed set.
func ParseOperation(s string) (Operation, bool) {
	switch Operation(s) {
	case OpSet, OpIncrease, OpDecrease, OpIncreasePercent, OpDecreasePercent:
		return Operation(s), true
	}
	return "", false
}

// Change is one audit row: a single applied field mutation. Bulk items
// share a batch token; single updates carry their own.
type Change struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Field     Field     `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	BatchID   string    `json:"batch_id,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
