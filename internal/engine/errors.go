package engine

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned when a bulk call carries an empty id list.
// An empty selection aborts the batch before the gate is consulted.
var ErrNoSelection = errors.New("no products selected")

// UnsupportedFieldError is returned when a field name is outside the
// closed editable set, or outside the bulk-editable subset for bulk
// operations.
type UnsupportedFieldError struct {
	Field string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported field %q", e.Field)
}

// InvalidEnumValueError is returned when a value fails strict
// enumeration validation (currently only stock_status).
type InvalidEnumValueError struct {
	Field string
	Value string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// NotFoundError is returned when a product id does not resolve.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// DeniedError is the gate's refusal to mutate. It carries the
// human-readable reason shown to the operator.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return "denied: " + e.Reason
}

// PersistenceError wraps a failed store write. The change counter is
// not incremented when a write fails.
type PersistenceError struct {
	ProductID int64
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist product %d: %v", e.ProductID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsUnsupportedField reports whether err is an UnsupportedFieldError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedField(err error) bool {
	var ue *UnsupportedFieldError
	return errors.As(err, &ue)
}

// IsInvalidEnumValue reports whether err is an InvalidEnumValueError.
func IsInvalidEnumValue(err error) bool {
	var ie *InvalidEnumValueError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsDenied reports whether err is a DeniedError.
func IsDenied(err error) bool {
	var de *DeniedError
	return errors.As(err, &de)
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
