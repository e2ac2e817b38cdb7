package query

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/qfilter/filter"
)

var (
	// ErrUnknownField indicates a field that is not a column of the selectable.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnsupportedType indicates an operator that cannot apply to a column type.
	ErrUnsupportedType = errors.New("operator not supported for column type")

	// ErrConversion indicates a value that cannot be converted to the column type.
	ErrConversion = errors.New("value conversion failed")

	// ErrPagingUnsupported indicates a page requested on a selectable without paging.
	ErrPagingUnsupported = errors.New("selectable does not support paging")

	// ErrInvalidRequest indicates malformed paging parameters or query string.
	ErrInvalidRequest = errors.New("invalid request")
)

// UnknownFieldError reports a field missing from the selectable's columns.
type UnknownFieldError struct {
	Field      string
	Selectable string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("query: column %q not found in %q", e.Field, e.Selectable)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// UnsupportedTypeError reports an operator applied to a column of the wrong type,
// e.g. like on an integer column.
type UnsupportedTypeError struct {
	Field    string
	Operator filter.Operator
	Type     Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("query: cannot apply %q to column %q of type %s", e.Operator, e.Field, e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// ConversionError reports a value that cannot be converted to its column type.
type ConversionError struct {
	Field string
	Type  Type
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("query: cannot convert %v (%T) to %s for column %q: %v", e.Value, e.Value, e.Type, e.Field, e.Err)
}

func (e *ConversionError) Unwrap() []error { return []error{ErrConversion, e.Err} }
