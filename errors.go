package unitconv

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput      = errors.New("missing input")
	ErrIncompatibleUnits = errors.New("incompatible units")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrOutOfRange        = errors.New("result out of range")
)

// Stable error codes shared by the rpc and http surfaces.
const (
	CodeMissingInput      = "missing_input"
	CodeIncompatibleUnits = "incompatible_units"
	CodeOutOfRange        = "out_of_range"
	CodeInternal          = "internal"
)

// ConversionError describes a rejected conversion request.
type ConversionError struct {
	Err    error
	From   string
	To     string
	Reason string
}

func (e *ConversionError) Error() string {
	if e.Reason == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// CatalogError is returned when catalog data breaks one of the catalog
// invariants. It always unwraps to ErrInvalidCatalog.
type CatalogError struct {
	Category Category
	Unit     string
	Reason   string
}

func (e *CatalogError) Error() string {
	switch {
	case e.Unit != "":
		return fmt.Sprintf("invalid catalog: category %q unit %q: %s", e.Category, e.Unit, e.Reason)
	case e.Category != "":
		return fmt.Sprintf("invalid catalog: category %q: %s", e.Category, e.Reason)
	default:
		return "invalid catalog: " + e.Reason
	}
}

func (e *CatalogError) Unwrap() error {
	return ErrInvalidCatalog
}

// ErrorCode maps a conversion error to its wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingInput):
		return CodeMissingInput
	case errors.Is(err, ErrIncompatibleUnits):
		return CodeIncompatibleUnits
	case errors.Is(err, ErrOutOfRange):
		return CodeOutOfRange
	default:
		return CodeInternal
	}
}

// ErrorFromCode is the inverse of ErrorCode. Unknown codes yield nil.
func ErrorFromCode(code string) error {
	switch code {
	case CodeMissingInput:
		return ErrMissingInput
	case CodeIncompatibleUnits:
		return ErrIncompatibleUnits
	case CodeOutOfRange:
		return ErrOutOfRange
	default:
		return nil
	}
}
