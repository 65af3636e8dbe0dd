package unitconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is one conversion attempt. A nil Value means the amount is unset;
// an empty From or To means the unit is unselected.
type Request struct {
	Value *float64
	From  string
	To    string
}

func NewRequest(value float64, from, to string) Request {
	return Request{Value: &value, From: from, To: to}
}

type Result struct {
	Value    float64
	Category Category
	From     Unit
	To       Unit
}

// ResolveCategory returns the category containing both units. Matching is
// exact and case-sensitive.
func (c *Catalog) ResolveCategory(a, b string) (Category, bool) {
	ua, ok := c.index[a]
	if !ok {
		return "", false
	}
	ub, ok := c.index[b]
	if !ok || ua.Category != ub.Category {
		return "", false
	}
	return ua.Category, true
}

// Convert converts req.Value from req.From to req.To via the category's base
// unit. No rounding is applied.
func (c *Catalog) Convert(req Request) (Result, error) {
	switch {
	case req.Value == nil:
		return Result{}, &ConversionError{Err: ErrMissingInput, From: req.From, To: req.To, Reason: "amount is unset"}
	case math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0):
		return Result{}, &ConversionError{Err: ErrMissingInput, From: req.From, To: req.To, Reason: "amount is not a finite number"}
	case req.From == "":
		return Result{}, &ConversionError{Err: ErrMissingInput, To: req.To, Reason: "source unit is unselected"}
	case req.To == "":
		return Result{}, &ConversionError{Err: ErrMissingInput, From: req.From, Reason: "destination unit is unselected"}
	}

	if _, ok := c.ResolveCategory(req.From, req.To); !ok {
		return Result{}, &ConversionError{
			Err:    ErrIncompatibleUnits,
			From:   req.From,
			To:     req.To,
			Reason: fmt.Sprintf("%q and %q share no category", req.From, req.To),
		}
	}
	from, to := c.index[req.From], c.index[req.To]

	value := *req.Value
	if from.Name != to.Name {
		base := value * from.Factor
		if math.IsInf(base, 0) {
			// the base amount overflows but the ratio may not
			value *= from.Factor / to.Factor
		} else {
			value = base / to.Factor
		}
		if math.IsInf(value, 0) {
			return Result{}, &ConversionError{
				Err:    ErrOutOfRange,
				From:   req.From,
				To:     req.To,
				Reason: fmt.Sprintf("%g %s does not fit in %s", *req.Value, req.From, req.To),
			}
		}
	}
	return Result{Value: value, Category: from.Category, From: from, To: to}, nil
}

// ConvertString parses amount the way a text input supplies it. An empty or
// unparseable amount is reported as ErrMissingInput.
func (c *Catalog) ConvertString(amount, from, to string) (Result, error) {
	req := Request{From: from, To: to}
	if s := strings.TrimSpace(amount); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Result{}, &ConversionError{Err: ErrMissingInput, From: from, To: to, Reason: fmt.Sprintf("amount %q is not a number", amount)}
		}
		req.Value = &v
	}
	return c.Convert(req)
}

// Convert converts value between two units of the default catalog.
func Convert(value float64, from, to string) (float64, error) {
	res, err := DefaultCatalog().Convert(NewRequest(value, from, to))
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

func ResolveCategory(a, b string) (Category, bool) {
	return DefaultCatalog().ResolveCategory(a, b)
}
