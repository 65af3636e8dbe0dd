package unitconv

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Category string

const (
	CategoryLength Category = "length"
	CategoryWeight Category = "weight"
	CategoryVolume Category = "volume"
)

// KnownCategories lists every category a catalog may contain, in display order.
var KnownCategories = []Category{CategoryLength, CategoryWeight, CategoryVolume}

func (c Category) Known() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Label is the category id with its first letter upper-cased, e.g. "Length".
func (c Category) Label() string {
	return CategoryLabel(c)
}

func CategoryLabel(c Category) string {
	s := string(c)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}

// Unit is a selectable unit of measure. Factor is how many base units of
// Category one Unit equals, e.g. Meters (m) = 1000 Millimeters (mm).
type Unit struct {
	Name     string
	Category Category
	Factor   float64
}

func (u Unit) IsBase() bool {
	return u.Factor == 1
}

// Group is one category of the catalog as a selection widget would show it.
type Group struct {
	Category Category
	Label    string
	Units    []Unit
}

// UnitNames returns the unit names of the group in catalog order.
func (g Group) UnitNames() []string {
	names := make([]string, 0, len(g.Units))
	for _, u := range g.Units {
		names = append(names, u.Name)
	}
	return names
}
