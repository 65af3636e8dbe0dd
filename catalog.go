package unitconv

import (
	"math"
	"sync"
)

// UnitDef is a unit entry in catalog source data.
type UnitDef struct {
	Name   string
	Factor float64
}

// CategoryDef lists the units of one category in display order.
type CategoryDef struct {
	Category Category
	Units    []UnitDef
}

// Catalog is the read-only category -> unit -> factor table. It is safe for
// concurrent use once built.
type Catalog struct {
	categories []Category
	units      map[Category][]Unit
	index      map[string]Unit // unit name -> unit
}

var defaultDefs = []CategoryDef{
	{
		Category: CategoryLength,
		Units: []UnitDef{
			{"Millimeters (mm)", 1},
			{"Centimeters (cm)", 10},
			{"Meters (m)", 1000},
			{"Kilometers (km)", 1000000},
			{"Inches (in)", 25.4},
			{"Feet (ft)", 304.8},
			{"Yards (yd)", 914.4},
			{"Miles (mi)", 1609344},
		},
	},
	{
		Category: CategoryWeight,
		Units: []UnitDef{
			{"Grams (g)", 1},
			{"Kilograms (kg)", 1000},
			{"Ounces (oz)", 28.3495},
			{"Pounds (lb)", 453.592},
		},
	},
	{
		Category: CategoryVolume,
		Units: []UnitDef{
			{"Milliliters (ml)", 1},
			{"Liters (l)", 1000},
			{"Fluid Ounces (fl oz)", 29.5735},
			{"Cups (cup)", 240},
			{"Pints (pt)", 473.176},
			{"Quarts (qt)", 946.353},
			{"Gallons (gal)", 3785.41},
		},
	},
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustNewCatalog(defaultDefs)
})

// DefaultCatalog returns the built-in length/weight/volume catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// DefaultDefs returns a copy of the built-in catalog source data.
func DefaultDefs() []CategoryDef {
	defs := make([]CategoryDef, len(defaultDefs))
	for i, d := range defaultDefs {
		defs[i] = CategoryDef{
			Category: d.Category,
			Units:    append([]UnitDef(nil), d.Units...),
		}
	}
	return defs
}

// NewCatalog validates defs and builds a catalog from them. Category and unit
// order is preserved.
func NewCatalog(defs []CategoryDef) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, &CatalogError{Reason: "no categories"}
	}
	c := &Catalog{
		units: make(map[Category][]Unit, len(defs)),
		index: make(map[string]Unit),
	}
	for _, def := range defs {
		if !def.Category.Known() {
			return nil, &CatalogError{Category: def.Category, Reason: "unknown category"}
		}
		if _, dup := c.units[def.Category]; dup {
			return nil, &CatalogError{Category: def.Category, Reason: "duplicate category"}
		}
		if len(def.Units) == 0 {
			return nil, &CatalogError{Category: def.Category, Reason: "no units"}
		}
		units := make([]Unit, 0, len(def.Units))
		bases := 0
		for _, ud := range def.Units {
			if ud.Name == "" {
				return nil, &CatalogError{Category: def.Category, Reason: "empty unit name"}
			}
			if !(ud.Factor > 0) || math.IsInf(ud.Factor, 0) {
				return nil, &CatalogError{Category: def.Category, Unit: ud.Name, Reason: "factor must be positive and finite"}
			}
			if prev, dup := c.index[ud.Name]; dup {
				return nil, &CatalogError{Category: def.Category, Unit: ud.Name, Reason: "already defined in " + string(prev.Category)}
			}
			u := Unit{Name: ud.Name, Category: def.Category, Factor: ud.Factor}
			if u.IsBase() {
				bases++
			}
			c.index[u.Name] = u
			units = append(units, u)
		}
		if bases != 1 {
			return nil, &CatalogError{Category: def.Category, Reason: "must have exactly one base unit (factor 1)"}
		}
		c.categories = append(c.categories, def.Category)
		c.units[def.Category] = units
	}
	return c, nil
}

func MustNewCatalog(defs []CategoryDef) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) Units(cat Category) []Unit {
	return append([]Unit(nil), c.units[cat]...)
}

func (c *Catalog) Lookup(name string) (Unit, bool) {
	u, ok := c.index[name]
	return u, ok
}

// Base returns the unit with factor 1 for cat.
func (c *Catalog) Base(cat Category) (Unit, bool) {
	for _, u := range c.units[cat] {
		if u.IsBase() {
			return u, true
		}
	}
	return Unit{}, false
}

// Groups exports the catalog grouped by category for presentation.
func (c *Catalog) Groups() []Group {
	groups := make([]Group, 0, len(c.categories))
	for _, cat := range c.categories {
		groups = append(groups, Group{
			Category: cat,
			Label:    cat.Label(),
			Units:    c.Units(cat),
		})
	}
	return groups
}

// Defs returns the catalog as source data, suitable for NewCatalog.
func (c *Catalog) Defs() []CategoryDef {
	defs := make([]CategoryDef, 0, len(c.categories))
	for _, cat := range c.categories {
		def := CategoryDef{Category: cat}
		for _, u := range c.units[cat] {
			def.Units = append(def.Units, UnitDef{Name: u.Name, Factor: u.Factor})
		}
		defs = append(defs, def)
	}
	return defs
}
