package unitconv

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogGroups(t *testing.T) {
	groups := DefaultCatalog().Groups()
	require.Len(t, groups, 3)

	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	if diff := cmp.Diff([]string{"Length", "Weight", "Volume"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	wantWeight := []string{"Grams (g)", "Kilograms (kg)", "Ounces (oz)", "Pounds (lb)"}
	if diff := cmp.Diff(wantWeight, groups[1].UnitNames()); diff != "" {
		t.Errorf("weight units mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, groups[0].Units, 8)
	assert.Len(t, groups[2].Units, 7)
}

func TestDefaultCatalogBases(t *testing.T) {
	cat := DefaultCatalog()
	want := map[Category]string{
		CategoryLength: "Millimeters (mm)",
		CategoryWeight: "Grams (g)",
		CategoryVolume: "Milliliters (ml)",
	}
	for c, name := range want {
		base, ok := cat.Base(c)
		require.True(t, ok)
		assert.Equal(t, name, base.Name)
	}
}

func TestCatalogExportIsCopy(t *testing.T) {
	cat := DefaultCatalog()
	units := cat.Units(CategoryLength)
	units[0].Factor = 42
	cats := cat.Categories()
	cats[0] = "bogus"

	u, ok := cat.Lookup("Millimeters (mm)")
	require.True(t, ok)
	assert.Equal(t, 1.0, u.Factor)
	assert.Equal(t, CategoryLength, cat.Categories()[0])
}

func TestCatalogDefsRoundTrip(t *testing.T) {
	rebuilt, err := NewCatalog(DefaultCatalog().Defs())
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultCatalog().Groups(), rebuilt.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultDefs(), rebuilt.Defs()); diff != "" {
		t.Errorf("defs mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCatalogRejectsInvalid(t *testing.T) {
	length := func(units ...UnitDef) CategoryDef {
		return CategoryDef{Category: CategoryLength, Units: units}
	}
	base := UnitDef{"Meters (m)", 1}

	cases := map[string][]CategoryDef{
		"empty":                 nil,
		"unknown category":      {{Category: "time", Units: []UnitDef{{"Seconds (s)", 1}}}},
		"duplicate category":    {length(base), length(UnitDef{"Feet (ft)", 1})},
		"no units":              {length()},
		"empty name":            {length(base, UnitDef{"", 2})},
		"zero factor":           {length(base, UnitDef{"Feet (ft)", 0})},
		"negative factor":       {length(base, UnitDef{"Feet (ft)", -0.3})},
		"NaN factor":            {length(base, UnitDef{"Feet (ft)", math.NaN()})},
		"Inf factor":            {length(base, UnitDef{"Feet (ft)", math.Inf(1)})},
		"no base":               {length(UnitDef{"Feet (ft)", 304.8})},
		"two bases":             {length(base, UnitDef{"Metres (m)", 1})},
		"duplicate in category": {length(base, UnitDef{"Meters (m)", 2})},
	}
	cases["duplicate across categories"] = []CategoryDef{
		length(base),
		{Category: CategoryWeight, Units: []UnitDef{{"Grams (g)", 1}, {"Meters (m)", 5}}},
	}
	for name, defs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(defs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			var catErr *CatalogError
			assert.True(t, errors.As(err, &catErr))
		})
	}
}

func TestMustNewCatalogPanics(t *testing.T) {
	assert.Panics(t, func() { MustNewCatalog(nil) })
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Length", CategoryLabel(CategoryLength))
	assert.Equal(t, "Volume", CategoryVolume.Label())
	assert.Equal(t, "", CategoryLabel(""))
	assert.True(t, CategoryWeight.Known())
	assert.False(t, Category("Weight").Known())
}

func TestErrorCodes(t *testing.T) {
	_, err := Convert(1, "Meters (m)", "Grams (g)")
	assert.Equal(t, CodeIncompatibleUnits, ErrorCode(err))
	_, err = Convert(1, "", "Grams (g)")
	assert.Equal(t, CodeMissingInput, ErrorCode(err))
	assert.Equal(t, CodeInternal, ErrorCode(errors.New("boom")))

	assert.ErrorIs(t, ErrorFromCode(CodeMissingInput), ErrMissingInput)
	assert.ErrorIs(t, ErrorFromCode(CodeIncompatibleUnits), ErrIncompatibleUnits)
	assert.Nil(t, ErrorFromCode("nope"))
}
