package unitconvmsgpack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"unitconv"
)

func TestCatalogOverTheWire(t *testing.T) {
	wire := NewCatalog(unitconv.DefaultCatalog())
	b, err := msgpack.Marshal(&wire)
	require.NoError(t, err)

	var got Catalog
	require.NoError(t, msgpack.Unmarshal(b, &got))

	rebuilt, err := unitconv.NewCatalog(got.ToDefs())
	require.NoError(t, err)
	if diff := cmp.Diff(unitconv.DefaultCatalog().Groups(), rebuilt.Groups()); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Length", got.Groups[0].Label)
}

func TestConvertRequestKeepsUnsetAmount(t *testing.T) {
	wire := NewConvertRequest(unitconv.Request{From: "Meters (m)", To: "Kilometers (km)"})
	b, err := msgpack.Marshal(&wire)
	require.NoError(t, err)

	var got ConvertRequest
	require.NoError(t, msgpack.Unmarshal(b, &got))
	assert.Nil(t, got.Amount)

	_, err = unitconv.DefaultCatalog().Convert(ToRequest(&got))
	assert.ErrorIs(t, err, unitconv.ErrMissingInput)
}

func TestConvertResponseToResult(t *testing.T) {
	res, err := unitconv.DefaultCatalog().Convert(unitconv.NewRequest(0, "Grams (g)", "Ounces (oz)"))
	require.NoError(t, err)

	wire := NewConvertResponse(res)
	b, err := msgpack.Marshal(&wire)
	require.NoError(t, err)
	var got ConvertResponse
	require.NoError(t, msgpack.Unmarshal(b, &got))

	assert.Equal(t, res, ToResult(&got))
}

func TestNewError(t *testing.T) {
	_, err := unitconv.Convert(1, "Meters (m)", "Liters (l)")
	e := NewError(err)
	assert.Equal(t, unitconv.CodeIncompatibleUnits, e.Code)
	assert.Contains(t, e.Message, "incompatible units")
}
