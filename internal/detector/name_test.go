package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		typ     Type
		order   int
		crystal string
		slice   string
		stem    string
	}{
		{"V06643A", ICPC, 6, "643", "A", "V06643"},
		{"V10784A", ICPC, 10, "784", "A", "V10784"},
		{"B00091D", BEGe, 0, "091", "D", "B00091"},
		{"V00048B", ICPC, 0, "048", "B", "V00048"},
		{"P00574", PPC, 0, "574", "", "P00574"},
		{"C000RG1", Coax, 0, "0RG", "1", "C000RG"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, n.Type)
			assert.Equal(t, tt.order, n.Order)
			assert.Equal(t, tt.crystal, n.Crystal)
			assert.Equal(t, tt.slice, n.Slice)
			assert.Equal(t, tt.stem, n.CrystalStem())
			assert.Equal(t, tt.raw, n.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "V", "V0", "Vxx643A", "V-1643A"} {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseTypes(t *testing.T) {
	all, err := ParseTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, AllTypes, all)

	all, err = ParseTypes([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, AllTypes, all)

	some, err := ParseTypes([]string{"B", "P", "C"})
	require.NoError(t, err)
	assert.Equal(t, []Type{BEGe, PPC, Coax}, some)

	_, err = ParseTypes([]string{"X"})
	assert.Error(t, err)
	_, err = ParseTypes([]string{"VB"})
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"V00048A", LabelICPCGerda},
		{"V06643A", LabelICPCNew},
		{"B00000A", LabelBEGe},
		{"P00574A", LabelPPC},
		{"C000RG1", LabelCoax},
	}
	for _, tt := range tests {
		n, err := Parse(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, Label(n), tt.raw)
		assert.Contains(t, CategoryColors, Label(n))
	}
}

func TestTypeGeometry(t *testing.T) {
	assert.Equal(t, "ICPC", ICPC.Geometry())
	assert.Equal(t, "BEGe", BEGe.Geometry())
	assert.Equal(t, "PPC", PPC.Geometry())
	assert.Equal(t, "Coax", Coax.Geometry())
	assert.Equal(t, "unknown", Type('X').Geometry())
	assert.Equal(t, "V", ICPC.String())
}
