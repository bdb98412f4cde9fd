package fieldpath

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
)

const newFormatDoc = `{
  "name": "V06643A",
  "production": {"order": 6, "enrichment": null, "mass_in_g": 2286.2, "delivered": "2020-05-06"},
  "geometry": {"height_in_mm": 80.5, "radius_in_mm": 38.8},
  "characterization": {
    "manufacturer": {"depletion_voltage_in_V": 3500},
    "l200_site": {"fwhm": {"qbb_in_keV": 2.54}, "survival_fraction": "n/a"}
  }
}`

func captureWarnings(t *testing.T) *[]string {
	t.Helper()
	var got []string
	orig := monitoring.Warnf
	monitoring.SetWarnLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Warnf = orig })
	return &got
}

func mustParse(t *testing.T, s string) *record.Object {
	t.Helper()
	o, err := record.Parse([]byte(s))
	require.NoError(t, err)
	return o
}

func TestLookup(t *testing.T) {
	doc := mustParse(t, newFormatDoc)

	tests := []struct {
		name string
		path Path
		want Result
	}{
		{"nested number", Path{"characterization", "l200_site", "fwhm", "qbb_in_keV"}, Found(2.54)},
		{"top-level string", Path{"name"}, Found("V06643A")},
		{"explicit null", Path{"production", "enrichment"}, Found(nil)},
		{"absent leaf", Path{"production", "reprocessing"}, Missing},
		{"absent branch", Path{"characterization", "vendor", "x"}, Missing},
		{"through non-object", Path{"characterization", "l200_site", "survival_fraction", "qbb_in_pc"}, Missing},
		{"empty path", Path{}, Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(doc, tt.path))
		})
	}

	assert.Equal(t, Missing, Lookup(nil, Path{"name"}))
}

func TestResolve_Found(t *testing.T) {
	warnings := captureWarnings(t)
	doc := mustParse(t, newFormatDoc)

	v, err := New.Resolve(doc, "mass")
	require.NoError(t, err)
	assert.Equal(t, 2286.2, v)

	v, err = New.Resolve(doc, "depV_man")
	require.NoError(t, err)
	assert.Equal(t, float64(3500), v)

	v, err = New.Resolve(doc, "date")
	require.NoError(t, err)
	assert.Equal(t, "2020-05-06", v)

	assert.Empty(t, *warnings)
}

func TestResolve_MissingReturnsZeroAndWarns(t *testing.T) {
	warnings := captureWarnings(t)
	doc := mustParse(t, newFormatDoc)

	for _, param := range []string{"sf_Qbb", "fwhm_TlFEP", "repr", "daq"} {
		v, err := New.Resolve(doc, param)
		require.NoError(t, err, param)
		assert.Equal(t, Zero, v, param)
	}
	assert.Equal(t, []string{
		"Parameter sf_Qbb not in json!",
		"Parameter fwhm_TlFEP not in json!",
		"Parameter repr not in json!",
		"Parameter daq not in json!",
	}, *warnings)
}

func TestResolve_EmptyDocumentNeverFails(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	empty := record.NewObject()
	for _, table := range []Table{New, Old} {
		for _, param := range table.Params() {
			v, err := table.Resolve(empty, param)
			require.NoError(t, err, param)
			assert.Equal(t, Zero, v, param)
		}
	}
}

func TestResolve_UnknownParam(t *testing.T) {
	_, err := New.Resolve(record.NewObject(), "colour")
	assert.ErrorIs(t, err, ErrUnknownParam)

	_, err = New.MustFind(record.NewObject(), "colour")
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestPath_UnknownParamListsKnownKeys(t *testing.T) {
	_, err := Old.Path("colour")
	require.ErrorIs(t, err, ErrUnknownParam)
	assert.Contains(t, err.Error(), `"colour"`)
	assert.Contains(t, err.Error(), "dl, ")
	assert.Contains(t, err.Error(), "mass")
}

func TestMustFind(t *testing.T) {
	warnings := captureWarnings(t)
	doc := mustParse(t, newFormatDoc)

	v, err := New.MustFind(doc, "height")
	require.NoError(t, err)
	assert.Equal(t, 80.5, v)

	_, err = New.MustFind(doc, "serialno")
	assert.ErrorIs(t, err, ErrFieldMissing)
	assert.Contains(t, err.Error(), "production.serialno")
	assert.Empty(t, *warnings)
}

func TestTables(t *testing.T) {
	// dl only exists in the old layout.
	_, err := New.Path("dl")
	assert.ErrorIs(t, err, ErrUnknownParam)
	p, err := Old.Path("dl")
	require.NoError(t, err)
	assert.Equal(t, "geometry.dl_thickness_in_mm", p.String())

	assert.Equal(t, Path{"geometry", "mass_in_g"}, Old["mass"])
	assert.Equal(t, Path{"production", "mass_in_g"}, New["mass"])

	for _, param := range New.Params() {
		_, ok := Old[param]
		assert.True(t, ok, "old table lacks %s", param)
	}

	tbl, ok := ForFormat(FormatOld)
	assert.True(t, ok)
	assert.Equal(t, Old["mass"], tbl["mass"])
	tbl, ok = ForFormat("")
	assert.True(t, ok)
	assert.Equal(t, New["mass"], tbl["mass"])
	_, ok = ForFormat("v3")
	assert.False(t, ok)
}
