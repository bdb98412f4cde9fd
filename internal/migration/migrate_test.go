package migration

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
	"github.com/legend-exp/detinfo/internal/testutil"
)

func mustObject(t *testing.T, o *record.Object, keys ...string) *record.Object {
	t.Helper()
	cur := o
	for _, k := range keys {
		next, ok := cur.Object(k)
		require.True(t, ok, "missing object %v", keys)
		cur = next
	}
	return cur
}

func get(t *testing.T, o *record.Object, keys ...string) any {
	t.Helper()
	parent := mustObject(t, o, keys[:len(keys)-1]...)
	v, ok := parent.Get(keys[len(keys)-1])
	require.True(t, ok, "missing key %v", keys)
	return v
}

func TestMigrate_Layout(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "V06643A")
	doc, dl, err := Migrate("V06643A", old)
	require.NoError(t, err)
	assert.Nil(t, dl, "zero geometry dead layer is dropped")

	tests := []struct {
		path []string
		want []string
	}{
		{nil, []string{"name", "type", "production", "geometry", "characterization"}},
		{[]string{"production"}, []string{
			"manufacturer", "order", "serialno", "crystal", "slice", "enrichment", "reprocessing", "mass_in_g",
			"delivered", "depletion_voltage_in_V", "recommended_voltage_in_V",
		}},
		{[]string{"geometry"}, []string{"height_in_mm", "radius_in_mm", "bottom_cylinder"}},
		{[]string{"characterization", "manufacturer"}, []string{
			"depletion_voltage_in_V", "recommended_voltage_in_V", "fwhm_co57fep_in_keV", "fwhm_co60fep_in_keV", "dl_thickness_in_mm",
		}},
		{[]string{"characterization", "l200_site"}, []string{"daq", "fwhm", "survival_fraction"}},
	}
	for _, tt := range tests {
		got := mustObject(t, doc, tt.path...).Keys()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("keys of %v mismatch (-want +got):\n%s", tt.path, diff)
		}
	}

	assert.Equal(t, "V06643A", get(t, doc, "name"))
	assert.Equal(t, json.Number("2286.2"), get(t, doc, "production", "mass_in_g"))
	assert.Equal(t, "2020-05-06", get(t, doc, "production", "delivered"))
	assert.Equal(t, json.Number("3800"), get(t, doc, "production", "depletion_voltage_in_V"))
	assert.Equal(t, json.Number("4000"), get(t, doc, "characterization", "manufacturer", "recommended_voltage_in_V"))
	assert.Equal(t, json.Number("2.54"), get(t, doc, "characterization", "l200_site", "fwhm", "qbb_in_keV"))
	assert.Equal(t, json.Number("48.2"), get(t, doc, "characterization", "l200_site", "survival_fraction", "qbb_in_pc"))
}

func TestMigrate_InputUntouched(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "V06643A")
	before, err := old.MarshalJSON()
	require.NoError(t, err)

	_, _, err = Migrate("V06643A", old)
	require.NoError(t, err)

	after, err := old.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestMigrate_NameMismatch(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "V06643A")
	doc, _, err := Migrate("V06643B", old)
	assert.Nil(t, doc)
	require.ErrorIs(t, err, ErrNameMismatch)

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, "V06643B", recErr.Name)
}

func TestMigrate_DeadLayer(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "B00032B")
	testutil.SetPath(old, 0.9, "geometry", "dl_thickness_in_mm")

	doc, dl, err := Migrate("B00032B", old)
	require.NoError(t, err)
	require.NotNil(t, dl)
	assert.Equal(t, DeadLayer{Name: "B00032B", ThicknessMM: 0.9}, *dl)
	assert.False(t, mustObject(t, doc, "geometry").Has("dl_thickness_in_mm"))
}

func TestMigrate_MissingDeadLayerIsLogged(t *testing.T) {
	var logs []string
	orig := monitoring.Logf
	defer func() { monitoring.Logf = orig }()
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logs = append(logs, format)
	})

	old := testutil.Legacy(t, "V06643A")
	mustObject(t, old, "geometry").Delete("dl_thickness_in_mm")

	_, dl, err := Migrate("V06643A", old)
	require.NoError(t, err)
	assert.Nil(t, dl)
	assert.Contains(t, logs, "%s missing dl field")
}

func TestMigrate_ZeroBecomesNull(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "V06643A")
	zeroed := [][]string{
		{"production", "enrichment"},
		{"production", "dep_voltage_in_V"},
		{"characterization", "manufacturer", "dep_voltage_in_V"},
		{"characterization", "manufacturer", "57co_fep_res_in_keV"},
		{"characterization", "manufacturer", "60co_fep_res_in_keV"},
		{"characterization", "l200_site", "res", "cofep_in_keV"},
		{"characterization", "l200_site", "sf", "tldep_in_pc"},
		{"characterization", "l200_site", "sf", "qbb_in_pc"},
		{"characterization", "l200_site", "sf", "tlsep_in_pc"},
		{"characterization", "l200_site", "sf", "tlfep_in_pc"},
	}
	for _, p := range zeroed {
		testutil.SetPath(old, 0, p...)
	}
	mustObject(t, old, "characterization", "l200_site", "res").Delete("qbb_in_keV")

	doc, _, err := Migrate("V06643A", old)
	require.NoError(t, err)

	nulls := [][]string{
		{"production", "enrichment"},
		{"production", "depletion_voltage_in_V"},
		{"characterization", "manufacturer", "depletion_voltage_in_V"},
		{"characterization", "manufacturer", "fwhm_co57fep_in_keV"},
		{"characterization", "manufacturer", "fwhm_co60fep_in_keV"},
		{"characterization", "l200_site", "fwhm", "cofep_in_keV"},
		{"characterization", "l200_site", "fwhm", "qbb_in_keV"},
		{"characterization", "l200_site", "survival_fraction", "tldep_in_pc"},
		{"characterization", "l200_site", "survival_fraction", "qbb_in_pc"},
		{"characterization", "l200_site", "survival_fraction", "tlsep_in_pc"},
		{"characterization", "l200_site", "survival_fraction", "tlfep_in_pc"},
	}
	for _, p := range nulls {
		assert.Nil(t, get(t, doc, p...), "%v should be null", p)
	}
	// untouched non-zero values pass through
	assert.Equal(t, json.Number("2.8"), get(t, doc, "characterization", "l200_site", "fwhm", "tlfep_in_keV"))
}

func TestMigrate_RecommendedVoltageRequired(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	zero := testutil.Legacy(t, "V06643A")
	testutil.SetPath(zero, 0, "characterization", "manufacturer", "op_voltage_in_V")
	_, _, err := Migrate("V06643A", zero)
	assert.ErrorIs(t, err, ErrMissingRecommendedVoltage)

	absent := testutil.Legacy(t, "V06643A")
	mustObject(t, absent, "characterization", "manufacturer").Delete("op_voltage_in_V")
	_, _, err = Migrate("V06643A", absent)
	assert.ErrorIs(t, err, ErrMissingRecommendedVoltage)
}

func TestMigrate_Dates(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	tests := []struct {
		in      any
		want    any
		wantErr error
	}{
		{"31-12-2019", "2019-12-31", nil},
		{"", nil, nil},
		{nil, nil, nil},
		{"2019-12-31", nil, ErrBadDate},
		{"32-01-2020", nil, ErrBadDate},
		{json.Number("20191231"), nil, ErrBadDate},
	}
	for _, tt := range tests {
		old := testutil.Legacy(t, "V06643A")
		testutil.SetPath(old, tt.in, "production", "delivered")

		doc, _, err := Migrate("V06643A", old)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "input %v", tt.in)
			continue
		}
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, get(t, doc, "production", "delivered"), "input %v", tt.in)
	}
}

func TestMigrate_MissingSection(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "V06643A")
	mustObject(t, old, "characterization").Delete("l200_site")

	_, _, err := Migrate("V06643A", old)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "characterization.l200_site")
}

func TestMigrate_NonASCIIKept(t *testing.T) {
	restore := monitoring.Mute()
	defer restore()

	old := testutil.Legacy(t, "V06643A")
	testutil.SetPath(old, "Mirion Technologies (Canberra) Olen, België", "production", "manufacturer")

	doc, _, err := Migrate("V06643A", old)
	require.NoError(t, err)
	data, err := record.Indent(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "België")
	assert.Contains(t, string(data), "\n  \"name\": \"V06643A\"")
}
