// Package testutil provides shared test utilities and fixtures.
//
// This package centralises detector metadata fixtures so that package tests
// build records the same way.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/legend-exp/detinfo/internal/fsutil"
	"github.com/legend-exp/detinfo/internal/record"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// MetadataDir is a temporary directory of detector records.
type MetadataDir struct {
	t     testing.TB
	Dir   string
	Store *record.Store
}

// NewMetadataDir creates an empty metadata directory under t.TempDir().
func NewMetadataDir(t testing.TB) *MetadataDir {
	t.Helper()
	dir := t.TempDir()
	return &MetadataDir{t: t, Dir: dir, Store: &record.Store{FS: fsutil.OSFileSystem{}, Dir: dir}}
}

// Add writes the builder's record as <name>.json.
func (m *MetadataDir) Add(d *Detector) *MetadataDir {
	m.t.Helper()
	AssertNoError(m.t, m.Store.Save(d.name, d.doc))
	return m
}

// AddObject writes o as <id>.json.
func (m *MetadataDir) AddObject(id string, o *record.Object) *MetadataDir {
	m.t.Helper()
	AssertNoError(m.t, m.Store.Save(id, o))
	return m
}

// AddRaw writes raw JSON as <id>.json without validation.
func (m *MetadataDir) AddRaw(id, raw string) *MetadataDir {
	m.t.Helper()
	AssertNoError(m.t, os.WriteFile(filepath.Join(m.Dir, id+record.Ext), []byte(raw), 0644))
	return m
}

// SetPath stores v in o under the nested keys, creating intermediate objects.
func SetPath(o *record.Object, v any, keys ...string) {
	cur := o
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur.Object(k)
		if !ok {
			next = record.NewObject()
			cur.Set(k, next)
		}
		cur = next
	}
	cur.Set(keys[len(keys)-1], normalize(v))
}

// normalize turns Go numbers into json.Number as the record parser would.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return record.Number(float64(x))
	case float64:
		return record.Number(x)
	default:
		return v
	}
}

// Detector builds a new-format detector record.
type Detector struct {
	name string
	doc  *record.Object
}

// NewDetector starts a new-format record carrying only the name and the
// production order derived from it.
func NewDetector(name string) *Detector {
	doc := record.NewObject()
	doc.Set("name", name)
	order := json.Number("0")
	if len(name) >= 3 {
		order = json.Number(trimZeros(name[1:3]))
	}
	SetPath(doc, order, "production", "order")
	return &Detector{name: name, doc: doc}
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

// Set stores an arbitrary value at the nested keys.
func (d *Detector) Set(v any, keys ...string) *Detector {
	SetPath(d.doc, v, keys...)
	return d
}

// Mass sets production.mass_in_g.
func (d *Detector) Mass(g float64) *Detector {
	return d.Set(g, "production", "mass_in_g")
}

// FWHMQbb sets characterization.l200_site.fwhm.qbb_in_keV.
func (d *Detector) FWHMQbb(keV float64) *Detector {
	return d.Set(keV, "characterization", "l200_site", "fwhm", "qbb_in_keV")
}

// DepV sets production.depletion_voltage_in_V.
func (d *Detector) DepV(v float64) *Detector {
	return d.Set(v, "production", "depletion_voltage_in_V")
}

// DepVMan sets characterization.manufacturer.depletion_voltage_in_V.
func (d *Detector) DepVMan(v float64) *Detector {
	return d.Set(v, "characterization", "manufacturer", "depletion_voltage_in_V")
}

// Serial sets production.serialno.
func (d *Detector) Serial(s string) *Detector {
	return d.Set(s, "production", "serialno")
}

// Enrichment sets production.enrichment.
func (d *Detector) Enrichment(e any) *Detector {
	return d.Set(e, "production", "enrichment")
}

// Name returns the detector name.
func (d *Detector) Name() string { return d.name }

// Object returns the underlying record.
func (d *Detector) Object() *record.Object { return d.doc }

// LegacyJSON is a complete pre-migration record for V06643A. Tests parse it
// and adjust fields with SetPath.
const LegacyJSON = `{
  "det_name": "V06643A",
  "type": "icpc",
  "production": {
    "manufacturer": "Mirion",
    "order": 6,
    "crystal": "643",
    "slice": "A",
    "enrichment": 0.88,
    "reprocessing": true,
    "delivered": "06-05-2020",
    "serialno": "20643A",
    "dep_voltage_in_V": 3800,
    "rec_voltage_in_V": 4300
  },
  "geometry": {
    "mass_in_g": 2286.2,
    "height_in_mm": 80.5,
    "radius_in_mm": 38.8,
    "bottom_cyl": {"radius_in_mm": 38.8, "height_in_mm": 40},
    "dl_thickness_in_mm": 0
  },
  "characterization": {
    "manufacturer": {
      "dep_voltage_in_V": 3500,
      "op_voltage_in_V": 4000,
      "57co_fep_res_in_keV": 0.65,
      "60co_fep_res_in_keV": 2.05,
      "dl_thickness_in_mm": 1.1
    },
    "l200_site": {
      "data": "/data/hades/char/V06643A",
      "elog": "https://elog.example.org/hades/643",
      "daq": "struck",
      "res": {"cofep_in_keV": 2.2, "tlfep_in_keV": 2.8, "qbb_in_keV": 2.54},
      "sf": {"tldep_in_pc": 85.1, "qbb_in_pc": 48.2, "tlsep_in_pc": 7.3, "tlfep_in_pc": 9.9}
    }
  }
}`

// Legacy parses LegacyJSON, renames it to name and sets the order digits.
func Legacy(t testing.TB, name string) *record.Object {
	t.Helper()
	o, err := record.Parse([]byte(LegacyJSON))
	AssertNoError(t, err)
	o.Set("det_name", name)
	if len(name) >= 3 {
		SetPath(o, json.Number(trimZeros(name[1:3])), "production", "order")
	}
	return o
}
