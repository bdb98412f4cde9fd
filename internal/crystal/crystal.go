// Package crystal derives one record per germanium crystal from the records
// of the detectors cut from it.
package crystal

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/fieldpath"
	"github.com/legend-exp/detinfo/internal/fsutil"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
)

// Dir is the subdirectory crystal records are written to.
const Dir = "crystals"

// ErrExists is returned by Write instead of overwriting a crystal record.
// Impurity coefficients are entered by hand and must not be lost.
var ErrExists = errors.New("crystal record already exists")

// Crystal is the aggregate of the detectors sharing a crystal id.
type Crystal struct {
	// Name is the three-digit crystal id, e.g. "643".
	Name string
	// Stem is the file stem: type letter, order digits and id, e.g. "V06643".
	Stem      string
	Detectors []string

	// Serials and Enrichments are the distinct values found across the
	// detectors, sorted. They should each hold one value.
	Serials     []string
	Enrichments []float64
}

// Serial is the crystal serial number.
func (c *Crystal) Serial() string {
	if len(c.Serials) == 0 {
		return ""
	}
	return c.Serials[0]
}

// Enrichment returns the enrichment fraction, or nil when it is unknown.
func (c *Crystal) Enrichment() any {
	if len(c.Enrichments) == 0 || c.Enrichments[0] == 0 {
		return nil
	}
	return record.Number(c.Enrichments[0])
}

var impurityCurves = []struct {
	name   string
	params []string
}{
	{"polynomial", []string{"a0", "a1", "a2"}},
	{"empirical", []string{"a", "b", "c", "tau"}},
}

// Record builds the crystal document with a null impurity curve template to
// be filled in by hand.
func (c *Crystal) Record() *record.Object {
	o := record.NewObject()
	o.Set("name", c.Name)
	o.Set("serialno", c.Serial())
	o.Set("enrichment", c.Enrichment())

	curve := record.NewObject()
	for _, f := range impurityCurves {
		coeffs := record.NewObject()
		for _, p := range f.params {
			coeffs.Set(p, nil)
		}
		curve.Set(f.name, coeffs)
	}
	o.Set("final_impurity_curve", curve)
	return o
}

// SerialFromDetector strips the slice letter from a detector serial number.
// Not every detector serial carries one.
func SerialFromDetector(s string) string {
	if strings.HasSuffix(s, "A") || strings.HasSuffix(s, "B") {
		return s[:len(s)-1]
	}
	return s
}

// Aggregate groups the detectors of type t in store by crystal id. Serial
// number and enrichment must be present in every detector record.
// Inconsistent values across a crystal are reported, not rejected.
func Aggregate(store *record.Store, t detector.Type) ([]*Crystal, error) {
	names, err := dettable.List(store, []detector.Type{t}, dettable.DefaultMaxOrder)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Crystal)
	var ids []string
	stems := make(map[string]map[string]bool)
	serials := make(map[string]map[string]bool)
	enrs := make(map[string]map[float64]bool)

	for _, n := range names {
		doc, err := store.Load(n.Raw)
		if err != nil {
			return nil, err
		}
		serial, enr, err := readDetector(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Raw, err)
		}

		c, ok := byID[n.Crystal]
		if !ok {
			c = &Crystal{Name: n.Crystal}
			byID[n.Crystal] = c
			ids = append(ids, n.Crystal)
			stems[n.Crystal] = map[string]bool{}
			serials[n.Crystal] = map[string]bool{}
			enrs[n.Crystal] = map[float64]bool{}
		}
		c.Detectors = append(c.Detectors, n.Raw)
		stems[n.Crystal][n.CrystalStem()] = true
		serials[n.Crystal][SerialFromDetector(serial)] = true
		enrs[n.Crystal][enr] = true
	}

	sort.Strings(ids)
	out := make([]*Crystal, 0, len(ids))
	for _, id := range ids {
		c := byID[id]
		c.Serials = sortedKeys(serials[id])
		for e := range enrs[id] {
			c.Enrichments = append(c.Enrichments, e)
		}
		sort.Float64s(c.Enrichments)
		c.Stem = sortedKeys(stems[id])[0]

		monitoring.Logf("----- %s: %s", id, strings.Join(c.Detectors, ", "))
		if len(c.Serials) > 1 {
			monitoring.Warnf("More than one serialno for detectors based on crystal %s: %v", id, c.Serials)
		}
		if len(c.Enrichments) > 1 {
			monitoring.Warnf("More than one enrichment for detectors based on crystal %s: %v", id, c.Enrichments)
		}
		out = append(out, c)
	}
	return out, nil
}

// readDetector returns the serial number and enrichment of one detector. A
// null enrichment counts as zero, i.e. unknown.
func readDetector(doc *record.Object) (string, float64, error) {
	v, err := fieldpath.New.MustFind(doc, "serialno")
	if err != nil {
		return "", 0, err
	}
	serial, ok := v.(string)
	if !ok {
		return "", 0, fmt.Errorf("serialno %v is not a string", v)
	}

	v, err = fieldpath.New.MustFind(doc, "enr")
	if err != nil {
		return "", 0, err
	}
	if v == nil {
		return serial, 0, nil
	}
	enr, ok := record.Float(v)
	if !ok {
		return "", 0, fmt.Errorf("enrichment %v is not a number", v)
	}
	return serial, enr, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write stores each crystal as <dir>/crystals/<stem>.json and returns the
// written paths. If any target already exists nothing is written.
func Write(fs fsutil.FileSystem, dir string, crystals []*Crystal) ([]string, error) {
	store := &record.Store{FS: fs, Dir: filepath.Join(dir, Dir)}
	for _, c := range crystals {
		if store.Exists(c.Stem) {
			return nil, fmt.Errorf("%s: %w", store.Path(c.Stem), ErrExists)
		}
	}

	paths := make([]string, 0, len(crystals))
	for _, c := range crystals {
		if err := store.Save(c.Stem, c.Record()); err != nil {
			return paths, err
		}
		paths = append(paths, store.Path(c.Stem))
	}
	return paths, nil
}
