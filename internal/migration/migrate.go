// Package migration rewrites detector records from the old metadata schema
// into the new one. Dead-layer values that the new schema no longer keeps
// under geometry are collected into a CSV side file.
package migration

import (
	"fmt"
	"strings"
	"time"

	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
)

// DeadLayer is a non-zero geometry dead-layer thickness removed from a record.
type DeadLayer struct {
	Name        string
	ThicknessMM float64
}

type rename struct {
	path     []string
	from, to string
}

var renames = []rename{
	{[]string{"geometry"}, "bottom_cyl", "bottom_cylinder"},
	{[]string{"production"}, "dep_voltage_in_V", "depletion_voltage_in_V"},
	{[]string{"production"}, "rec_voltage_in_V", "recommended_voltage_in_V"},
	{[]string{"characterization", "manufacturer"}, "dep_voltage_in_V", "depletion_voltage_in_V"},
	{[]string{"characterization", "manufacturer"}, "op_voltage_in_V", "recommended_voltage_in_V"},
	{[]string{"characterization", "l200_site"}, "res", "fwhm"},
	{[]string{"characterization", "l200_site"}, "sf", "survival_fraction"},
	{[]string{"characterization", "manufacturer"}, "57co_fep_res_in_keV", "fwhm_co57fep_in_keV"},
	{[]string{"characterization", "manufacturer"}, "60co_fep_res_in_keV", "fwhm_co60fep_in_keV"},
}

// productionOrder is the canonical key order of the production section.
// Keys not listed follow in their original order.
var productionOrder = []string{
	"manufacturer", "order", "serialno", "crystal", "slice",
	"enrichment", "reprocessing", "mass_in_g",
}

const (
	deadLayerKey = "dl_thickness_in_mm"
	oldDate      = "02-01-2006"
	newDate      = "2006-01-02"
)

// Migrate converts one old-format record into the new schema. name is the
// file stem the record was read from. The input is left untouched. A non-nil
// DeadLayer is returned when the record carried a non-zero geometry dead
// layer.
func Migrate(name string, old *record.Object) (*record.Object, *DeadLayer, error) {
	doc, dl, err := migrate(name, old.Clone())
	if err != nil {
		return nil, nil, &RecordError{Name: name, Err: err}
	}
	return doc, dl, nil
}

func migrate(name string, doc *record.Object) (*record.Object, *DeadLayer, error) {
	// name first, and it must match the file
	detName, ok := doc.Get("det_name")
	if !ok {
		return nil, nil, fmt.Errorf("%w: det_name", ErrMissingField)
	}
	if s, _ := detName.(string); s != name {
		return nil, nil, fmt.Errorf("%w: det_name %v, file %s", ErrNameMismatch, detName, name)
	}
	doc.Rename("det_name", "name")
	doc = doc.Reorder("name")

	l200, err := section(doc, "characterization", "l200_site")
	if err != nil {
		return nil, nil, err
	}
	// data path and elog URL are not kept
	l200.Delete("data")
	l200.Delete("elog")

	for _, r := range renames {
		o, err := section(doc, r.path...)
		if err != nil {
			return nil, nil, err
		}
		o.Rename(r.from, r.to)
	}

	geom, err := section(doc, "geometry")
	if err != nil {
		return nil, nil, err
	}
	prod, err := section(doc, "production")
	if err != nil {
		return nil, nil, err
	}
	mass, ok := geom.Get("mass_in_g")
	if !ok {
		return nil, nil, fmt.Errorf("%w: geometry.mass_in_g", ErrMissingField)
	}
	geom.Delete("mass_in_g")
	prod.Set("mass_in_g", mass)
	prod = prod.Reorder(productionOrder...)
	doc.Set("production", prod)

	var dl *DeadLayer
	if v, ok := geom.Get(deadLayerKey); ok {
		if f, isNum := record.Float(v); isNum && f != 0 {
			dl = &DeadLayer{Name: name, ThicknessMM: f}
		}
		geom.Delete(deadLayerKey)
	} else {
		monitoring.Logf("%s missing dl field", name)
	}

	if err := convertDate(prod); err != nil {
		return nil, nil, err
	}

	if err := normalize(name, doc, prod); err != nil {
		return nil, nil, err
	}
	return doc, dl, nil
}

// section walks keys down from doc and returns the object found there.
func section(doc *record.Object, keys ...string) (*record.Object, error) {
	cur := doc
	for i, k := range keys {
		next, ok := cur.Object(k)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(keys[:i+1], "."))
		}
		cur = next
	}
	return cur, nil
}

// convertDate rewrites production.delivered from DD-MM-YYYY to YYYY-MM-DD.
// An empty date becomes null.
func convertDate(prod *record.Object) error {
	v, ok := prod.Get("delivered")
	if !ok {
		return fmt.Errorf("%w: production.delivered", ErrMissingField)
	}
	if v == nil {
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		return fmt.Errorf("%w: %v", ErrBadDate, v)
	}
	if s == "" {
		prod.Set("delivered", nil)
		return nil
	}
	t, err := time.Parse(oldDate, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	prod.Set("delivered", t.Format(newDate))
	return nil
}

// normalize replaces zero values that stand for "not measured" with null.
func normalize(name string, doc, prod *record.Object) error {
	if nullIfZero(prod, "enrichment") {
		monitoring.Logf("%s enrichment info is missing!", name)
	}
	if nullIfZero(prod, "depletion_voltage_in_V") {
		monitoring.Logf("%s char site depV info is missing!", name)
	}

	man, err := section(doc, "characterization", "manufacturer")
	if err != nil {
		return err
	}
	if nullIfZero(man, "depletion_voltage_in_V") {
		monitoring.Logf("Detector %s has no depletion_voltage_in_V info from vendor", name)
	}
	if rec, ok := man.Get("recommended_voltage_in_V"); !ok || rec == nil || record.IsZero(rec) {
		return ErrMissingRecommendedVoltage
	}
	nullIfZero(man, "fwhm_co57fep_in_keV")
	nullIfZero(man, "fwhm_co60fep_in_keV")

	fwhm, err := section(doc, "characterization", "l200_site", "fwhm")
	if err != nil {
		return err
	}
	// FWHM at Qbb in particular is often not measured at all.
	for _, k := range []string{"cofep_in_keV", "tlfep_in_keV", "qbb_in_keV"} {
		if v, ok := fwhm.Get(k); !ok || record.IsZero(v) {
			fwhm.Set(k, nil)
		}
	}

	sf, err := section(doc, "characterization", "l200_site", "survival_fraction")
	if err != nil {
		return err
	}
	for _, k := range []string{"tldep_in_pc", "qbb_in_pc", "tlsep_in_pc", "tlfep_in_pc"} {
		nullIfZero(sf, k)
	}
	return nil
}

func nullIfZero(o *record.Object, key string) bool {
	v, ok := o.Get(key)
	if !ok || !record.IsZero(v) {
		return false
	}
	o.Set(key, nil)
	return true
}
