// Package dettable builds the row-per-detector view of selected metadata
// parameters.
package dettable

import (
	"fmt"
	"sort"

	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/fieldpath"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
	"github.com/legend-exp/detinfo/internal/units"
)

// DefaultMaxOrder includes every production order.
const DefaultMaxOrder = 10000

// MassParam is converted from grams to kilograms when requested.
const MassParam = "mass"

// Options selects what goes into a Table.
type Options struct {
	// Params are parameter keys of the field path table; they become columns.
	Params []string
	// Types restricts detectors by type letter. Empty means all types.
	Types []detector.Type
	// MaxOrder drops detectors from later orders. Nil means DefaultMaxOrder;
	// a limit of 0 keeps only the order-0 (GERDA) detectors.
	MaxOrder *int
	// MassUnit is the unit mass is shown in. Empty means kilograms.
	MassUnit string
	// Paths is the field path table to resolve against. Nil means fieldpath.New.
	Paths fieldpath.Table
}

// Row holds the resolved parameters of one detector.
type Row struct {
	Name   string
	Order  int
	Type   detector.Type
	Values map[string]any
}

// Table is a list of rows sorted by (order, name).
type Table struct {
	Params []string
	Rows   []Row
}

// Build lists the matching detectors in store and resolves every requested
// parameter for each. Missing fields resolve to fieldpath.Zero.
func Build(store *record.Store, opts Options) (*Table, error) {
	paths := opts.Paths
	if paths == nil {
		paths = fieldpath.New
	}
	for _, p := range opts.Params {
		if _, err := paths.Path(p); err != nil {
			return nil, err
		}
	}
	massUnit := opts.MassUnit
	if massUnit == "" {
		massUnit = units.Kilogram
	}
	if !units.IsValidMass(massUnit) {
		return nil, fmt.Errorf("unknown mass unit %q (valid: %v)", massUnit, units.ValidMassUnits)
	}
	maxOrder := DefaultMaxOrder
	if opts.MaxOrder != nil {
		maxOrder = *opts.MaxOrder
	}

	names, err := List(store, opts.Types, maxOrder)
	if err != nil {
		return nil, err
	}

	t := &Table{Params: append([]string(nil), opts.Params...)}
	for _, n := range names {
		doc, err := store.Load(n.Raw)
		if err != nil {
			return nil, err
		}
		row := Row{Name: n.Raw, Order: n.Order, Type: n.Type, Values: make(map[string]any, len(opts.Params))}
		for _, p := range opts.Params {
			v, err := paths.Resolve(doc, p)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n.Raw, err)
			}
			row.Values[p] = v
		}
		t.Rows = append(t.Rows, row)
	}

	t.Sort()
	if t.Has(MassParam) {
		t.convertMass(massUnit)
	}
	return t, nil
}

// OrderLimit returns a MaxOrder value for Options.
func OrderLimit(n int) *int { return &n }

// List returns the parsed names of the detectors in store whose type is in
// types and whose order does not exceed maxOrder, sorted by name.
func List(store *record.Store, types []detector.Type, maxOrder int) ([]detector.Name, error) {
	if len(types) == 0 {
		types = detector.AllTypes
	}
	ids, err := store.Names()
	if err != nil {
		return nil, err
	}

	var out []detector.Name
	for _, id := range ids {
		if id == "" || !containsType(types, detector.Type(id[0])) {
			continue
		}
		n, err := detector.Parse(id)
		if err != nil {
			monitoring.Warnf("skipping %s: %v", id, err)
			continue
		}
		if n.Order > maxOrder {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func containsType(types []detector.Type, t detector.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// Sort orders rows by (order, name).
func (t *Table) Sort() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Name < b.Name
	})
}

func (t *Table) convertMass(unit string) {
	for i := range t.Rows {
		if g, ok := record.Float(t.Rows[i].Values[MassParam]); ok {
			t.Rows[i].Values[MassParam] = units.ConvertMass(g, unit)
		}
	}
}

// Has reports whether param is a column of t.
func (t *Table) Has(param string) bool {
	for _, p := range t.Params {
		if p == param {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Float returns the numeric value of param in row i. Non-numeric and null
// values report false.
func (t *Table) Float(i int, param string) (float64, bool) {
	if i < 0 || i >= len(t.Rows) {
		return 0, false
	}
	return record.Float(t.Rows[i].Values[param])
}

// Column returns the numeric values of param, one per row; non-numeric
// values become 0.
func (t *Table) Column(param string) []float64 {
	out := make([]float64, len(t.Rows))
	for i := range t.Rows {
		out[i], _ = t.Float(i, param)
	}
	return out
}

// Names returns the detector names in row order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Name
	}
	return out
}
