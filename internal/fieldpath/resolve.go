// Package fieldpath locates scalar parameters inside nested detector metadata
// documents using a static table of key paths.
package fieldpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
)

var (
	// ErrUnknownParam is returned for parameter keys that are not in the table.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrFieldMissing is returned by the strict lookups when a key is absent.
	ErrFieldMissing = errors.New("field missing")
)

// Zero is the sentinel returned by Resolve for missing fields. Downstream
// code treats a zero value as "no data".
const Zero = float64(0)

// Path is the ordered sequence of nested keys leading to a value.
type Path []string

// String joins the keys with dots.
func (p Path) String() string { return strings.Join(p, ".") }

// Table maps short parameter keys to paths.
type Table map[string]Path

// Params returns the parameter keys of t, sorted.
func (t Table) Params() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Path returns the path registered for param.
func (t Table) Path(param string) (Path, error) {
	p, ok := t[param]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownParam, param, strings.Join(t.Params(), ", "))
	}
	return p, nil
}

// Result is the outcome of a lookup: either Found with a value or Missing.
type Result struct {
	Value any
	Found bool
}

// Missing is the result of a lookup that hit an absent key.
var Missing = Result{}

// Found wraps a located value.
func Found(v any) Result { return Result{Value: v, Found: true} }

// Lookup walks path through doc. A key that is absent, or an intermediate
// value that is not an object, yields Missing, as does an empty path. The
// final value may be null.
func Lookup(doc *record.Object, path Path) Result {
	if doc == nil || len(path) == 0 {
		return Missing
	}
	cur := doc
	for i, key := range path {
		v, ok := cur.Get(key)
		if !ok {
			return Missing
		}
		if i == len(path)-1 {
			return Found(scalar(v))
		}
		next, ok := v.(*record.Object)
		if !ok || next == nil {
			return Missing
		}
		cur = next
	}
	return Missing
}

// scalar converts json.Number to float64; other values pass through.
func scalar(v any) any {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}

// Resolve returns the value of param in doc. A missing field is reported as a
// warning and resolves to the Zero sentinel, so "absent" and "measured zero"
// are indistinguishable to the caller.
func (t Table) Resolve(doc *record.Object, param string) (any, error) {
	path, err := t.Path(param)
	if err != nil {
		return nil, err
	}
	res := Lookup(doc, path)
	if !res.Found {
		monitoring.Warnf("Parameter %s not in json!", param)
		return Zero, nil
	}
	return res.Value, nil
}

// MustFind is the strict form of Resolve: a missing field is an error
// wrapping ErrFieldMissing instead of the Zero sentinel.
func (t Table) MustFind(doc *record.Object, param string) (any, error) {
	path, err := t.Path(param)
	if err != nil {
		return nil, err
	}
	res := Lookup(doc, path)
	if !res.Found {
		return nil, fmt.Errorf("%s (%s): %w", param, path, ErrFieldMissing)
	}
	return res.Value, nil
}
