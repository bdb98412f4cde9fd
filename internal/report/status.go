// Package report turns detector tables into chart-ready aggregates: the
// production status breakdown and per-order parameter series.
package report

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/monitoring"
)

// DefaultTargetMassKg is the total enriched germanium mass the production
// status is measured against.
const DefaultTargetMassKg = 200

// Category is one wedge of the production status chart.
type Category struct {
	Label     string
	Detectors int
	// RawMassKg is the exact mass sum; MassKg is rounded to whole kg and is
	// what the chart shows and the planned remainder is computed from.
	RawMassKg float64
	MassKg    int
	Color     string
	Planned   bool
}

// Text is the multi-line wedge caption.
func (c Category) Text() string {
	if c.Planned {
		return fmt.Sprintf("%s\n%dkg", c.Label, c.MassKg)
	}
	return fmt.Sprintf("%s\n%d detectors\n%dkg", c.Label, c.Detectors, c.MassKg)
}

// Status is the production status breakdown.
type Status struct {
	Categories     []Category
	TotalDetectors int
	TotalMassKg    float64
	TargetMassKg   int
}

// ProductionStatus groups a mass table by production category and adds the
// planned remainder up to targetKg. The remainder goes negative, unclamped,
// when the observed mass exceeds the target.
func ProductionStatus(t *dettable.Table, targetKg int) (*Status, error) {
	if !t.Has(dettable.MassParam) {
		return nil, fmt.Errorf("production status needs the %q column", dettable.MassParam)
	}

	masses := make(map[string][]float64)
	for i, r := range t.Rows {
		n, err := detector.Parse(r.Name)
		if err != nil {
			return nil, err
		}
		kg, _ := t.Float(i, dettable.MassParam)
		label := detector.Label(n)
		masses[label] = append(masses[label], kg)
	}

	s := &Status{TotalDetectors: t.Len(), TargetMassKg: targetKg}
	s.TotalMassKg = floats.Sum(t.Column(dettable.MassParam))
	monitoring.Logf("total number of detectors: %d", s.TotalDetectors)
	monitoring.Logf("total mass: %v", s.TotalMassKg)

	observed := 0
	for label, ms := range masses {
		raw := floats.Sum(ms)
		c := Category{
			Label:     label,
			Detectors: len(ms),
			RawMassKg: raw,
			MassKg:    int(math.RoundToEven(raw)),
			Color:     detector.CategoryColors[label],
		}
		observed += c.MassKg
		s.Categories = append(s.Categories, c)
	}

	planned := targetKg - observed
	if planned < 0 {
		monitoring.Warnf("observed mass %dkg exceeds the %dkg target", observed, targetKg)
	}
	s.Categories = append(s.Categories, Category{
		Label:     detector.LabelICPCPlanned,
		RawMassKg: float64(planned),
		MassKg:    planned,
		Color:     detector.CategoryColors[detector.LabelICPCPlanned],
		Planned:   true,
	})

	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Label < s.Categories[j].Label
	})
	for _, c := range s.Categories {
		if c.Planned {
			monitoring.Logf("leftover: %dkg", c.MassKg)
			continue
		}
		monitoring.Logf("----%s: %d detectors - %dkg", c.Label, c.Detectors, c.MassKg)
	}
	return s, nil
}

// Planned returns the synthetic remainder category.
func (s *Status) Planned() Category {
	for _, c := range s.Categories {
		if c.Planned {
			return c
		}
	}
	return Category{}
}

// ObservedMassKg sums the rounded masses of the real categories.
func (s *Status) ObservedMassKg() int {
	sum := 0
	for _, c := range s.Categories {
		if !c.Planned {
			sum += c.MassKg
		}
	}
	return sum
}
