package units

import (
	"math"
	"testing"
)

func TestConvertMass(t *testing.T) {
	tests := []struct {
		name     string
		massG    float64
		units    string
		expected float64
	}{
		{"ICPC 2286.2 g to kg", 2286.2, Kilogram, 2.2862},
		{"BEGe 496 g to kg", 496, Kilogram, 0.496},
		{"grams unchanged", 496, Gram, 496},
		{"unknown units default to g", 496, "lb", 496},
		{"0 g to kg", 0, Kilogram, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertMass(tt.massG, tt.units)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("ConvertMass(%f, %s) = %f, want %f", tt.massG, tt.units, result, tt.expected)
			}
		})
	}
}

func TestGramsToKilograms_IsOneThousandth(t *testing.T) {
	for _, g := range []float64{0, 1, 496, 2286.2, 3012.75} {
		if got := GramsToKilograms(g); got != g/1000 {
			t.Errorf("GramsToKilograms(%v) = %v, want %v", g, got, g/1000)
		}
	}
}

func TestIsValidMass(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid g", Gram, true},
		{"valid kg", Kilogram, true},
		{"invalid unit", "lb", false},
		{"empty string", "", false},
		{"case sensitive", "KG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidMass(tt.unit); got != tt.expected {
				t.Errorf("IsValidMass(%s) = %v, want %v", tt.unit, got, tt.expected)
			}
		})
	}
}

func TestParamUnits(t *testing.T) {
	if ParamUnits["mass"] != Kilogram {
		t.Errorf("mass unit = %q, want kg", ParamUnits["mass"])
	}
	if ParamUnits["fwhm_Qbb"] != "keV" {
		t.Errorf("fwhm_Qbb unit = %q, want keV", ParamUnits["fwhm_Qbb"])
	}
}
