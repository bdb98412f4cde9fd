// Package units provides shared constants and conversions for the physical
// units found in detector metadata.
package units

// Mass unit constants
const (
	Gram     = "g"
	Kilogram = "kg"
)

// ValidMassUnits contains all valid mass unit values
var ValidMassUnits = []string{Gram, Kilogram}

// IsValidMass checks if the given unit is a known mass unit
func IsValidMass(unit string) bool {
	for _, validUnit := range ValidMassUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GramsToKilograms converts a mass in grams (as stored in metadata) to kg.
func GramsToKilograms(g float64) float64 {
	return g / 1000.
}

// ConvertMass converts a mass in grams to the target units.
// Metadata stores masses in grams.
func ConvertMass(massG float64, targetUnits string) float64 {
	switch targetUnits {
	case Kilogram:
		return GramsToKilograms(massG)
	default:
		return massG // default to grams if unknown unit
	}
}

// ParamUnits maps table parameters to the unit shown next to averages.
// Mass is listed in kg because the detector table converts it.
var ParamUnits = map[string]string{
	"mass":          Kilogram,
	"fwhm_Qbb":      "keV",
	"fwhm_Co60":     "keV",
	"fwhm_TlFEP":    "keV",
	"fwhm_Co60_man": "keV",
	"fwhm_Co57_man": "keV",
	"depV":          "V",
	"depV_man":      "V",
	"recV":          "V",
	"recV_man":      "V",
	"radius":        "mm",
	"height":        "mm",
	"dl":            "mm",
	"dl_man":        "mm",
	"sf_TlDEP":      "%",
	"sf_Qbb":        "%",
	"sf_TlSEP":      "%",
	"sf_TlFEP":      "%",
}
