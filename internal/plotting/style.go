package plotting

// Parameters drawn with triangles and no connecting line, typically vendor
// values plotted next to our own measurement.
var triangleParams = map[string]bool{
	"depV_man": true,
	"dl_man":   true,
}

// Legend entries per parameter. A parameter without an entry gets none.
// Markers are hollow unless the parameter is missing here or is our own
// measurement.
var paramLegend = map[string]string{
	"depV":     "L200 measurement",
	"depV_man": "vendor specification",
}

const ownMeasurement = "L200 measurement"

// y-axis titles; mass is in kg because the detector table converts it.
var yTitles = map[string]string{
	"depV":     "Depletion voltage [V]",
	"depV_man": "Depletion voltage [V]",
	"recV":     "Recommended voltage [V]",
	"recV_man": "Recommended voltage [V]",
	"mass":     "Mass [kg]",
	"dl":       "Dead layer [mm]",
	"dl_man":   "Dead layer [mm]",
	"enr":      "Enrichment (%)",
	"fwhm_Qbb": "FWHM @ Qbb [keV]",
	"height":   "Height [mm]",
	"radius":   "Radius [mm]",
	"sf_TlDEP": "Survival fraction Tl DEP (%)",
	"sf_Qbb":   "Survival fraction Qbb (%)",
}

func yTitle(param string) string {
	if t, ok := yTitles[param]; ok {
		return t
	}
	return param
}

func solidMarker(param string) bool {
	l, ok := paramLegend[param]
	return !ok || l == ownMeasurement
}

// watermark is printed along the right edge of parameter plots.
const watermark = "L200 - preliminary"
