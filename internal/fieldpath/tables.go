package fieldpath

// Format selects which metadata schema a table addresses.
type Format string

// Known formats.
const (
	FormatOld Format = "old"
	FormatNew Format = "new"
)

// New addresses records as written by the schema migration.
var New = Table{
	"date": {"production", "delivered"},

	"mass":   {"production", "mass_in_g"},
	"radius": {"geometry", "radius_in_mm"},
	"height": {"geometry", "height_in_mm"},

	"depV":     {"production", "depletion_voltage_in_V"},                       // measured at HADES
	"recV":     {"production", "recommended_voltage_in_V"},                     // measured at HADES
	"depV_man": {"characterization", "manufacturer", "depletion_voltage_in_V"}, // vendor
	"recV_man": {"characterization", "manufacturer", "recommended_voltage_in_V"},

	"fwhm_Qbb":      {"characterization", "l200_site", "fwhm", "qbb_in_keV"},
	"fwhm_Co60":     {"characterization", "l200_site", "fwhm", "cofep_in_keV"},
	"fwhm_TlFEP":    {"characterization", "l200_site", "fwhm", "tlfep_in_keV"},
	"fwhm_Co60_man": {"characterization", "manufacturer", "fwhm_co60fep_in_keV"},
	"fwhm_Co57_man": {"characterization", "manufacturer", "fwhm_co57fep_in_keV"},

	"sf_TlDEP": {"characterization", "l200_site", "survival_fraction", "tldep_in_pc"},
	"sf_Qbb":   {"characterization", "l200_site", "survival_fraction", "qbb_in_pc"},
	"sf_TlSEP": {"characterization", "l200_site", "survival_fraction", "tlsep_in_pc"},
	"sf_TlFEP": {"characterization", "l200_site", "survival_fraction", "tlfep_in_pc"},

	"dl_man": {"characterization", "manufacturer", "dl_thickness_in_mm"},

	"daq": {"characterization", "l200_site", "daq"},

	"enr":          {"production", "enrichment"},
	"repr":         {"production", "reprocessing"},
	"cry":          {"production", "crystal"},
	"serialno":     {"production", "serialno"},
	"slice":        {"production", "slice"},
	"manufacturer": {"production", "manufacturer"},
}

// Old addresses records in the pre-migration schema. It differs from New in
// where mass and the dead layer live and in the abbreviated key names.
var Old = Table{
	"date": {"production", "delivered"},

	"mass":   {"geometry", "mass_in_g"},
	"radius": {"geometry", "radius_in_mm"},
	"height": {"geometry", "height_in_mm"},

	"depV":     {"production", "dep_voltage_in_V"},
	"recV":     {"production", "rec_voltage_in_V"},
	"depV_man": {"characterization", "manufacturer", "dep_voltage_in_V"},
	"recV_man": {"characterization", "manufacturer", "op_voltage_in_V"},

	"fwhm_Qbb":      {"characterization", "l200_site", "res", "qbb_in_keV"},
	"fwhm_Co60":     {"characterization", "l200_site", "res", "cofep_in_keV"},
	"fwhm_TlFEP":    {"characterization", "l200_site", "res", "tlfep_in_keV"},
	"fwhm_Co60_man": {"characterization", "manufacturer", "60co_fep_res_in_keV"},
	"fwhm_Co57_man": {"characterization", "manufacturer", "57co_fep_res_in_keV"},

	"sf_TlDEP": {"characterization", "l200_site", "sf", "tldep_in_pc"},
	"sf_Qbb":   {"characterization", "l200_site", "sf", "qbb_in_pc"},
	"sf_TlSEP": {"characterization", "l200_site", "sf", "tlsep_in_pc"},
	"sf_TlFEP": {"characterization", "l200_site", "sf", "tlfep_in_pc"},

	"dl":     {"geometry", "dl_thickness_in_mm"},
	"dl_man": {"characterization", "manufacturer", "dl_thickness_in_mm"},

	"daq": {"characterization", "l200_site", "daq"},

	"enr":          {"production", "enrichment"},
	"repr":         {"production", "reprocessing"},
	"cry":          {"production", "crystal"},
	"serialno":     {"production", "serialno"},
	"slice":        {"production", "slice"},
	"manufacturer": {"production", "manufacturer"},
}

// ForFormat returns the table for the given format. Unknown formats yield
// false.
func ForFormat(f Format) (Table, bool) {
	switch f {
	case FormatNew, "":
		return New, true
	case FormatOld:
		return Old, true
	default:
		return nil, false
	}
}
