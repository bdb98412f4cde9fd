package detector

// Production status categories shown in the detector pie chart.
const (
	LabelICPCNew     = "ICPC (new)"
	LabelICPCGerda   = "ICPC (GERDA)"
	LabelICPCPlanned = "ICPC (planned)"
	LabelBEGe        = "BEGe (GERDA)"
	LabelPPC         = "PPC (MJD)"
	LabelCoax        = "Coax (GERDA)"
)

// Label returns the production category of a detector. ICPCs from order 0
// were inherited from GERDA and get their own category.
func Label(n Name) string {
	switch n.Type {
	case ICPC:
		if n.Order == 0 {
			return LabelICPCGerda
		}
		return LabelICPCNew
	case BEGe:
		return LabelBEGe
	case PPC:
		return LabelPPC
	case Coax:
		return LabelCoax
	default:
		return n.Type.Geometry()
	}
}

// CategoryColors are the chart colours of each production category.
var CategoryColors = map[string]string{
	LabelICPCNew:     "#07a9ff",
	LabelBEGe:        "#2ca02c",
	LabelCoax:        "#9467bd",
	LabelICPCGerda:   "#1f77b4",
	LabelPPC:         "#ff7f0e",
	LabelICPCPlanned: "#cccccc",
}

// OrderColors are the series colours per production order. Order 0 is the
// GERDA ICPC batch.
var OrderColors = map[int]string{
	0:  "#bcbd22",
	1:  "#ff0000",
	2:  "#bf00bf",
	4:  "#0000ff",
	5:  "#00bfbf",
	6:  "#de3163",
	7:  "#008000",
	8:  "#8c564b",
	9:  "#ffa500",
	10: "#5c00a3",
}
