package axis

import (
	"fmt"
	"strings"
)

// ViewID identifies the analysis tab requesting axis options.
type ViewID int

const (
	PopulationBarchart ViewID = iota
	AesCountsBarchart
	AesOverTime
	ConmedsBarchart
	RenalCkdBarchart
	ExposurePlot
	LabsBoxplot
	LabsLineplot
	LabsShiftplot
	VitalsBoxplot
	VitalsLineplot
	EcgBoxplot
	EcgLineplot
	LungFunctionBoxplot
	LungFunctionLineplot
	ExacerbationsCounts
	ExacerbationsOverTime
	CvotEndpointsCounts
	CvotEndpointsOverTime
	CerebrovascularCounts
	CiEventCounts
	CtdnaPlot
	TumourLineplot
	TumourResponseWaterfall
	PkResultsBoxplot

	numViews
)

var viewNames = [numViews]string{
	PopulationBarchart:      "POPULATION_BARCHART",
	AesCountsBarchart:       "AES_COUNTS_BARCHART",
	AesOverTime:             "AES_OVER_TIME",
	ConmedsBarchart:         "CONMEDS_BARCHART",
	RenalCkdBarchart:        "RENAL_CKD_BARCHART",
	ExposurePlot:            "EXPOSURE_PLOT",
	LabsBoxplot:             "LABS_BOXPLOT",
	LabsLineplot:            "LABS_LINEPLOT",
	LabsShiftplot:           "LABS_SHIFTPLOT",
	VitalsBoxplot:           "VITALS_BOXPLOT",
	VitalsLineplot:          "VITALS_LINEPLOT",
	EcgBoxplot:              "ECG_BOXPLOT",
	EcgLineplot:             "ECG_LINEPLOT",
	LungFunctionBoxplot:     "LUNGFUNCTION_BOXPLOT",
	LungFunctionLineplot:    "LUNGFUNCTION_LINEPLOT",
	ExacerbationsCounts:     "EXACERBATIONS_COUNTS",
	ExacerbationsOverTime:   "EXACERBATIONS_OVER_TIME",
	CvotEndpointsCounts:     "CVOT_ENDPOINTS_COUNTS",
	CvotEndpointsOverTime:   "CVOT_ENDPOINTS_OVER_TIME",
	CerebrovascularCounts:   "CEREBROVASCULAR_COUNTS",
	CiEventCounts:           "CI_EVENT_COUNTS",
	CtdnaPlot:               "CTDNA_PLOT",
	TumourLineplot:          "TUMOUR_LINEPLOT",
	TumourResponseWaterfall: "TUMOUR_RESPONSE_WATERFALL_PLOT",
	PkResultsBoxplot:        "PK_RESULTS_BOXPLOT",
}

func (v ViewID) String() string {
	if !v.Valid() {
		return fmt.Sprintf("ViewID(%d)", int(v))
	}
	return viewNames[v]
}

// Valid reports whether v is one of the declared views.
func (v ViewID) Valid() bool {
	return v >= 0 && v < numViews
}

// ParseViewID looks a view up by its wire name. Matching is case-insensitive.
func ParseViewID(name string) (ViewID, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range viewNames {
		if n == upper {
			return ViewID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", name)
}

// AllViews returns every declared view in declaration order.
func AllViews() []ViewID {
	views := make([]ViewID, numViews)
	for i := range views {
		views[i] = ViewID(i)
	}
	return views
}

func (v ViewID) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid view %d", int(v))
	}
	return []byte(viewNames[v]), nil
}

func (v *ViewID) UnmarshalText(text []byte) error {
	parsed, err := ParseViewID(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
