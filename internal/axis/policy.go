package axis

import (
	"fmt"
	"slices"
)

// Policy holds the per-view selection rules.
type Policy struct {
	// Legacy views predate the rule engine and pick defaults from raw values.
	Legacy bool
	// NoneOption views offer the synthetic NONE option first.
	NoneOption bool

	// XOngoing is the X preference list for ongoing studies. XCompleted
	// overrides it for completed studies when set.
	XOngoing   []string
	XCompleted []string

	Y []string
	// YTimepointKeys, when set, makes the Y default a measurement/timepoint
	// pair built from the trellis metadata. Keys are tried in order.
	YTimepointKeys []string
}

// XPreferences returns the ordered X preference list.
func (p Policy) XPreferences(isOngoingStudy bool) []string {
	if !isOngoingStudy && len(p.XCompleted) > 0 {
		return p.XCompleted
	}
	return p.XOngoing
}

// Trellised reports whether the Y default comes from trellis metadata.
func (p Policy) Trellised() bool {
	return len(p.YTimepointKeys) > 0
}

const (
	studyID              = "STUDY_ID"
	visitNumber          = "VISIT_NUMBER"
	countOfSubjects      = "COUNT_OF_SUBJECTS"
	countOfEvents        = "COUNT_OF_EVENTS"
	resultValue          = "RESULT_VALUE"
	analyteConcentration = "ANALYTE_CONCENTRATION"
	measurement          = "MEASUREMENT"
)

var policies = [numViews]Policy{
	PopulationBarchart: {
		Legacy:     true,
		XOngoing:   []string{"WITHDRAWAL", studyID},
		XCompleted: []string{"ACTUAL_TREATMENT_ARM", studyID},
		Y:          []string{countOfSubjects},
	},
	AesCountsBarchart: {
		Legacy:   true,
		XOngoing: []string{"PT", studyID},
		Y:        []string{countOfSubjects, "PERCENTAGE_OF_SUBJECTS"},
	},
	AesOverTime: {
		XOngoing:   []string{WeeksSinceFirstDose, Date},
		XCompleted: []string{WeeksSinceRandomisation, WeeksSinceFirstDose},
		Y:          []string{countOfSubjects},
	},
	ConmedsBarchart: {
		Legacy:   true,
		XOngoing: []string{"ATC_CODE", studyID},
		Y:        []string{countOfSubjects},
	},
	RenalCkdBarchart: {
		Legacy:   true,
		XOngoing: []string{"CKD_STAGE", studyID},
		Y:        []string{"PERCENTAGE_OF_SUBJECTS", countOfSubjects},
	},
	ExposurePlot: {
		XOngoing: []string{DaysSinceFirstDose, Date},
		Y:        []string{analyteConcentration},
	},
	LabsBoxplot: {
		XOngoing: []string{visitNumber, WeeksSinceFirstDose},
		Y:        []string{analyteConcentration},
	},
	LabsLineplot: {
		XOngoing: []string{DaysSinceFirstDose, visitNumber},
		Y:        []string{analyteConcentration},
	},
	LabsShiftplot: {
		XOngoing:       []string{"BASELINE_VALUE"},
		Y:              []string{measurement},
		YTimepointKeys: []string{visitNumber, "CYCLE_DAY"},
	},
	VitalsBoxplot: {
		XOngoing: []string{visitNumber, WeeksSinceFirstDose},
		Y:        []string{resultValue},
	},
	VitalsLineplot: {
		XOngoing: []string{DaysSinceFirstDose, visitNumber},
		Y:        []string{resultValue},
	},
	EcgBoxplot: {
		XOngoing: []string{visitNumber, WeeksSinceFirstDose},
		Y:        []string{resultValue},
	},
	EcgLineplot: {
		XOngoing: []string{DaysSinceFirstDose, visitNumber},
		Y:        []string{resultValue},
	},
	LungFunctionBoxplot: {
		XOngoing: []string{visitNumber, WeeksSinceFirstDose},
		Y:        []string{resultValue},
	},
	LungFunctionLineplot: {
		XOngoing: []string{DaysSinceFirstDose, visitNumber},
		Y:        []string{resultValue},
	},
	ExacerbationsCounts: {
		XOngoing: []string{"EXACERBATION_CLASSIFICATION", studyID},
		Y:        []string{countOfEvents},
	},
	ExacerbationsOverTime: {
		XOngoing:   []string{WeeksSinceFirstTreatment, Date},
		XCompleted: []string{WeeksSinceRandomisation, WeeksSinceFirstTreatment},
		Y:          []string{countOfEvents},
	},
	CvotEndpointsCounts: {
		NoneOption: true,
		XOngoing:   []string{"CATEGORY_1", NoneKey},
		Y:          []string{countOfEvents},
	},
	CvotEndpointsOverTime: {
		XOngoing: []string{WeeksSinceFirstTreatment, Date},
		Y:        []string{countOfEvents},
	},
	CerebrovascularCounts: {
		NoneOption: true,
		XOngoing:   []string{"EVENT_TYPE", NoneKey},
		Y:          []string{countOfEvents},
	},
	CiEventCounts: {
		NoneOption: true,
		XOngoing:   []string{"FINAL_DIAGNOSIS", NoneKey},
		Y:          []string{countOfEvents},
	},
	CtdnaPlot: {
		XOngoing: []string{DaysSinceFirstDose, visitNumber},
		Y:        []string{"VARIANT_ALLELE_FREQUENCY_PERCENT", "VARIANT_ALLELE_FREQUENCY"},
	},
	TumourLineplot: {
		XOngoing: []string{WeeksSinceFirstDose, visitNumber},
		Y:        []string{"PERCENTAGE_CHANGE"},
	},
	TumourResponseWaterfall: {
		XOngoing: []string{"SUBJECT"},
		Y:        []string{"BEST_PERCENTAGE_CHANGE_FROM_BASELINE"},
	},
	PkResultsBoxplot: {
		XOngoing:       []string{"ARM", "DOSE"},
		Y:              []string{measurement},
		YTimepointKeys: []string{"CYCLE_DAY", visitNumber},
	},
}

func init() {
	if err := validatePolicies(); err != nil {
		panic(err)
	}
}

func validatePolicies() error {
	for i, p := range policies {
		if len(p.XOngoing) == 0 || len(p.Y) == 0 {
			return fmt.Errorf("axis: no selection policy for view %s", ViewID(i))
		}
	}
	return nil
}

func policyFor(view ViewID) *Policy {
	if !view.Valid() {
		return &Policy{}
	}
	return &policies[view]
}

// PolicyFor returns a copy of the selection rules of view.
func PolicyFor(view ViewID) Policy {
	p := *policyFor(view)
	p.XOngoing = slices.Clone(p.XOngoing)
	p.XCompleted = slices.Clone(p.XCompleted)
	p.Y = slices.Clone(p.Y)
	p.YTimepointKeys = slices.Clone(p.YTimepointKeys)
	return p
}
