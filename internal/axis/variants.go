package axis

import "slices"

// Timestamp variant names.
const (
	Date                        = "DATE"
	DaysSinceFirstDose          = "DAYS_SINCE_FIRST_DOSE"
	WeeksSinceFirstDose         = "WEEKS_SINCE_FIRST_DOSE"
	DaysHoursSinceFirstDose     = "DAYS_HOURS_SINCE_FIRST_DOSE"
	DaysSinceRandomisation      = "DAYS_SINCE_RANDOMISATION"
	WeeksSinceRandomisation     = "WEEKS_SINCE_RANDOMISATION"
	DaysHoursSinceRandomisation = "DAYS_HOURS_SINCE_RANDOMISATION"
	DaysSinceFirstDoseOfDrug    = "DAYS_SINCE_FIRST_DOSE_OF_DRUG"
	WeeksSinceFirstDoseOfDrug   = "WEEKS_SINCE_FIRST_DOSE_OF_DRUG"

	// WeeksSinceFirstTreatment only appears in preference lists and is
	// rewritten to WeeksSinceFirstDose before matching.
	WeeksSinceFirstTreatment = "WEEKS_SINCE_FIRST_TREATMENT"
)

// TimestampVariant is one row of the variant table: a group of names sharing
// the same inclusion rules.
type TimestampVariant struct {
	Names []string

	// Allow, when non-nil, restricts the variant to these views.
	Allow []ViewID
	// Deny, when non-nil, suppresses the variant for these views.
	Deny []ViewID
	// Predicate, when non-nil, must accept the catalog.
	Predicate func(RawAxisCatalog) bool

	// RequiresDrug variants need at least one drug and carry the first drug
	// name as a parameter.
	RequiresDrug bool
}

// Admits reports whether the variant is produced for view given catalog.
// A view present in both Allow and Deny is admitted.
func (tv TimestampVariant) Admits(catalog RawAxisCatalog, view ViewID) bool {
	if tv.Predicate != nil && !tv.Predicate(catalog) {
		return false
	}
	if tv.RequiresDrug && len(catalog.DrugNames) == 0 {
		return false
	}
	if tv.Allow != nil {
		return slices.Contains(tv.Allow, view)
	}
	if tv.Deny != nil && slices.Contains(tv.Deny, view) {
		return false
	}
	return true
}

func hasRandomization(c RawAxisCatalog) bool {
	return c.HasRandomization
}

var lineplotViews = []ViewID{
	LabsLineplot,
	VitalsLineplot,
	EcgLineplot,
	LungFunctionLineplot,
	TumourLineplot,
}

// variantTable is read-only after init. Reconcile depends on the position of
// the first-dose row.
var variantTable = []TimestampVariant{
	{
		Names: []string{Date},
		Deny:  []ViewID{CtdnaPlot, TumourLineplot},
	},
	{
		Names: []string{DaysSinceFirstDose, WeeksSinceFirstDose},
	},
	{
		Names: []string{DaysHoursSinceFirstDose},
		Allow: lineplotViews,
	},
	{
		Names:     []string{DaysSinceRandomisation, WeeksSinceRandomisation},
		Deny:      []ViewID{CtdnaPlot},
		Predicate: hasRandomization,
	},
	{
		Names:     []string{DaysHoursSinceRandomisation},
		Allow:     lineplotViews,
		Predicate: hasRandomization,
	},
	{
		Names:        []string{DaysSinceFirstDoseOfDrug, WeeksSinceFirstDoseOfDrug},
		Deny:         []ViewID{CtdnaPlot, ExposurePlot},
		RequiresDrug: true,
	},
}

// TimestampVariants returns a copy of the ordered variant table.
func TimestampVariants() []TimestampVariant {
	out := make([]TimestampVariant, len(variantTable))
	for i, tv := range variantTable {
		tv.Names = slices.Clone(tv.Names)
		tv.Allow = slices.Clone(tv.Allow)
		tv.Deny = slices.Clone(tv.Deny)
		out[i] = tv
	}
	return out
}
