package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimestampVariant_Admits(t *testing.T) {
	randomised := RawAxisCatalog{HasRandomization: true, DrugNames: []string{"DrugA"}}
	plain := RawAxisCatalog{}

	tests := map[string]struct {
		variant TimestampVariant
		catalog RawAxisCatalog
		view    ViewID
		want    bool
	}{
		"no rules": {
			variant: TimestampVariant{Names: []string{"X"}},
			catalog: plain, view: LabsBoxplot, want: true,
		},
		"allow list hit": {
			variant: TimestampVariant{Allow: []ViewID{LabsBoxplot}},
			catalog: plain, view: LabsBoxplot, want: true,
		},
		"allow list miss": {
			variant: TimestampVariant{Allow: []ViewID{LabsBoxplot}},
			catalog: plain, view: VitalsBoxplot, want: false,
		},
		"deny list hit": {
			variant: TimestampVariant{Deny: []ViewID{CtdnaPlot}},
			catalog: plain, view: CtdnaPlot, want: false,
		},
		"deny list miss": {
			variant: TimestampVariant{Deny: []ViewID{CtdnaPlot}},
			catalog: plain, view: LabsBoxplot, want: true,
		},
		"allow wins over deny": {
			variant: TimestampVariant{Allow: []ViewID{CtdnaPlot}, Deny: []ViewID{CtdnaPlot}},
			catalog: plain, view: CtdnaPlot, want: true,
		},
		"predicate rejects": {
			variant: TimestampVariant{Predicate: hasRandomization},
			catalog: plain, view: LabsBoxplot, want: false,
		},
		"predicate accepts": {
			variant: TimestampVariant{Predicate: hasRandomization},
			catalog: randomised, view: LabsBoxplot, want: true,
		},
		"drug required without drugs": {
			variant: TimestampVariant{RequiresDrug: true},
			catalog: plain, view: LabsBoxplot, want: false,
		},
		"drug required with drugs": {
			variant: TimestampVariant{RequiresDrug: true},
			catalog: randomised, view: LabsBoxplot, want: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.variant.Admits(tc.catalog, tc.view))
		})
	}
}

func TestTimestampVariants_Table(t *testing.T) {
	table := TimestampVariants()

	var names [][]string
	for _, tv := range table {
		names = append(names, tv.Names)
	}
	assert.Equal(t, [][]string{
		{Date},
		{DaysSinceFirstDose, WeeksSinceFirstDose},
		{DaysHoursSinceFirstDose},
		{DaysSinceRandomisation, WeeksSinceRandomisation},
		{DaysHoursSinceRandomisation},
		{DaysSinceFirstDoseOfDrug, WeeksSinceFirstDoseOfDrug},
	}, names)

	for i, tv := range table {
		if tv.Allow != nil && tv.Deny != nil {
			for _, v := range tv.Allow {
				assert.NotContains(t, tv.Deny, v, "row %d lists %s in both allow and deny", i, v)
			}
		}
	}
}

func TestTimestampVariants_ReturnsCopy(t *testing.T) {
	table := TimestampVariants()
	table[0].Names[0] = "CHANGED"
	table[0].Deny[0] = LabsBoxplot

	fresh := TimestampVariants()
	assert.Equal(t, Date, fresh[0].Names[0])
	assert.Equal(t, CtdnaPlot, fresh[0].Deny[0])
}
