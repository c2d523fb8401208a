package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timestampCatalog(randomised bool, drugs ...string) RawAxisCatalog {
	return RawAxisCatalog{
		Options:          []RawAxisOption{{GroupByKey: "MEASUREMENT_TIME_POINT", IsTimestamp: true, IsBinnable: true}},
		DrugNames:        drugs,
		HasRandomization: randomised,
	}
}

func labels(opts []DisplayableOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.DisplayLabel
	}
	return out
}

func TestExpand_PassThroughKeepsOrder(t *testing.T) {
	catalog := RawAxisCatalog{Options: []RawAxisOption{
		{GroupByKey: "A", IsBinnable: true},
		{GroupByKey: "B"},
	}}

	got := Expand(catalog, LabsBoxplot)

	assert.Equal(t, []DisplayableOption{
		{DisplayLabel: "A", GroupByKey: "A", Params: Params{BinSize: 1}},
		{DisplayLabel: "B", GroupByKey: "B"},
	}, got)
}

func TestExpand_IsIdempotent(t *testing.T) {
	catalog := timestampCatalog(true, "DrugA")
	catalog.Options = append(catalog.Options, RawAxisOption{GroupByKey: visitNumber})

	assert.Equal(t, Expand(catalog, LabsLineplot), Expand(catalog, LabsLineplot))
}

func TestExpand_TimestampFullSequence(t *testing.T) {
	got := Expand(timestampCatalog(true, "DrugA", "DrugB"), LabsLineplot)

	const key = "MEASUREMENT_TIME_POINT"
	ts := func(name string) DisplayableOption {
		return DisplayableOption{DisplayLabel: name, GroupByKey: key, Params: Params{TimestampType: name, BinSize: 1}}
	}
	drug := func(name string) DisplayableOption {
		o := ts(name)
		o.Params.DrugName = "DrugA"
		return o
	}

	assert.Equal(t, []DisplayableOption{
		ts(Date),
		ts(DaysSinceFirstDose),
		ts(WeeksSinceFirstDose),
		ts(DaysHoursSinceFirstDose),
		ts(DaysSinceRandomisation),
		ts(WeeksSinceRandomisation),
		ts(DaysHoursSinceRandomisation),
		drug(DaysSinceFirstDoseOfDrug),
		drug(WeeksSinceFirstDoseOfDrug),
	}, got)
}

func TestExpand_TimestampWithoutBinning(t *testing.T) {
	catalog := RawAxisCatalog{Options: []RawAxisOption{{GroupByKey: "START_DATE", IsTimestamp: true}}}

	got := Expand(catalog, AesOverTime)

	require.NotEmpty(t, got)
	for _, o := range got {
		assert.Zero(t, o.Params.BinSize, o.DisplayLabel)
		assert.Equal(t, o.DisplayLabel, o.Params.TimestampType)
	}
}

func TestExpand_RandomisationDeniedForCtdna(t *testing.T) {
	catalog := timestampCatalog(true)

	ctdna := labels(Expand(catalog, CtdnaPlot))
	assert.NotContains(t, ctdna, DaysSinceRandomisation)
	assert.NotContains(t, ctdna, WeeksSinceRandomisation)

	other := labels(Expand(catalog, LabsBoxplot))
	assert.Contains(t, other, DaysSinceRandomisation)
	assert.Contains(t, other, WeeksSinceRandomisation)
}

func TestExpand_RandomisationNeedsRandomisedStudy(t *testing.T) {
	got := labels(Expand(timestampCatalog(false), LabsLineplot))

	assert.Equal(t, []string{Date, DaysSinceFirstDose, WeeksSinceFirstDose, DaysHoursSinceFirstDose}, got)
}

func TestExpand_NoDrugNeverCarriesDrugName(t *testing.T) {
	catalog := timestampCatalog(true)
	for _, view := range AllViews() {
		for _, o := range Expand(catalog, view) {
			assert.Empty(t, o.Params.DrugName, "%s: %s", view, o.DisplayLabel)
		}
	}
}

func TestExpand_DrugVariantsUseFirstDrug(t *testing.T) {
	got := Expand(timestampCatalog(false, "DrugA", "DrugB"), AesOverTime)

	var drugs []string
	for _, o := range got {
		if o.Params.DrugName != "" {
			drugs = append(drugs, o.DisplayLabel+"/"+o.Params.DrugName)
		}
	}
	assert.Equal(t, []string{DaysSinceFirstDoseOfDrug + "/DrugA", WeeksSinceFirstDoseOfDrug + "/DrugA"}, drugs)
}

func TestExpand_NoneSentinelScoping(t *testing.T) {
	catalog := RawAxisCatalog{Options: []RawAxisOption{{GroupByKey: "CATEGORY_1"}}}

	got := Expand(catalog, CvotEndpointsCounts)
	require.Len(t, got, 2)
	assert.Equal(t, NoneOption(), got[0])

	for _, view := range AllViews() {
		if PolicyFor(view).NoneOption {
			continue
		}
		for _, o := range Expand(catalog, view) {
			assert.NotEqual(t, NoneKey, o.GroupByKey, view.String())
		}
	}
}

func TestExpand_EmptyCatalog(t *testing.T) {
	assert.Empty(t, Expand(RawAxisCatalog{}, LabsBoxplot))
	assert.Equal(t, []DisplayableOption{NoneOption()}, Expand(RawAxisCatalog{}, CiEventCounts))
}

func TestExpand_MixedCatalogOrder(t *testing.T) {
	catalog := RawAxisCatalog{Options: []RawAxisOption{
		{GroupByKey: visitNumber},
		{GroupByKey: "MEASUREMENT_TIME_POINT", IsTimestamp: true},
		{GroupByKey: "ARM"},
	}}

	got := labels(Expand(catalog, CtdnaPlot))

	assert.Equal(t, []string{visitNumber, DaysSinceFirstDose, WeeksSinceFirstDose, "ARM"}, got)
}
