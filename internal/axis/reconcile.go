package axis

// Reconcile rebuilds a displayable option from a persisted selection. It
// trusts the selection: a group-by key that is no longer in the catalog still
// yields an option built from the selection's own fields. A trellised
// selection is labelled with its measurement.
func Reconcile(selected SelectedOption, catalog RawAxisCatalog, view ViewID) DisplayableOption {
	if selected.GroupByKey == NoneKey && policyFor(view).NoneOption {
		return NoneOption()
	}

	if selected.Params != nil && selected.Params.TimestampType != "" {
		return DisplayableOption{
			DisplayLabel: selected.Params.TimestampType,
			GroupByKey:   selected.GroupByKey,
			Params:       *selected.Params,
		}
	}

	if selected.Params == nil {
		if raw, ok := catalog.option(selected.GroupByKey); ok && raw.IsTimestamp {
			return fallbackTimestampOption(selected.GroupByKey)
		}
		return DisplayableOption{DisplayLabel: selected.GroupByKey, GroupByKey: selected.GroupByKey}
	}

	label := selected.GroupByKey
	if tp := selected.Params.Trellising; tp != nil && tp.Measurement != "" {
		label = tp.Measurement
	}
	return DisplayableOption{
		DisplayLabel: label,
		GroupByKey:   selected.GroupByKey,
		Params:       *selected.Params,
	}
}

// fallbackTimestampOption picks the first name of the second variant table
// row for a timestamp selection stored without params.
//
// NOTE: the fixed row index is kept for compatibility with selections saved
// by older clients and should be removed once those are migrated.
func fallbackTimestampOption(groupByKey string) DisplayableOption {
	name := variantTable[1].Names[0]
	return DisplayableOption{
		DisplayLabel: name,
		GroupByKey:   groupByKey,
		Params:       Params{TimestampType: name, BinSize: 1},
	}
}
