package axis

// DefaultX picks the X axis option pre-selected when view loads without a
// prior selection. Fallback order: first preference present in the
// expansion, then the first expanded option, then an option synthesised from
// the first preference when the catalog is empty.
func DefaultX(view ViewID, isOngoingStudy bool, catalog RawAxisCatalog) DisplayableOption {
	prefs := rewritePreferences(policyFor(view).XPreferences(isOngoingStudy))
	return pickDefault(prefs, catalog, Expand(catalog, view))
}

// DefaultLegacyX is DefaultX for views that match preferences against raw
// option values without expansion.
func DefaultLegacyX(view ViewID, isOngoingStudy bool, options []LegacyOption) LegacyOption {
	return LegacyOption{Value: pickLegacy(policyFor(view).XPreferences(isOngoingStudy), options)}
}

// DefaultY picks the Y axis option. Trellised views combine the first
// trellis measurement with the first timepoint of the first resolvable
// timepoint key; without trellis metadata they fall back to the preference
// list like every other view.
func DefaultY(view ViewID, catalog RawAxisCatalog) DisplayableOption {
	p := policyFor(view)
	if p.Trellised() {
		if opt, ok := trellisDefault(catalog.Options, p.YTimepointKeys); ok {
			return opt
		}
	}
	return pickDefault(p.Y, catalog, Expand(catalog, view))
}

// DefaultLegacyY returns the Y value for legacy views.
func DefaultLegacyY(view ViewID, options []LegacyOption) string {
	return pickLegacy(policyFor(view).Y, options)
}

func pickDefault(prefs []string, catalog RawAxisCatalog, expanded []DisplayableOption) DisplayableOption {
	for _, pref := range prefs {
		for _, opt := range expanded {
			if opt.DisplayLabel == pref {
				return opt
			}
		}
	}

	if len(catalog.Options) > 0 && len(expanded) > 0 {
		return expanded[0]
	}
	if len(prefs) > 0 {
		return DisplayableOption{DisplayLabel: prefs[0], GroupByKey: prefs[0]}
	}
	if len(expanded) > 0 {
		return expanded[0]
	}
	return DisplayableOption{}
}

func pickLegacy(prefs []string, options []LegacyOption) string {
	for _, pref := range prefs {
		for _, opt := range options {
			if opt.Value == pref {
				return opt.Value
			}
		}
	}
	if len(options) > 0 {
		return options[0].Value
	}
	if len(prefs) > 0 {
		return prefs[0]
	}
	return ""
}

// rewritePreferences maps the legacy WEEKS_SINCE_FIRST_TREATMENT name onto
// the variant it was renamed to.
func rewritePreferences(prefs []string) []string {
	out := make([]string, len(prefs))
	for i, p := range prefs {
		if p == WeeksSinceFirstTreatment {
			p = WeeksSinceFirstDose
		}
		out[i] = p
	}
	return out
}

func trellisDefault(options []RawAxisOption, timepointKeys []string) (DisplayableOption, bool) {
	measurements := ExpandWithTrellis(options)
	if len(measurements) == 0 {
		return DisplayableOption{}, false
	}
	m := measurements[0].GroupByKey

	tp := &TrellisingParams{Measurement: m}
	for _, key := range timepointKeys {
		structure, ok := ResolveTimepoints(options, key)
		if !ok {
			continue
		}
		tp.Timepoint, tp.Cycle, tp.Day, _ = structure.First()
		break
	}

	return DisplayableOption{
		DisplayLabel: m,
		GroupByKey:   options[0].GroupByKey,
		Params:       Params{Trellising: tp},
	}, true
}
