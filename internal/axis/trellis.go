package axis

// ExpandWithTrellis maps the trellis options carried by the first raw option
// to displayable options with empty params. It returns nil when there is no
// trellis metadata.
func ExpandWithTrellis(options []RawAxisOption) []DisplayableOption {
	trellis := firstTrellis(options)
	if trellis == nil || len(trellis.Options) == 0 {
		return nil
	}

	out := make([]DisplayableOption, 0, len(trellis.Options))
	for _, name := range trellis.Options {
		out = append(out, DisplayableOption{DisplayLabel: name, GroupByKey: name})
	}
	return out
}

// ResolveTimepoints returns the timepoint structure stored under
// groupByKey in the first raw option's trellis metadata.
func ResolveTimepoints(options []RawAxisOption, groupByKey string) (TimepointStructure, bool) {
	trellis := firstTrellis(options)
	if trellis == nil {
		return TimepointStructure{}, false
	}
	tp, ok := trellis.Timepoints[groupByKey]
	if !ok || (len(tp.Flat) == 0 && len(tp.Nested) == 0) {
		return TimepointStructure{}, false
	}
	return tp, true
}

func firstTrellis(options []RawAxisOption) *TrellisMetadata {
	if len(options) == 0 {
		return nil
	}
	return options[0].Trellis
}
