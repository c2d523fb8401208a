package axis

// Expand turns the raw catalog into the ordered list of selectable options
// for view. Timestamp options are expanded against the variant table; the
// order is catalog order, then variant table order, then variant name order.
func Expand(catalog RawAxisCatalog, view ViewID) []DisplayableOption {
	var out []DisplayableOption
	if policyFor(view).NoneOption {
		out = append(out, NoneOption())
	}

	for _, raw := range catalog.Options {
		if !raw.IsTimestamp {
			out = append(out, passThrough(raw))
			continue
		}
		out = append(out, expandTimestamp(raw, catalog, view)...)
	}

	return out
}

func passThrough(raw RawAxisOption) DisplayableOption {
	opt := DisplayableOption{DisplayLabel: raw.GroupByKey, GroupByKey: raw.GroupByKey}
	if raw.IsBinnable {
		opt.Params.BinSize = 1
	}
	return opt
}

// expandTimestamp may return nothing at all when every variant is filtered
// out for view.
func expandTimestamp(raw RawAxisOption, catalog RawAxisCatalog, view ViewID) []DisplayableOption {
	binSize := 0
	if raw.IsBinnable {
		binSize = 1
	}

	var out []DisplayableOption
	for _, tv := range variantTable {
		if !tv.Admits(catalog, view) {
			continue
		}
		for _, name := range tv.Names {
			p := Params{TimestampType: name, BinSize: binSize}
			if tv.RequiresDrug {
				p.DrugName = catalog.DrugNames[0]
			}
			out = append(out, DisplayableOption{
				DisplayLabel: name,
				GroupByKey:   raw.GroupByKey,
				Params:       p,
			})
		}
	}
	return out
}
