package axis

import "reflect"

// NoneKey is the group-by key of the synthetic "no grouping" option offered
// by count summary views.
const NoneKey = "NONE"

// RawAxisOption describes one potential axis dimension as reported by the
// study metadata.
type RawAxisOption struct {
	GroupByKey  string
	IsTimestamp bool
	IsBinnable  bool

	// Trellis is only read from the first option of a catalog.
	Trellis *TrellisMetadata
}

// RawAxisCatalog is the full set of raw options for one view activation.
type RawAxisCatalog struct {
	Options          []RawAxisOption
	DrugNames        []string
	HasRandomization bool
}

func (c RawAxisCatalog) option(groupByKey string) (RawAxisOption, bool) {
	for _, o := range c.Options {
		if o.GroupByKey == groupByKey {
			return o, true
		}
	}
	return RawAxisOption{}, false
}

// TrellisMetadata is the measurement hierarchy nested under an axis option.
type TrellisMetadata struct {
	Options    []string
	Timepoints map[string]TimepointStructure
}

// TimepointStructure is either a flat list of timepoints or an ordered
// cycle -> day mapping. Exactly one of Flat and Nested is set.
type TimepointStructure struct {
	Flat   []string
	Nested []CycleDays
}

type CycleDays struct {
	Cycle string   `json:"cycle"`
	Days  []string `json:"days"`
}

// IsNested reports whether the structure is the two-level cycle/day form.
func (t TimepointStructure) IsNested() bool {
	return len(t.Nested) > 0
}

// First returns the first timepoint: the first flat value, or the first
// cycle with its first day.
func (t TimepointStructure) First() (timepoint, cycle, day string, ok bool) {
	if t.IsNested() {
		first := t.Nested[0]
		if len(first.Days) > 0 {
			day = first.Days[0]
		}
		return "", first.Cycle, day, true
	}
	if len(t.Flat) > 0 {
		return t.Flat[0], "", "", true
	}
	return "", "", "", false
}

// Params are the request parameters attached to an axis option. Zero values
// mean absent and are omitted when serialised.
type Params struct {
	BinSize       int               `json:"binSize,omitempty"`
	TimestampType string            `json:"timestampType,omitempty"`
	DrugName      string            `json:"drugName,omitempty"`
	Trellising    *TrellisingParams `json:"trellisingParams,omitempty"`
}

type TrellisingParams struct {
	Measurement string `json:"measurement,omitempty"`
	Timepoint   string `json:"timepoint,omitempty"`
	Cycle       string `json:"cycle,omitempty"`
	Day         string `json:"day,omitempty"`
}

// IsZero reports whether no parameter is set.
func (p Params) IsZero() bool {
	return p.Equal(Params{})
}

func (p Params) Equal(o Params) bool {
	return reflect.DeepEqual(p, o)
}

// DisplayableOption is one selectable entry of an axis selector.
type DisplayableOption struct {
	DisplayLabel string `json:"displayedOption"`
	GroupByKey   string `json:"groupByOption"`
	Params       Params `json:"params"`
}

// Selected drops the display label, which is what gets persisted between
// view activations.
func (o DisplayableOption) Selected() SelectedOption {
	p := o.Params
	return SelectedOption{GroupByKey: o.GroupByKey, Params: &p}
}

// SelectedOption is a previously persisted choice. A nil Params means the
// selection was stored without any parameters.
type SelectedOption struct {
	GroupByKey string  `json:"groupByOption"`
	Params     *Params `json:"params,omitempty"`
}

// LegacyOption is a raw option of a view that predates the rule engine.
type LegacyOption struct {
	Value string `json:"value"`
}

// NoneOption returns the synthetic NONE option.
func NoneOption() DisplayableOption {
	return DisplayableOption{DisplayLabel: NoneKey, GroupByKey: NoneKey}
}
