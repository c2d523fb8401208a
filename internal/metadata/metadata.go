// Package metadata parses the loosely-typed axis metadata served for a study
// into the typed catalogs the axis engine works on. Nothing past this package
// reads metadata by string key.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/trialviz/axisgoat/internal/axis"
)

// ErrInvalid is returned for documents that do not have the expected shape.
var ErrInvalid = errors.New("invalid axis metadata")

// Document is a study's metadata: one entry per view.
type Document struct {
	Study   string
	Ongoing bool
	Views   map[axis.ViewID]View
	// Raw holds the source JSON of every view, as stored.
	Raw map[axis.ViewID]string
}

// View is the axis metadata for one view.
type View struct {
	X       axis.RawAxisCatalog
	Y       axis.RawAxisCatalog
	LegacyX []axis.LegacyOption
	LegacyY []axis.LegacyOption
}

// Axis selects the X or Y catalog of a view.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisX, "":
		return AxisX, nil
	case AxisY:
		return AxisY, nil
	}
	return "", fmt.Errorf("%w: unknown axis %q", ErrInvalid, s)
}

// Catalog returns the catalog for a.
func (v View) Catalog(a Axis) axis.RawAxisCatalog {
	if a == AxisY {
		return v.Y
	}
	return v.X
}

// Legacy returns the legacy options for a.
func (v View) Legacy(a Axis) []axis.LegacyOption {
	if a == AxisY {
		return v.LegacyY
	}
	return v.LegacyX
}

// ParseDocument parses a full study document.
func ParseDocument(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalid)
	}
	root := gjson.ParseBytes(data)

	doc := &Document{
		Study:   root.Get("study").String(),
		Ongoing: root.Get("ongoing").Bool(),
		Views:   make(map[axis.ViewID]View),
		Raw:     make(map[axis.ViewID]string),
	}
	if doc.Study == "" {
		return nil, fmt.Errorf("%w: missing study", ErrInvalid)
	}

	views := root.Get("views")
	if !views.IsObject() {
		return nil, fmt.Errorf("%w: study %s has no views", ErrInvalid, doc.Study)
	}

	var err error
	views.ForEach(func(key, value gjson.Result) bool {
		var id axis.ViewID
		id, err = axis.ParseViewID(key.String())
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrInvalid, err)
			return false
		}
		var v View
		v, err = parseView(value)
		if err != nil {
			err = fmt.Errorf("view %s: %w", id, err)
			return false
		}
		doc.Views[id] = v
		doc.Raw[id] = value.Raw
		return true
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ParseView parses the metadata of a single view.
func ParseView(data []byte) (View, error) {
	if !gjson.ValidBytes(data) {
		return View{}, fmt.Errorf("%w: malformed JSON", ErrInvalid)
	}
	return parseView(gjson.ParseBytes(data))
}

func parseView(value gjson.Result) (View, error) {
	if !value.IsObject() {
		return View{}, fmt.Errorf("%w: view metadata must be an object", ErrInvalid)
	}

	var v View
	var err error
	if v.X, err = ParseCatalog(value.Get("x")); err != nil {
		return View{}, fmt.Errorf("x axis: %w", err)
	}
	if v.Y, err = ParseCatalog(value.Get("y")); err != nil {
		return View{}, fmt.Errorf("y axis: %w", err)
	}
	v.LegacyX = parseLegacy(value.Get("legacyX"))
	v.LegacyY = parseLegacy(value.Get("legacyY"))
	return v, nil
}

// ParseCatalog converts one axis catalog. A missing catalog yields an empty
// one.
func ParseCatalog(value gjson.Result) (axis.RawAxisCatalog, error) {
	var c axis.RawAxisCatalog
	if !value.Exists() {
		return c, nil
	}
	if !value.IsObject() {
		return c, fmt.Errorf("%w: catalog must be an object", ErrInvalid)
	}

	for i, o := range value.Get("options").Array() {
		opt, err := parseOption(o)
		if err != nil {
			return axis.RawAxisCatalog{}, fmt.Errorf("option %d: %w", i, err)
		}
		c.Options = append(c.Options, opt)
	}
	for _, d := range value.Get("drugs").Array() {
		if name := d.String(); name != "" {
			c.DrugNames = append(c.DrugNames, name)
		}
	}
	c.HasRandomization = value.Get("hasRandomization").Bool()

	return c, nil
}

func parseOption(o gjson.Result) (axis.RawAxisOption, error) {
	opt := axis.RawAxisOption{
		IsTimestamp: o.Get("timestampOption").Bool(),
		IsBinnable:  o.Get("binableOption").Bool(),
	}

	group := o.Get("groupByOption")
	switch {
	case group.Type == gjson.String:
		opt.GroupByKey = group.String()
	case group.IsObject():
		opt.GroupByKey = group.Get("name").String()
		trellis, err := parseTrellis(group)
		if err != nil {
			return axis.RawAxisOption{}, err
		}
		opt.Trellis = trellis
	}

	if opt.GroupByKey == "" {
		return axis.RawAxisOption{}, fmt.Errorf("%w: missing groupByOption", ErrInvalid)
	}
	return opt, nil
}

func parseTrellis(group gjson.Result) (*axis.TrellisMetadata, error) {
	options := group.Get("trellisOptions")
	timepoints := group.Get("timepoints")
	if !options.Exists() && !timepoints.Exists() {
		return nil, nil
	}

	t := &axis.TrellisMetadata{Timepoints: make(map[string]axis.TimepointStructure)}
	for _, name := range options.Array() {
		t.Options = append(t.Options, name.String())
	}

	var err error
	timepoints.ForEach(func(key, value gjson.Result) bool {
		var tp axis.TimepointStructure
		switch {
		case value.IsArray():
			tp.Flat = stringList(value)
		case value.IsObject():
			value.ForEach(func(cycle, days gjson.Result) bool {
				tp.Nested = append(tp.Nested, axis.CycleDays{Cycle: cycle.String(), Days: stringList(days)})
				return true
			})
		default:
			err = fmt.Errorf("%w: timepoints %s must be a list or a cycle map", ErrInvalid, key.String())
			return false
		}
		t.Timepoints[key.String()] = tp
		return true
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func parseLegacy(value gjson.Result) []axis.LegacyOption {
	var out []axis.LegacyOption
	for _, v := range value.Array() {
		out = append(out, axis.LegacyOption{Value: v.String()})
	}
	return out
}

func stringList(value gjson.Result) []string {
	arr := value.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}

// ParseSelection decodes a persisted selection ({groupByOption, params}).
func ParseSelection(data []byte) (axis.SelectedOption, error) {
	var sel axis.SelectedOption
	if err := json.Unmarshal(data, &sel); err != nil {
		return sel, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if sel.GroupByKey == "" {
		return sel, fmt.Errorf("%w: selection has no groupByOption", ErrInvalid)
	}
	return sel, nil
}
