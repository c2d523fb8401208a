package axis

// AxisSetting is the axis field of a chart data request.
type AxisSetting struct {
	GroupByKey string `json:"groupByOption"`
	Params     Params `json:"params"`
}

// Setting projects o onto the request payload. The NONE option is never
// sent, so ok is false for it.
func (o DisplayableOption) Setting() (s AxisSetting, ok bool) {
	if o.GroupByKey == NoneKey {
		return AxisSetting{}, false
	}
	return AxisSetting{GroupByKey: o.GroupByKey, Params: o.Params}, true
}
