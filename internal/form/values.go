package form

// Values maps field names to their current values.
type Values map[string]any

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Strings(name string) []string {
	l, _ := v[name].([]string)
	return l
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if l, ok := val.([]string); ok {
			val = append([]string{}, l...)
		}
		out[k] = val
	}
	return out
}
