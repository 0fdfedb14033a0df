package form

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindDate   Kind = "date"
	KindTime   Kind = "time"
	KindSelect Kind = "select"
	KindList   Kind = "list"
)

// Condition holds when the driver field currently equals Equals.
type Condition struct {
	Driver string `json:"driver"`
	Equals any    `json:"equals"`
}

// Rule is one validator tag with the message shown when it fails. Rules that
// are not Required are skipped while the field is empty.
type Rule struct {
	Tag      string     `json:"tag"`
	Message  string     `json:"message"`
	Required bool       `json:"required,omitempty"`
	When     *Condition `json:"when,omitempty"`
}

type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Default any      `json:"default"`
	Options []string `json:"options,omitempty"`
	Rules   []Rule   `json:"rules,omitempty"`

	// DefaultFunc, when set, replaces Default and is evaluated on every reset.
	DefaultFunc func() any `json:"-"`
}

func (f *Field) defaultValue() any {
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	if l, ok := f.Default.([]string); ok {
		return append([]string{}, l...)
	}
	if f.Default == nil {
		return zero(f.Kind)
	}
	return f.Default
}

// Mirror keeps To equal to From for as long as Driver is false.
type Mirror struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Driver string `json:"driver"`
}

type Schema struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Fields  []Field  `json:"fields"`
	Mirrors []Mirror `json:"mirrors,omitempty"`
}

func (s *Schema) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

func (s *Schema) Defaults() Values {
	v := make(Values, len(s.Fields))
	for i := range s.Fields {
		v[s.Fields[i].Name] = s.Fields[i].defaultValue()
	}
	return v
}

// dependents lists the fields whose rules are conditioned on driver.
func (s *Schema) dependents(driver string) []string {
	return lo.FilterMap(s.Fields, func(f Field, _ int) (string, bool) {
		return f.Name, lo.SomeBy(f.Rules, func(r Rule) bool {
			return r.When != nil && r.When.Driver == driver
		})
	})
}

func zero(k Kind) any {
	switch k {
	case KindBool:
		return false
	case KindList:
		return []string{}
	default:
		return ""
	}
}

// normalize coerces an incoming value to the representation kept for k.
// Numbers are kept as the text the user typed.
func normalize(k Kind, v any) (any, error) {
	switch k {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindList:
		switch l := v.(type) {
		case []string:
			return append([]string{}, l...), nil
		case nil:
			return []string{}, nil
		}
	case KindNumber:
		switch n := v.(type) {
		case string:
			return n, nil
		case int:
			return strconv.Itoa(n), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		}
	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("form: %T is not a valid %s value", v, k)
}

// Resolved returns a copy of s whose Default values are what Reset would set now.
func (s *Schema) Resolved() *Schema {
	c := *s
	c.Fields = make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Default = f.defaultValue()
		f.DefaultFunc = nil
		c.Fields[i] = f
	}
	c.Mirrors = append([]Mirror(nil), s.Mirrors...)
	return &c
}
