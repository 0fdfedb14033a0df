package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/DS-LIT/hrba-forms/internal/util"
)

var ErrUnknownField = errors.New("form: unknown field")

// ValidationError carries the message of every failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Sprintf("form: %d invalid field(s): %s", len(names), strings.Join(names, ", "))
}

// Handler receives the values of a form that passed validation.
type Handler func(ctx context.Context, values Values) error

// Form is the live state of one schema: values, field errors and whether a
// submit has been attempted. Once submitted, every change revalidates the
// changed field.
type Form struct {
	mu sync.Mutex

	schema    *Schema
	values    Values
	errors    map[string]string
	submitted bool
	validate  *validator.Validate
}

func New(schema *Schema) *Form {
	return &Form{
		schema:   schema,
		values:   schema.Defaults(),
		errors:   map[string]string{},
		validate: util.NewValidator(),
	}
}

func (f *Form) Schema() *Schema {
	return f.schema
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.clone()
}

func (f *Form) Value(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) Error(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[name]
}

// Required reports whether name currently has an applicable required rule.
func (f *Form) Required(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	field, ok := f.schema.Field(name)
	if !ok {
		return false
	}
	for _, r := range field.Rules {
		if r.Required && f.holds(r.When) {
			return true
		}
	}
	return false
}

// Set updates one value. Changing a driver field re-evaluates the fields that
// depend on it straight away.
func (f *Form) Set(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	field, ok := f.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	v, err := normalize(field.Kind, value)
	if err != nil {
		return err
	}
	f.values[name] = v

	touched := []string{name}
	for _, m := range f.schema.Mirrors {
		if (name == m.From || name == m.Driver) && !f.values.Bool(m.Driver) {
			f.values[m.To] = f.values[m.From]
			touched = append(touched, m.To)
		}
	}

	for _, dep := range f.schema.dependents(name) {
		f.reevaluate(dep)
	}
	if f.submitted {
		for _, t := range touched {
			f.reevaluate(t)
		}
	}
	return nil
}

// reevaluate refreshes the error of one field. Before the first submit it
// only clears errors, so untouched fields do not light up.
func (f *Form) reevaluate(name string) {
	msg := f.check(name)
	switch {
	case msg == "":
		delete(f.errors, name)
	case f.submitted:
		f.errors[name] = msg
	}
}

// Validate runs every rule and reports whether all passed.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	f.submitted = true
	f.errors = map[string]string{}
	for _, field := range f.schema.Fields {
		if msg := f.check(field.Name); msg != "" {
			f.errors[field.Name] = msg
		}
	}
	return len(f.errors) == 0
}

// Submit validates and calls h with a snapshot of the values only when every
// rule passes. Otherwise it returns a *ValidationError and h is not called.
func (f *Form) Submit(ctx context.Context, h Handler) error {
	f.mu.Lock()
	if !f.validateLocked() {
		errs := make(map[string]string, len(f.errors))
		for k, v := range f.errors {
			errs[k] = v
		}
		f.mu.Unlock()
		return &ValidationError{Fields: errs}
	}
	values := f.values.clone()
	f.mu.Unlock()

	return h(ctx, values)
}

// Reset restores every default and forgets errors and the submitted state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.schema.Defaults()
	f.errors = map[string]string{}
	f.submitted = false
}

func (f *Form) holds(c *Condition) bool {
	if c == nil {
		return true
	}
	return reflect.DeepEqual(f.values[c.Driver], c.Equals)
}

// check returns the message of the first failing rule of name, or "".
func (f *Form) check(name string) string {
	field, ok := f.schema.Field(name)
	if !ok {
		return ""
	}
	value := f.values[name]
	for _, r := range field.Rules {
		if !f.holds(r.When) {
			continue
		}
		if !r.Required && isEmpty(value) {
			continue
		}
		if err := f.validate.Var(value, r.Tag); err != nil {
			return r.Message
		}
	}
	return ""
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	default:
		return false
	}
}
