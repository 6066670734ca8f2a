// Package option holds the authoritative set of selectable items for a menu.
//
// A Registry plays the role of the native multiple-selection control: it is
// the single source of truth for which options exist and which are selected.
// Views (checklist rows, tags) only ever refer to options by value.
package option

import "fmt"

// Option is one selectable item.
type Option struct {
	ID       string // "opt_<value>", stable for the option's lifetime
	Value    string // identity; callers must keep values unique
	Label    string // display text
	Selected bool
}

// Spec describes an option to create. It is the input shape used by page
// loading and by the creation form.
type Spec struct {
	Value    string `yaml:"value"`
	Label    string `yaml:"label"`
	Selected bool   `yaml:"selected"`
}

// Registry is an ordered collection of options with first-match lookup by value.
//
// Options are never removed. When two options share a value, every lookup
// resolves to the first one in registry order.
type Registry struct {
	options []*Option
	first   map[string]int // value -> index of first option with that value
}

// NewRegistry creates a registry holding the given options in order.
// The Selected flag of each spec is copied as-is; callers that need views to
// agree with pre-selected options should run them through a synchronizer.
func NewRegistry(specs []Spec) *Registry {
	r := &Registry{
		options: make([]*Option, 0, len(specs)),
		first:   make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		o := r.Append(s.Value, s.Label)
		o.Selected = s.Selected
	}
	return r
}

// Append adds a new unselected option at the end of the registry and returns it.
// The value is not checked against existing values.
func (r *Registry) Append(value, label string) *Option {
	o := &Option{
		ID:    optionID(value),
		Value: value,
		Label: label,
	}
	r.options = append(r.options, o)
	if _, exists := r.first[value]; !exists {
		r.first[value] = len(r.options) - 1
	}
	return o
}

// Lookup returns the first option with the given value.
func (r *Registry) Lookup(value string) (*Option, error) {
	idx, ok := r.first[value]
	if !ok {
		return nil, &LookupError{Kind: KindOption, Value: value}
	}
	return r.options[idx], nil
}

// Options returns the options in registry order. The slice is a copy; the
// options themselves are shared.
func (r *Registry) Options() []*Option {
	out := make([]*Option, len(r.options))
	copy(out, r.options)
	return out
}

// Len returns the number of options.
func (r *Registry) Len() int {
	return len(r.options)
}

// SelectedValues returns the values of selected options in registry order.
func (r *Registry) SelectedValues() []string {
	var values []string
	for _, o := range r.options {
		if o.Selected {
			values = append(values, o.Value)
		}
	}
	return values
}

// SelectedLabels returns the labels of selected options in registry order.
func (r *Registry) SelectedLabels() []string {
	var labels []string
	for _, o := range r.options {
		if o.Selected {
			labels = append(labels, o.Label)
		}
	}
	return labels
}

// Duplicates returns every value held by more than one option, in the order
// the second occurrence appears.
func (r *Registry) Duplicates() []string {
	seen := make(map[string]int, len(r.options))
	var dups []string
	for _, o := range r.options {
		seen[o.Value]++
		if seen[o.Value] == 2 {
			dups = append(dups, o.Value)
		}
	}
	return dups
}

func optionID(value string) string {
	return fmt.Sprintf("opt_%s", value)
}
