package testutil

import "github.com/zjrosen/selectmenu/internal/option"

// SpecOption configures a spec added through Builder.WithOption.
type SpecOption func(*option.Spec)

// WithLabel sets the display label.
func WithLabel(label string) SpecOption {
	return func(s *option.Spec) {
		s.Label = label
	}
}

// Selected marks the option as pre-selected.
func Selected() SpecOption {
	return func(s *option.Spec) {
		s.Selected = true
	}
}
