// Package testutil provides fixtures and helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/zjrosen/selectmenu/internal/option"
)

// Builder accumulates option specs for a test registry.
type Builder struct {
	t     *testing.T
	specs []option.Spec
}

// NewBuilder creates an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithOption adds an option. The label defaults to the value.
func (b *Builder) WithOption(value string, opts ...SpecOption) *Builder {
	spec := option.Spec{Value: value, Label: value}
	for _, opt := range opts {
		opt(&spec)
	}
	b.specs = append(b.specs, spec)
	return b
}

// Specs returns the accumulated specs.
func (b *Builder) Specs() []option.Spec {
	out := make([]option.Spec, len(b.specs))
	copy(out, b.specs)
	return out
}

// Registry builds a registry from the accumulated specs.
func (b *Builder) Registry() *option.Registry {
	b.t.Helper()
	return option.NewRegistry(b.specs)
}
