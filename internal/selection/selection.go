// Package selection keeps a menu's options, checklist rows and tags in step.
//
// The Synchronizer is the only writer of Option.Selected. Every operation
// validates the row before mutating anything, so a failed call leaves all
// three views as they were.
package selection

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/option"
	"github.com/zjrosen/selectmenu/internal/tracing"
)

// RowView is the checklist side of a menu.
type RowView interface {
	SetChecked(value string, checked bool) error
	Checked(value string) (bool, error)
}

// TagView is the chip side of a menu.
type TagView interface {
	Add(value, label string) bool
	Remove(value string) bool
}

// Synchronizer applies selection changes to all three views of a menu.
type Synchronizer struct {
	menuID   string
	registry *option.Registry
	rows     RowView
	tags     TagView
	tracer   trace.Tracer
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithTracer records a span per operation.
func WithTracer(t trace.Tracer) Option {
	return func(s *Synchronizer) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New creates a Synchronizer for one menu. Registry and both views are required.
func New(menuID string, registry *option.Registry, rows RowView, tags TagView, opts ...Option) *Synchronizer {
	if registry == nil || rows == nil || tags == nil {
		panic("selection: registry, rows and tags are required")
	}
	s := &Synchronizer{
		menuID:   menuID,
		registry: registry,
		rows:     rows,
		tags:     tags,
		tracer:   noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MenuID returns the menu this synchronizer serves.
func (s *Synchronizer) MenuID() string { return s.menuID }

// Select marks the first option holding value as selected, checks its row and
// adds its tag. Selecting an already selected option is a no-op.
func (s *Synchronizer) Select(ctx context.Context, value string) error {
	_, span := s.start(ctx, tracing.SpanSelect, value)
	defer span.End()

	err := s.set(value, true)
	finish(span, err)
	return err
}

// Deselect is the inverse of Select.
func (s *Synchronizer) Deselect(ctx context.Context, value string) error {
	_, span := s.start(ctx, tracing.SpanDeselect, value)
	defer span.End()

	err := s.set(value, false)
	finish(span, err)
	return err
}

// Toggle flips the row holding value and routes to Select or Deselect once.
func (s *Synchronizer) Toggle(ctx context.Context, value string) error {
	ctx, span := s.start(ctx, tracing.SpanToggle, value)
	defer span.End()

	checked, err := s.rows.Checked(value)
	if err != nil {
		log.ErrorErr(log.CatSync, "Toggle failed", err, "menu", s.menuID, "value", value)
		finish(span, err)
		return err
	}
	if checked {
		err = s.Deselect(ctx, value)
	} else {
		err = s.Select(ctx, value)
	}
	finish(span, err)
	return err
}

// SelectAll selects every option in registry order. It stops at the first
// error; options before it stay selected.
func (s *Synchronizer) SelectAll(ctx context.Context) error {
	return s.all(ctx, tracing.SpanSelectAll, true)
}

// DeselectAll deselects every option in registry order.
func (s *Synchronizer) DeselectAll(ctx context.Context) error {
	return s.all(ctx, tracing.SpanDeselectAll, false)
}

// Selected returns the selected values in registry order.
func (s *Synchronizer) Selected() []string {
	return s.registry.SelectedValues()
}

func (s *Synchronizer) all(ctx context.Context, name string, selected bool) error {
	_, span := s.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	opts := s.registry.Options()
	span.SetAttributes(
		attribute.String(tracing.AttrMenuID, s.menuID),
		attribute.Int(tracing.AttrOptionCount, len(opts)),
	)

	for _, o := range opts {
		if err := s.set(o.Value, selected); err != nil {
			finish(span, err)
			return err
		}
	}
	log.Debug(log.CatSync, "Bulk update", "menu", s.menuID, "selected", selected, "count", len(opts))
	finish(span, nil)
	return nil
}

// set performs one select or deselect without a span of its own.
func (s *Synchronizer) set(value string, selected bool) error {
	opt, err := s.registry.Lookup(value)
	if err != nil {
		log.ErrorErr(log.CatSync, "Option lookup failed", err, "menu", s.menuID, "value", value)
		return err
	}
	if _, err := s.rows.Checked(value); err != nil {
		log.ErrorErr(log.CatSync, "Row lookup failed", err, "menu", s.menuID, "value", value)
		return err
	}

	opt.Selected = selected
	if err := s.rows.SetChecked(value, selected); err != nil {
		return err
	}
	if selected {
		s.tags.Add(value, opt.Label)
	} else {
		s.tags.Remove(value)
	}
	log.Debug(log.CatSync, "Selection changed", "menu", s.menuID, "value", value, "selected", selected)
	return nil
}

func (s *Synchronizer) start(ctx context.Context, name, value string) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String(tracing.AttrMenuID, s.menuID),
		attribute.String(tracing.AttrOptionValue, value),
	)
	return ctx, span
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
