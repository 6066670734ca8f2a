// Package widget is the interactive multi-select menu.
//
// A Model composes a search box, an action bar, the inline creation form, the
// checklist and the tag box over one option registry. Every gesture is
// translated into synchronizer calls inside Update, so options, rows and tags
// agree again before the next message is processed.
package widget

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/selectmenu/internal/filter"
	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/option"
	"github.com/zjrosen/selectmenu/internal/selection"
	"github.com/zjrosen/selectmenu/internal/ui/checklist"
	"github.com/zjrosen/selectmenu/internal/ui/createform"
	"github.com/zjrosen/selectmenu/internal/ui/tagbox"
)

// Focus identifies the focused part of the widget.
type Focus int

const (
	FocusSearch Focus = iota
	FocusActions
	FocusForm
	FocusList
	FocusTags
)

func (f Focus) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusActions:
		return "actions"
	case FocusForm:
		return "form"
	case FocusList:
		return "list"
	case FocusTags:
		return "tags"
	}
	return "unknown"
}

// Action bar buttons.
type button int

const (
	buttonSelectAll button = iota
	buttonDeselectAll
	buttonAdd
)

const defaultListHeight = 8

// Config describes one menu.
type Config struct {
	ID                string
	Label             string
	EnableAdd         bool
	Form              createform.Config
	SearchPlaceholder string
	ShowCounts        bool
	TagMaxWidth       int
	ListHeight        int
	Tracer            trace.Tracer
}

// Handle is the explicit reference to one widget's state. Bulk operations and
// the report take a Handle instead of looking a menu up globally.
type Handle struct {
	ID        string
	Registry  *option.Registry
	Checklist *checklist.List
	Tags      *tagbox.Box
	Sync      *selection.Synchronizer
}

// Model is a Bubble Tea model for one menu.
type Model struct {
	config  Config
	handle  *Handle
	matcher *filter.Matcher
	tracer  trace.Tracer

	search textinput.Model
	form   createform.Model

	focus        Focus
	actionCursor button
	focused      bool
	status       string
	width        int
	height       int
}

// New builds a widget from its declared options. Options declared as
// selected are applied through the synchronizer so every view agrees from
// the first frame.
func New(ctx context.Context, cfg Config, specs []option.Spec) (Model, error) {
	if cfg.ID == "" {
		return Model{}, fmt.Errorf("menu id is required")
	}
	if cfg.ListHeight == 0 {
		cfg.ListHeight = defaultListHeight
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	reg := option.NewRegistry(nil)
	rows := checklist.New(cfg.ID)
	rows.SetHeight(cfg.ListHeight)
	tags := tagbox.New(cfg.ID)
	if cfg.TagMaxWidth > 0 {
		tags.SetMaxLabelWidth(cfg.TagMaxWidth)
	}

	var preselected []string
	for _, s := range specs {
		reg.Append(s.Value, s.Label)
		rows.AppendRow(s.Value, s.Label)
		if s.Selected {
			preselected = append(preselected, s.Value)
		}
	}

	sync := selection.New(cfg.ID, reg, rows, tags, selection.WithTracer(tracer))
	for _, v := range preselected {
		if err := sync.Select(ctx, v); err != nil {
			return Model{}, fmt.Errorf("preselect %q in menu %q: %w", v, cfg.ID, err)
		}
	}
	if dups := reg.Duplicates(); len(dups) > 0 {
		log.Warn(log.CatUI, "Menu has duplicate option values, first match wins", "menu", cfg.ID, "values", dups)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = cfg.SearchPlaceholder
	if search.Placeholder == "" {
		search.Placeholder = "Search..."
	}

	m := Model{
		config:  cfg,
		matcher: filter.NewMatcher(),
		tracer:  tracer,
		search:  search,
		form:    createform.New(cfg.Form, cfg.ID),
		focus:   FocusList,
		width:   48,
		handle: &Handle{
			ID:        cfg.ID,
			Registry:  reg,
			Checklist: rows,
			Tags:      tags,
			Sync:      sync,
		},
	}
	m = m.SetSize(m.width, 0)
	log.Debug(log.CatUI, "Menu created", "menu", cfg.ID, "options", reg.Len(), "selected", len(preselected))
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Handle returns the widget's instance handle.
func (m Model) Handle() *Handle { return m.handle }

// ID returns the menu id.
func (m Model) ID() string { return m.config.ID }

// Label returns the menu label, falling back to the id.
func (m Model) Label() string {
	if m.config.Label != "" {
		return m.config.Label
	}
	return m.config.ID
}

// Focus returns the focused part.
func (m Model) Focus() Focus { return m.focus }

// Query returns the current search text.
func (m Model) Query() string { return m.search.Value() }

// Status returns the last error shown to the user, if any.
func (m Model) Status() string { return m.status }

// FormOpen reports whether the creation form is expanded.
func (m Model) FormOpen() bool { return m.form.IsOpen() }

// SetFocused marks the widget as the active one on the page.
func (m Model) SetFocused(focused bool) Model {
	m.focused = focused
	return m.applyFocus()
}

// Focused reports whether the widget is the active one.
func (m Model) Focused() bool { return m.focused }

// SetSize sets the render area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	inner := width - 2
	m.handle.Checklist.SetWidth(inner)
	m.handle.Tags.SetWidth(inner)
	m.form = m.form.SetWidth(width)
	m.search.Width = width - 4
	return m
}

// applyFocus pushes the focus state down to the child components.
func (m Model) applyFocus() Model {
	m.handle.Checklist.SetFocused(m.focused && m.focus == FocusList)
	m.handle.Tags.SetFocused(m.focused && m.focus == FocusTags)
	if m.focused && m.focus == FocusSearch {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
	return m
}
