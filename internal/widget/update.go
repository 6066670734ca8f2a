package widget

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/selectmenu/internal/keys"
	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/tracing"
	"github.com/zjrosen/selectmenu/internal/ui/createform"
)

// SearchZoneID returns the search box zone id.
func SearchZoneID(prefix string) string { return prefix + ":search" }

// SelectAllZoneID returns the select-all button zone id.
func SelectAllZoneID(prefix string) string { return prefix + ":select-all" }

// DeselectAllZoneID returns the deselect-all button zone id.
func DeselectAllZoneID(prefix string) string { return prefix + ":deselect-all" }

// AddZoneID returns the add-option button zone id.
func AddZoneID(prefix string) string { return prefix + ":add" }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other internal messages
	var searchCmd, formCmd tea.Cmd
	m.search, searchCmd = m.search.Update(msg)
	m.form, _, formCmd = m.form.Update(msg)
	return m, tea.Batch(searchCmd, formCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.focus == FocusForm && m.form.IsOpen() {
		var res createform.Result
		var cmd tea.Cmd
		m.form, res, cmd = m.form.Update(msg)
		m = m.handleFormResult(res, "key")
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Component.Tab):
		return m.cycleFocus(false), m.focusCmd()
	case key.Matches(msg, keys.Component.ShiftTab):
		return m.cycleFocus(true), m.focusCmd()
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusActions:
		return m.handleActionKey(msg)
	case FocusList:
		return m.handleListKey(msg)
	case FocusTags:
		return m.handleTagKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.search.Value() == "" {
			return m.setFocus(FocusList), nil
		}
		m.search.SetValue("")
		m.applyFilter()
		return m, nil
	case tea.KeyEnter, tea.KeyDown:
		return m.setFocus(FocusList), nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) handleActionKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	last := buttonDeselectAll
	if m.config.EnableAdd {
		last = buttonAdd
	}
	switch {
	case key.Matches(msg, keys.Common.Left):
		if m.actionCursor > buttonSelectAll {
			m.actionCursor--
		}
	case key.Matches(msg, keys.Common.Right):
		if m.actionCursor < last {
			m.actionCursor++
		}
	case key.Matches(msg, keys.Common.Down):
		return m.setFocus(FocusList), nil
	case key.Matches(msg, keys.Common.Up):
		return m.setFocus(FocusSearch), textinput.Blink
	case key.Matches(msg, keys.Menu.Toggle):
		return m.pressButton(m.actionCursor, "key")
	default:
		return m.handleShortcut(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.handle.Checklist
	switch {
	case key.Matches(msg, keys.Common.Down):
		if !rows.MoveCursor(1) && m.handle.Tags.Len() > 0 {
			return m.setFocus(FocusTags), nil
		}
	case key.Matches(msg, keys.Common.Up):
		if !rows.MoveCursor(-1) {
			return m.setFocus(FocusActions), nil
		}
	case key.Matches(msg, keys.Menu.Toggle):
		if row, ok := rows.Cursor(); ok {
			m = m.gesture("key.toggle", row.Value, func(ctx context.Context) error {
				return m.handle.Sync.Toggle(ctx, row.Value)
			})
		}
	default:
		return m.handleShortcut(msg)
	}
	return m, nil
}

func (m Model) handleTagKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tags := m.handle.Tags
	switch {
	case key.Matches(msg, keys.Common.Left):
		tags.MoveCursor(-1)
	case key.Matches(msg, keys.Common.Right):
		tags.MoveCursor(1)
	case key.Matches(msg, keys.Common.Up):
		return m.setFocus(FocusList), nil
	case key.Matches(msg, keys.Menu.RemoveTag):
		if tag, ok := tags.Cursor(); ok {
			m = m.gesture("key.remove_tag", tag.Value, func(ctx context.Context) error {
				return m.handle.Sync.Deselect(ctx, tag.Value)
			})
			if tags.Len() == 0 {
				m = m.setFocus(FocusList)
			}
		}
	default:
		return m.handleShortcut(msg)
	}
	return m, nil
}

// handleShortcut handles the letter bindings shared by the non-text parts.
func (m Model) handleShortcut(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Menu.SelectAll):
		return m.pressButton(buttonSelectAll, "key")
	case key.Matches(msg, keys.Menu.DeselectAll):
		return m.pressButton(buttonDeselectAll, "key")
	case key.Matches(msg, keys.Menu.AddOption):
		if m.config.EnableAdd {
			return m.pressButton(buttonAdd, "key")
		}
	case key.Matches(msg, keys.Menu.FocusSearch):
		return m.setFocus(FocusSearch), textinput.Blink
	}
	return m, nil
}

// handleMouse routes a click to exactly one handler. Form zones are checked
// first, then tags, then the remaining controls, and rows last.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.handle.Checklist.MoveCursor(1)
		case tea.MouseButtonWheelUp:
			m.handle.Checklist.MoveCursor(-1)
		}
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if m.form.InBounds(msg) {
		var res createform.Result
		var cmd tea.Cmd
		m.focus = FocusForm
		m.form, res, cmd = m.form.Update(msg)
		m = m.handleFormResult(res, "click")
		return m.applyFocus(), cmd
	}

	if idx, ok := m.handle.Tags.TagAt(msg); ok {
		tag := m.handle.Tags.Tags()[idx]
		m = m.gesture("click.tag", tag.Value, func(ctx context.Context) error {
			return m.handle.Sync.Deselect(ctx, tag.Value)
		})
		return m, nil
	}

	prefix := m.config.ID
	buttons := []struct {
		id string
		b  button
	}{
		{SelectAllZoneID(prefix), buttonSelectAll},
		{DeselectAllZoneID(prefix), buttonDeselectAll},
	}
	if m.config.EnableAdd {
		buttons = append(buttons, struct {
			id string
			b  button
		}{AddZoneID(prefix), buttonAdd})
	}
	for _, btn := range buttons {
		if z := zone.Get(btn.id); z != nil && z.InBounds(msg) {
			m.actionCursor = btn.b
			return m.pressButton(btn.b, "click")
		}
	}

	if z := zone.Get(SearchZoneID(prefix)); z != nil && z.InBounds(msg) {
		return m.setFocus(FocusSearch), textinput.Blink
	}

	if idx, ok := m.handle.Checklist.RowAt(msg); ok {
		row := m.handle.Checklist.Rows()[idx]
		m.handle.Checklist.SetCursor(idx)
		m = m.setFocus(FocusList)
		m = m.gesture("click.row", row.Value, func(ctx context.Context) error {
			return m.handle.Sync.Toggle(ctx, row.Value)
		})
	}
	return m, nil
}

// pressButton runs an action bar button.
func (m Model) pressButton(b button, via string) (Model, tea.Cmd) {
	switch b {
	case buttonSelectAll:
		m = m.gesture(via+".select_all", "", func(ctx context.Context) error {
			return SelectAll(ctx, m.handle)
		})
	case buttonDeselectAll:
		m = m.gesture(via+".deselect_all", "", func(ctx context.Context) error {
			return DeselectAll(ctx, m.handle)
		})
	case buttonAdd:
		if !m.config.EnableAdd {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Open()
		m.focus = FocusForm
		return m.applyFocus(), cmd
	}
	return m, nil
}

// handleFormResult applies a finished form interaction.
func (m Model) handleFormResult(res createform.Result, via string) Model {
	switch res.Outcome {
	case createform.Submitted:
		m = m.createOption(res.Submission, via)
		m = m.setFocus(FocusList)
	case createform.Discarded, createform.Cancelled:
		m = m.setFocus(FocusActions)
	}
	return m
}

// createOption appends a new option and its row, then filters the row
// against the current query.
func (m Model) createOption(sub createform.Submission, via string) Model {
	_, span := m.tracer.Start(context.Background(), tracing.SpanCreate,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrMenuID, m.config.ID),
		attribute.String(tracing.AttrOptionValue, sub.Value),
		attribute.String(tracing.AttrGesture, via),
	)

	if _, err := m.handle.Registry.Lookup(sub.Value); err == nil {
		log.Warn(log.CatForm, "Created option reuses an existing value, first match wins",
			"menu", m.config.ID, "value", sub.Value)
	}
	m.handle.Registry.Append(sub.Value, sub.Name)
	idx := m.handle.Checklist.AppendRow(sub.Value, sub.Name)
	if m.matcher.ApplyRow(m.handle.Checklist, idx, m.search.Value()) {
		m.handle.Checklist.SetCursor(idx)
	}
	m.status = ""
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatForm, "Option created", "menu", m.config.ID, "value", sub.Value, "label", sub.Name)
	return m
}

// gesture runs fn under a gesture span and records a failure in the status line.
func (m Model) gesture(name, value string, fn func(ctx context.Context) error) Model {
	ctx, span := m.tracer.Start(context.Background(), tracing.SpanGesture,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrMenuID, m.config.ID),
		attribute.String(tracing.AttrGesture, name),
	)
	if value != "" {
		span.SetAttributes(attribute.String(tracing.AttrOptionValue, value))
	}

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatUI, "Gesture failed", err, "menu", m.config.ID, "gesture", name)
		m.status = err.Error()
		return m
	}
	span.SetStatus(codes.Ok, "")
	m.status = ""
	return m
}

func (m *Model) applyFilter() {
	query := m.search.Value()
	visible := m.matcher.Apply(m.handle.Checklist, query)
	m.handle.Checklist.ClampCursor()
	log.Debug(log.CatFilter, "Menu filtered", "menu", m.config.ID, "query", query, "visible", visible)
}

// focusOrder lists the focusable parts in tab order.
func (m Model) focusOrder() []Focus {
	order := []Focus{FocusSearch, FocusActions}
	if m.form.IsOpen() {
		order = append(order, FocusForm)
	}
	return append(order, FocusList, FocusTags)
}

func (m Model) cycleFocus(reverse bool) Model {
	order := m.focusOrder()
	current := 0
	for i, f := range order {
		if f == m.focus {
			current = i
			break
		}
	}
	if reverse {
		current--
		if current < 0 {
			current = len(order) - 1
		}
	} else {
		current = (current + 1) % len(order)
	}
	return m.setFocus(order[current])
}

func (m Model) setFocus(f Focus) Model {
	if f == FocusForm && !m.form.IsOpen() {
		f = FocusActions
	}
	m.focus = f
	if f == FocusList {
		m.handle.Checklist.ClampCursor()
	}
	return m.applyFocus()
}

func (m Model) focusCmd() tea.Cmd {
	if m.focus == FocusSearch {
		return textinput.Blink
	}
	return nil
}
