// Package createform provides the inline form that adds a new option to a menu.
package createform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/selectmenu/internal/keys"
	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/ui/styles"
)

// State is the form's expand state.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Field identifies which element is focused.
type Field int

const (
	FieldName Field = iota
	FieldValue
	FieldSubmit
	FieldCancel
)

// Field names as the host document declares them.
const (
	NameField  = "option_text"
	ValueField = "option_value"
)

// Config describes a form declared by the page.
type Config struct {
	ID               string
	Title            string
	NamePlaceholder  string
	ValuePlaceholder string
}

// Submission holds trimmed field values.
type Submission struct {
	Name  string
	Value string
}

// Outcome says what an Update did to the form.
type Outcome int

const (
	// None means the form is still open, or the message was not for it.
	None Outcome = iota
	// Submitted means both fields were filled in; the Result carries them.
	Submitted
	// Discarded means submit was pressed with an empty field.
	Discarded
	// Cancelled means the user backed out.
	Cancelled
)

// Result is returned from Update so the caller can act in the same turn.
type Result struct {
	Outcome    Outcome
	Submission Submission
}

// Model holds the form state.
type Model struct {
	config       Config
	zonePrefix   string
	state        State
	name         textinput.Model
	value        textinput.Model
	focusedField Field
	width        int
}

// New creates a closed form. zonePrefix namespaces its zone ids.
func New(cfg Config, zonePrefix string) Model {
	if cfg.Title == "" {
		cfg.Title = "New Option"
	}
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = cfg.NamePlaceholder
	if name.Placeholder == "" {
		name.Placeholder = "Name"
	}
	value := textinput.New()
	value.Prompt = ""
	value.Placeholder = cfg.ValuePlaceholder
	if value.Placeholder == "" {
		value.Placeholder = "Value"
	}
	return Model{
		config:     cfg,
		zonePrefix: zonePrefix,
		name:       name,
		value:      value,
		width:      40,
	}
}

// SubmitZoneID returns the submit button zone id.
func SubmitZoneID(prefix string) string { return prefix + ":form-submit" }

// CancelZoneID returns the cancel button zone id.
func CancelZoneID(prefix string) string { return prefix + ":form-cancel" }

// FieldZoneID returns the zone id for text field i (0 name, 1 value).
func FieldZoneID(prefix string, i int) string {
	return fmt.Sprintf("%s:form-field:%d", prefix, i)
}

// State returns the current state.
func (m Model) State() State { return m.state }

// IsOpen reports whether the form is expanded.
func (m Model) IsOpen() bool { return m.state == Open }

// Config returns the form config.
func (m Model) Config() Config { return m.config }

// FocusedField returns the focused element.
func (m Model) FocusedField() Field { return m.focusedField }

// SetWidth sets the render width.
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// SetFields fills both inputs.
func (m Model) SetFields(name, value string) Model {
	m.name.SetValue(name)
	m.value.SetValue(value)
	return m
}

// Open expands the form with empty fields and focus on the name.
func (m Model) Open() (Model, tea.Cmd) {
	m.state = Open
	m.name.SetValue("")
	m.value.SetValue("")
	m = m.focus(FieldName)
	log.Debug(log.CatForm, "Form opened", "form", m.config.ID)
	return m, textinput.Blink
}

// Close collapses the form.
func (m Model) Close() Model {
	m.state = Closed
	m.name.Blur()
	m.value.Blur()
	return m
}

// Submit closes the form and returns the trimmed fields. ok is false when
// either field is empty, in which case the submission is discarded.
func (m Model) Submit() (Model, Submission, bool) {
	sub := Submission{
		Name:  strings.TrimSpace(m.name.Value()),
		Value: strings.TrimSpace(m.value.Value()),
	}
	m = m.Close()
	if sub.Name == "" || sub.Value == "" {
		log.Debug(log.CatForm, "Submission discarded", "form", m.config.ID,
			"name_empty", sub.Name == "", "value_empty", sub.Value == "")
		return m, Submission{}, false
	}
	return m, sub, true
}

// Update handles messages while the form is open.
func (m Model) Update(msg tea.Msg) (Model, Result, tea.Cmd) {
	if m.state != Open {
		return m, Result{}, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Arrow keys only; j/k are typed into the inputs.
		switch {
		case key.Matches(msg, keys.Common.Escape):
			return m.cancel()
		case key.Matches(msg, keys.Component.Tab), msg.Type == tea.KeyDown:
			return m.cycleField(false), Result{}, nil
		case key.Matches(msg, keys.Component.ShiftTab), msg.Type == tea.KeyUp:
			return m.cycleField(true), Result{}, nil
		case key.Matches(msg, keys.Common.Enter):
			switch m.focusedField {
			case FieldName:
				return m.focus(FieldValue), Result{}, nil
			case FieldCancel:
				return m.cancel()
			default:
				return m.submit()
			}
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(SubmitZoneID(m.zonePrefix)); z != nil && z.InBounds(msg) {
				return m.submit()
			}
			if z := zone.Get(CancelZoneID(m.zonePrefix)); z != nil && z.InBounds(msg) {
				return m.cancel()
			}
			for i, f := range []Field{FieldName, FieldValue} {
				if z := zone.Get(FieldZoneID(m.zonePrefix, i)); z != nil && z.InBounds(msg) {
					return m.focus(f), Result{}, textinput.Blink
				}
			}
		}
		return m, Result{}, nil
	}

	// Forward to the focused text input
	var cmd tea.Cmd
	switch m.focusedField {
	case FieldName:
		m.name, cmd = m.name.Update(msg)
	case FieldValue:
		m.value, cmd = m.value.Update(msg)
	}
	return m, Result{}, cmd
}

// InBounds reports whether a mouse event hits any of the form's zones.
func (m Model) InBounds(msg tea.MouseMsg) bool {
	if m.state != Open {
		return false
	}
	ids := []string{SubmitZoneID(m.zonePrefix), CancelZoneID(m.zonePrefix),
		FieldZoneID(m.zonePrefix, 0), FieldZoneID(m.zonePrefix, 1)}
	for _, id := range ids {
		if z := zone.Get(id); z != nil && z.InBounds(msg) {
			return true
		}
	}
	return false
}

func (m Model) submit() (Model, Result, tea.Cmd) {
	m, sub, ok := m.Submit()
	if !ok {
		return m, Result{Outcome: Discarded}, nil
	}
	return m, Result{Outcome: Submitted, Submission: sub}, nil
}

func (m Model) cancel() (Model, Result, tea.Cmd) {
	log.Debug(log.CatForm, "Form cancelled", "form", m.config.ID)
	return m.Close(), Result{Outcome: Cancelled}, nil
}

// cycleField moves focus to the next/previous field.
func (m Model) cycleField(reverse bool) Model {
	fields := []Field{FieldName, FieldValue, FieldSubmit, FieldCancel}
	current := int(m.focusedField)
	if reverse {
		current--
		if current < 0 {
			current = len(fields) - 1
		}
	} else {
		current = (current + 1) % len(fields)
	}
	return m.focus(fields[current])
}

func (m Model) focus(f Field) Model {
	m.focusedField = f
	m.name.Blur()
	m.value.Blur()
	switch f {
	case FieldName:
		m.name.Focus()
	case FieldValue:
		m.value.Focus()
	}
	return m
}

// View renders the form when open and nothing when closed.
func (m Model) View() string {
	if m.state != Open {
		return ""
	}

	inputWidth := m.width - 12
	if inputWidth < 8 {
		inputWidth = 8
	}
	m.name.Width = inputWidth
	m.value.Width = inputWidth

	field := func(i int, f Field, label string, input textinput.Model) string {
		prefix := "  "
		if m.focusedField == f {
			prefix = styles.SelectionIndicatorStyle.Render(">") + " "
		}
		return zone.Mark(FieldZoneID(m.zonePrefix, i), prefix+styles.MutedStyle.Render(label)+input.View())
	}

	submitStyle := styles.PrimaryButtonStyle
	if m.focusedField == FieldSubmit {
		submitStyle = styles.PrimaryButtonFocusedStyle
	}
	cancelStyle := styles.SecondaryButtonStyle
	if m.focusedField == FieldCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}
	buttons := "  " + zone.Mark(SubmitZoneID(m.zonePrefix), submitStyle.Render("Submit")) +
		"  " + zone.Mark(CancelZoneID(m.zonePrefix), cancelStyle.Render("Cancel"))

	rows := []string{
		field(0, FieldName, "Name  ", m.name),
		field(1, FieldValue, "Value ", m.value),
		"",
		buttons,
	}
	return styles.RenderSection(rows, m.config.Title, "Enter to submit", m.width, true)
}
