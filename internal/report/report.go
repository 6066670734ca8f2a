// Package report reads the native selection back out of each menu.
package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/selectmenu/internal/option"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatYAML:
		return Format(s), nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported format %q (must be \"text\" or \"yaml\")", s)
}

// Entry is the selection of one menu, in registry order.
type Entry struct {
	ID     string
	Label  string
	Values []string
	Labels []string
}

// Summary phrases a selection the way the page's report button does.
func Summary(labels []string) string {
	trimmed := make([]string, len(labels))
	for i, l := range labels {
		trimmed[i] = strings.TrimSpace(l)
	}

	switch len(trimmed) {
	case 0:
		return "You haven't picked anything."
	case 1:
		return fmt.Sprintf("You picked %s.", trimmed[0])
	}
	last := trimmed[len(trimmed)-1]
	return fmt.Sprintf("You picked %s, and %s.", strings.Join(trimmed[:len(trimmed)-1], ", "), last)
}

// Write renders entries in the given format.
func Write(w io.Writer, format Format, entries []Entry) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatText, "":
		return writeText(w, entries)
	}
	return fmt.Errorf("unsupported format %q", format)
}

func writeText(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		name := e.Label
		if name == "" {
			name = e.ID
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, Summary(e.Labels)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// writeYAML emits a mapping of menu id to selected values, keeping page order.
func writeYAML(w io.Writer, entries []Entry) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		values := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range e.Values {
			values.Content = append(values.Content, strNode(v))
		}
		root.Content = append(root.Content,
			strNode(e.ID),
			values,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// strNode tags a scalar as a string so values like "true" or "1" are quoted
// and decode back as strings.
func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// FromRegistry reads the selection out of a menu's registry.
func FromRegistry(id, label string, reg *option.Registry) Entry {
	return Entry{
		ID:     id,
		Label:  label,
		Values: reg.SelectedValues(),
		Labels: reg.SelectedLabels(),
	}
}
