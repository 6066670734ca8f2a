// Package page loads the host document that declares a page's menus and forms.
package page

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/option"
)

// Validation errors.
var (
	ErrNoMenus       = errors.New("page declares no menus")
	ErrMissingForm   = errors.New("enable_add requires a form reference")
	ErrUnknownForm   = errors.New("unknown form")
	ErrDuplicateMenu = errors.New("duplicate menu id")
)

// Page is the host document.
type Page struct {
	Menus []Menu `yaml:"menus"`
	Forms []Form `yaml:"forms"`
}

// Menu declares one multi-select control and its options.
type Menu struct {
	ID                string        `yaml:"id"`
	Label             string        `yaml:"label"`
	EnableAdd         bool          `yaml:"enable_add"`
	Form              string        `yaml:"form"`
	SearchPlaceholder string        `yaml:"search_placeholder"`
	Options           []option.Spec `yaml:"options"`
}

// Form declares a creation form a menu can reference.
type Form struct {
	ID               string `yaml:"id"`
	Title            string `yaml:"title"`
	NamePlaceholder  string `yaml:"name_placeholder"`
	ValuePlaceholder string `yaml:"value_placeholder"`
}

// Load reads and parses a page file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", path, err)
	}
	log.Info(log.CatPage, "Page loaded", "path", path, "menus", len(p.Menus))
	return p, nil
}

// Parse decodes a page, assigns ids to anonymous menus and validates it.
func Parse(data []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	for i := range p.Menus {
		if p.Menus[i].ID == "" {
			p.Menus[i].ID = uuid.NewString()
			log.Debug(log.CatPage, "Generated menu id", "index", i, "id", p.Menus[i].ID)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks menu and form references.
func (p *Page) Validate() error {
	if len(p.Menus) == 0 {
		return ErrNoMenus
	}

	forms := make(map[string]bool, len(p.Forms))
	for _, f := range p.Forms {
		forms[f.ID] = true
	}

	seen := make(map[string]bool, len(p.Menus))
	for i, m := range p.Menus {
		if seen[m.ID] {
			return fmt.Errorf("menu %d (%s): %w", i, m.ID, ErrDuplicateMenu)
		}
		seen[m.ID] = true

		if m.EnableAdd && m.Form == "" {
			return fmt.Errorf("menu %d (%s): %w", i, m.ID, ErrMissingForm)
		}
		if m.Form != "" && !forms[m.Form] {
			return fmt.Errorf("menu %d (%s): %w %q", i, m.ID, ErrUnknownForm, m.Form)
		}
		if dups := option.NewRegistry(m.Options).Duplicates(); len(dups) > 0 {
			log.Warn(log.CatPage, "Duplicate option values, first match wins", "menu", m.ID, "values", dups)
		}
	}
	return nil
}

// Form returns the form declared with id.
func (p *Page) Form(id string) (Form, bool) {
	for _, f := range p.Forms {
		if f.ID == id {
			return f, true
		}
	}
	return Form{}, false
}

// SelectedValues returns the declared initial selection of a menu.
func (m Menu) SelectedValues() []string {
	return option.NewRegistry(m.Options).SelectedValues()
}

// SelectedLabels returns the labels of the declared initial selection.
func (m Menu) SelectedLabels() []string {
	return option.NewRegistry(m.Options).SelectedLabels()
}
