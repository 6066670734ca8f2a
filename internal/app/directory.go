package app

import (
	"fmt"

	"github.com/zjrosen/selectmenu/internal/option"
	"github.com/zjrosen/selectmenu/internal/report"
	"github.com/zjrosen/selectmenu/internal/widget"
)

// Directory maps menu ids to their instance handles, in page order.
type Directory struct {
	order   []string
	handles map[string]*widget.Handle
	labels  map[string]string
}

// NewDirectory indexes the widgets' handles. Menu ids must be unique.
func NewDirectory(widgets []widget.Model) (*Directory, error) {
	d := &Directory{
		handles: make(map[string]*widget.Handle, len(widgets)),
		labels:  make(map[string]string, len(widgets)),
	}
	for _, w := range widgets {
		h := w.Handle()
		if _, exists := d.handles[h.ID]; exists {
			return nil, fmt.Errorf("menu %q registered twice", h.ID)
		}
		d.order = append(d.order, h.ID)
		d.handles[h.ID] = h
		d.labels[h.ID] = w.Label()
	}
	return d, nil
}

// Lookup returns the handle for a menu id.
func (d *Directory) Lookup(id string) (*widget.Handle, error) {
	h, ok := d.handles[id]
	if !ok {
		return nil, &option.LookupError{Kind: option.KindMenu, Value: id}
	}
	return h, nil
}

// IDs returns the menu ids in page order.
func (d *Directory) IDs() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Report reads every menu's registry back out.
func (d *Directory) Report() []report.Entry {
	entries := make([]report.Entry, 0, len(d.order))
	for _, id := range d.order {
		entries = append(entries, report.FromRegistry(id, d.labels[id], d.handles[id].Registry))
	}
	return entries
}
