package page

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/ui/createform"
	"github.com/zjrosen/selectmenu/internal/widget"
)

// Defaults are applied to every menu unless the page overrides them.
type Defaults struct {
	SearchPlaceholder string
	ShowCounts        bool
	TagMaxWidth       int
	Tracer            trace.Tracer
}

// Build creates one widget per declared menu, in page order.
func Build(ctx context.Context, p *Page, d Defaults) ([]widget.Model, error) {
	widgets := make([]widget.Model, 0, len(p.Menus))
	for _, m := range p.Menus {
		cfg := widget.Config{
			ID:                m.ID,
			Label:             m.Label,
			EnableAdd:         m.EnableAdd,
			SearchPlaceholder: m.SearchPlaceholder,
			ShowCounts:        d.ShowCounts,
			TagMaxWidth:       d.TagMaxWidth,
			Tracer:            d.Tracer,
		}
		if cfg.SearchPlaceholder == "" {
			cfg.SearchPlaceholder = d.SearchPlaceholder
		}
		if m.Form != "" {
			f, ok := p.Form(m.Form)
			if !ok {
				return nil, fmt.Errorf("menu %s: %w %q", m.ID, ErrUnknownForm, m.Form)
			}
			cfg.Form = createform.Config{
				ID:               f.ID,
				Title:            f.Title,
				NamePlaceholder:  f.NamePlaceholder,
				ValuePlaceholder: f.ValuePlaceholder,
			}
		}

		w, err := widget.New(ctx, cfg, m.Options)
		if err != nil {
			return nil, fmt.Errorf("building menu %s: %w", m.ID, err)
		}
		widgets = append(widgets, w)
	}
	log.Debug(log.CatPage, "Page bootstrapped", "menus", len(widgets))
	return widgets, nil
}
