package widget

import (
	"context"
	"errors"
)

// ErrNilHandle is returned by the bulk operations when no handle is given.
var ErrNilHandle = errors.New("nil menu handle")

// SelectAll selects every option of the menu behind h.
func SelectAll(ctx context.Context, h *Handle) error {
	if h == nil || h.Sync == nil {
		return ErrNilHandle
	}
	return h.Sync.SelectAll(ctx)
}

// DeselectAll deselects every option of the menu behind h.
func DeselectAll(ctx context.Context, h *Handle) error {
	if h == nil || h.Sync == nil {
		return ErrNilHandle
	}
	return h.Sync.DeselectAll(ctx)
}
