package tracing

// Span attribute keys.
const (
	AttrMenuID      = "menu.id"
	AttrOptionValue = "option.value"
	AttrOptionCount = "option.count"
	AttrGesture     = "gesture"
)

// Span names.
const (
	SpanSelect      = "selection.select"
	SpanDeselect    = "selection.deselect"
	SpanToggle      = "selection.toggle"
	SpanSelectAll   = "selection.select_all"
	SpanDeselectAll = "selection.deselect_all"
	SpanCreate      = "form.create"
	SpanGesture     = "widget.gesture"
)
