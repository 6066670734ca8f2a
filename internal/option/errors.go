package option

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in a LookupError) when a value-based lookup
// finds nothing. It signals that the registry and a view have drifted apart.
var ErrNotFound = errors.New("not found")

// Kind names the collection a lookup was made against.
type Kind string

const (
	KindOption Kind = "option"
	KindRow    Kind = "row"
	KindTag    Kind = "tag"
	KindMenu   Kind = "menu"
)

// LookupError reports a failed lookup by value.
type LookupError struct {
	Kind  Kind
	Value string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.Value, ErrNotFound)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// IsLookup reports whether err is a LookupError of the given kind.
func IsLookup(err error, kind Kind) bool {
	var le *LookupError
	if !errors.As(err, &le) {
		return false
	}
	return le.Kind == kind
}
