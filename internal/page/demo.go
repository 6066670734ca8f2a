package page

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoPage []byte

// Demo returns the built-in page used when no page file is given.
func Demo() (*Page, error) {
	p, err := Parse(demoPage)
	if err != nil {
		return nil, fmt.Errorf("demo page: %w", err)
	}
	return p, nil
}
