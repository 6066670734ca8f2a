package testutil

import "github.com/zjrosen/selectmenu/internal/option"

// Fruits returns the two-option registry used throughout the tests:
// a/Apple and b/Banana, both unselected.
func Fruits() []option.Spec {
	return []option.Spec{
		{Value: "a", Label: "Apple"},
		{Value: "b", Label: "Banana"},
	}
}

// Basket returns a larger fixture for filtering tests.
func Basket() []option.Spec {
	return []option.Spec{
		{Value: "a", Label: "Apple"},
		{Value: "b", Label: "Banana"},
		{Value: "c", Label: "Cherry"},
		{Value: "d", Label: "Date"},
		{Value: "g", Label: "Grape"},
		{Value: "p", Label: "Pineapple"},
	}
}
