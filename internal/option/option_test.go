package option

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fruits() []Spec {
	return []Spec{
		{Value: "a", Label: "Apple"},
		{Value: "b", Label: "Banana"},
	}
}

func TestNewRegistry_PreservesOrder(t *testing.T) {
	r := NewRegistry(fruits())

	require.Equal(t, 2, r.Len())
	opts := r.Options()
	assert.Equal(t, "a", opts[0].Value)
	assert.Equal(t, "Apple", opts[0].Label)
	assert.Equal(t, "opt_a", opts[0].ID)
	assert.Equal(t, "b", opts[1].Value)
	assert.False(t, opts[0].Selected)
}

func TestNewRegistry_CopiesSelectedFlag(t *testing.T) {
	r := NewRegistry([]Spec{{Value: "a", Label: "Apple", Selected: true}, {Value: "b", Label: "Banana"}})

	assert.Equal(t, []string{"a"}, r.SelectedValues())
	assert.Equal(t, []string{"Apple"}, r.SelectedLabels())
}

func TestAppend_AddsUnselectedOptionAtEnd(t *testing.T) {
	r := NewRegistry(fruits())

	o := r.Append("c", "Cherry")

	require.Equal(t, 3, r.Len())
	assert.False(t, o.Selected)
	assert.Equal(t, "c", r.Options()[2].Value)

	got, err := r.Lookup("c")
	require.NoError(t, err)
	assert.Same(t, o, got)
}

func TestLookup_Missing(t *testing.T) {
	r := NewRegistry(fruits())

	_, err := r.Lookup("zzz")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsLookup(err, KindOption))
	assert.False(t, IsLookup(err, KindRow))
	assert.Contains(t, err.Error(), `option "zzz"`)
}

func TestLookup_DuplicateValueResolvesToFirst(t *testing.T) {
	r := NewRegistry([]Spec{{Value: "x", Label: "First"}, {Value: "x", Label: "Second"}})

	got, err := r.Lookup("x")

	require.NoError(t, err)
	assert.Equal(t, "First", got.Label)

	// Appending another "x" must not move the index.
	r.Append("x", "Third")
	got, err = r.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Label)
}

func TestLookup_EmptyValueIsLegal(t *testing.T) {
	r := NewRegistry([]Spec{{Value: "", Label: "Blank"}})

	got, err := r.Lookup("")

	require.NoError(t, err)
	assert.Equal(t, "Blank", got.Label)
}

func TestOptions_ReturnsCopyOfSlice(t *testing.T) {
	r := NewRegistry(fruits())

	opts := r.Options()
	opts[0] = &Option{Value: "mutated"}

	assert.Equal(t, "a", r.Options()[0].Value)
}

func TestDuplicates(t *testing.T) {
	r := NewRegistry([]Spec{
		{Value: "x"}, {Value: "y"}, {Value: "x"}, {Value: "x"}, {Value: "y"},
	})

	assert.Equal(t, []string{"x", "y"}, r.Duplicates())
	assert.Empty(t, NewRegistry(fruits()).Duplicates())
}
