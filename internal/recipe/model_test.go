package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientsValue(t *testing.T) {
	v, err := Ingredients{{Name: "ui", Quantity: "1"}}.Value()
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"ui","quantity":"1"}]`, v)

	v, err = Ingredients(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v, "nil must not be stored as null")
}

func TestJSONColumnScan(t *testing.T) {
	var in Ingredients
	require.NoError(t, in.Scan([]byte(`[{"name":"ui","quantity":"1"}]`)))
	assert.Equal(t, Ingredients{{Name: "ui", Quantity: "1"}}, in)

	var steps Instructions
	require.NoError(t, steps.Scan(`["snijden","bakken"]`))
	assert.Equal(t, Instructions{"snijden", "bakken"}, steps)

	var entries MenuEntries
	require.NoError(t, entries.Scan(nil))
	assert.Nil(t, entries)

	assert.Error(t, entries.Scan(42))
	assert.Error(t, entries.Scan("{not json"))
}
