package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDraft(t *testing.T) {
	response := "```json\n" + `{
		"title": "Stamppot boerenkool",
		"description": "Winterkost",
		"servings": 4,
		"prep_time_minutes": 45,
		"ingredients": [{"name": "boerenkool", "quantity": "500g"}],
		"instructions": ["Kook de aardappels", "Stamp alles fijn"]
	}` + "\n```"

	d, err := ParseDraft(response)
	require.NoError(t, err)
	assert.Equal(t, "Stamppot boerenkool", d.Title)
	assert.Equal(t, 4, d.Servings)
	assert.Equal(t, 45, d.PrepTimeMinutes)
	assert.Equal(t, []Ingredient{{Name: "boerenkool", Quantity: "500g"}}, d.Ingredients)
	assert.Len(t, d.Instructions, 2)
}

func TestParseDraft_Errors(t *testing.T) {
	_, err := ParseDraft("sorry, no recipe here")
	assert.Error(t, err)

	_, err = ParseDraft(`{"title": 12}`)
	assert.Error(t, err)

	_, err = ParseDraft(`{"title": "  "}`)
	assert.Error(t, err)
}

func TestParseDraft_DefaultsSlices(t *testing.T) {
	d, err := ParseDraft(`{"title": "Toast"}`)
	require.NoError(t, err)
	assert.NotNil(t, d.Ingredients)
	assert.NotNil(t, d.Instructions)
}

func TestDraftRecipe(t *testing.T) {
	d := &Draft{Title: " Toast ", Servings: 0, Ingredients: []Ingredient{{Name: "brood", Quantity: "2 sneetjes"}}}
	r := d.Recipe()
	assert.Equal(t, "Toast", r.Title)
	assert.Equal(t, DefaultServings, r.Servings)
	assert.Equal(t, "2 sneetjes", r.Ingredients[0].Quantity)

	d.Servings = 2
	assert.Equal(t, 2, d.Recipe().Servings)
}
