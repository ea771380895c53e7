package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGroceryItems(t *testing.T) {
	pasta := &Recipe{
		ID:       "r-pasta",
		Title:    "Pasta",
		Servings: 4,
		Ingredients: Ingredients{
			{Name: "spaghetti", Quantity: "400g"},
			{Name: "peper", Quantity: "naar smaak"},
		},
	}
	soep := &Recipe{
		ID:          "r-soep",
		Title:       "Soep",
		Servings:    2,
		Ingredients: Ingredients{{Name: "bouillon", Quantity: "0,5 liter"}},
	}
	menu := &Menu{Entries: MenuEntries{
		{Day: 3, RecipeID: "r-pasta", Servings: 2},
		{Day: 0, RecipeID: "r-soep", Servings: 6},
		{Day: 1, RecipeID: "r-gone", Servings: 2},
	}}

	items, err := BuildGroceryItems(menu, map[string]*Recipe{"r-pasta": pasta, "r-soep": soep})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "bouillon", items[0].Name)
	assert.Equal(t, "1.5 liter", items[0].Quantity)
	assert.Equal(t, "r-soep", *items[0].RecipeID)

	assert.Equal(t, "spaghetti", items[1].Name)
	assert.Equal(t, "200g", items[1].Quantity)
	assert.Equal(t, "naar smaak", items[2].Quantity)
	assert.Equal(t, "r-pasta", *items[2].RecipeID)

	// The menu keeps its own order.
	assert.Equal(t, 3, menu.Entries[0].Day)
}

func TestBuildGroceryItems_EmptyMenu(t *testing.T) {
	items, err := BuildGroceryItems(&Menu{}, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBuildGroceryItems_InvalidServings(t *testing.T) {
	menu := &Menu{Entries: MenuEntries{{RecipeID: "r1", Servings: 0}}}
	_, err := BuildGroceryItems(menu, map[string]*Recipe{"r1": {
		ID:          "r1",
		Servings:    4,
		Ingredients: Ingredients{{Name: "ei", Quantity: "2"}},
	}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMenuRecipeIDs(t *testing.T) {
	menu := &Menu{Entries: MenuEntries{
		{RecipeID: "b"}, {RecipeID: "a"}, {RecipeID: "b"},
	}}
	assert.Equal(t, []string{"b", "a"}, menu.RecipeIDs())
	assert.Empty(t, (&Menu{}).RecipeIDs())
}
