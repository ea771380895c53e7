package recipe

import (
	"fmt"
	"sort"
)

// BuildGroceryItems turns a menu into grocery items: every entry's recipe is
// scaled to the planned servings and contributes one item per ingredient.
// Entries whose recipe is not in recipes are skipped. Items follow the menu
// order by day, then by position within the day.
func BuildGroceryItems(menu *Menu, recipes map[string]*Recipe) ([]GroceryItem, error) {
	entries := make([]MenuEntry, len(menu.Entries))
	copy(entries, menu.Entries)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Day < entries[j].Day })

	var items []GroceryItem
	for _, e := range entries {
		r, ok := recipes[e.RecipeID]
		if !ok {
			continue
		}
		scaled, err := ScaleIngredients(r.Ingredients, r.Servings, e.Servings)
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", r.Title, err)
		}
		recipeID := r.ID
		for _, ing := range scaled {
			items = append(items, GroceryItem{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				RecipeID: &recipeID,
			})
		}
	}
	return items, nil
}

// RecipeIDs returns the distinct recipe ids planned in the menu.
func (m *Menu) RecipeIDs() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, e := range m.Entries {
		if seen[e.RecipeID] {
			continue
		}
		seen[e.RecipeID] = true
		ids = append(ids, e.RecipeID)
	}
	return ids
}
