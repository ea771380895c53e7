package recipe

import (
	"sort"
	"strings"
)

// FilterRecipesByAllCategories returns the recipes that carry every requested
// category. Duplicate pairs and pairs for categories that were not requested
// do not count. The result is sorted.
//
// An empty request yields an empty result; callers that want "no filter"
// must handle that case themselves.
func FilterRecipesByAllCategories(associations []Association, requested []string) []string {
	wanted := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		wanted[id] = struct{}{}
	}
	if len(wanted) == 0 {
		return []string{}
	}

	seen := make(map[Association]struct{}, len(associations))
	tally := make(map[string]int)
	for _, a := range associations {
		if _, ok := wanted[a.CategoryID]; !ok {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		tally[a.RecipeID]++
	}

	out := make([]string, 0, len(tally))
	for recipeID, n := range tally {
		if n == len(wanted) {
			out = append(out, recipeID)
		}
	}
	sort.Strings(out)
	return out
}

// SplitCategoryIDs parses a comma separated list of category ids, dropping
// blanks and duplicates while keeping the first occurrence order.
func SplitCategoryIDs(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// GroupCategoriesByType groups categories by their type. Groups are sorted by
// type and categories within a group by name.
func GroupCategoriesByType(categories []Category) []CategoryGroup {
	byType := make(map[string][]Category)
	for _, c := range categories {
		byType[c.Type] = append(byType[c.Type], c)
	}

	groups := make([]CategoryGroup, 0, len(byType))
	for t, cs := range byType {
		sort.SliceStable(cs, func(i, j int) bool {
			return strings.ToLower(cs[i].Name) < strings.ToLower(cs[j].Name)
		})
		groups = append(groups, CategoryGroup{Type: t, Categories: cs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Type < groups[j].Type })
	return groups
}
