package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DraftPrompt asks a language model for a recipe as a single JSON object
// matching Draft.
const DraftPrompt = "Extract the recipe from the input. Return a single, clean JSON object with these keys and types: " +
	"'title' (string), 'description' (string), 'servings' (integer), 'prep_time_minutes' (integer), " +
	"'ingredients' (array of objects with 'name' (string) and 'quantity' (string, e.g. '400g' or 'naar smaak')), " +
	"'instructions' (array of strings). Keep the language of the input. " +
	"The JSON response should be clean and not contain any markdown formatting (e.g., ```json)."

// ParseDraft extracts the JSON object from a model response, which might be
// wrapped in markdown, and decodes it.
func ParseDraft(response string) (*Draft, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || start > end {
		return nil, fmt.Errorf("could not find JSON object in response: %s", response)
	}

	var d Draft
	if err := json.Unmarshal([]byte(response[start:end+1]), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	if strings.TrimSpace(d.Title) == "" {
		return nil, fmt.Errorf("recipe JSON has no title")
	}
	if d.Ingredients == nil {
		d.Ingredients = []Ingredient{}
	}
	if d.Instructions == nil {
		d.Instructions = []string{}
	}
	return &d, nil
}
