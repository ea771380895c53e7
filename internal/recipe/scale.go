package recipe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// quantityPattern splits a display quantity into number, separator and unit.
var quantityPattern = regexp.MustCompile(`(?s)^\s*(\d+(?:[.,]\d+)?)(\s*)(.*)$`)

// roundingTolerance absorbs binary representation error so that values
// such as 1.15 round up at the first decimal.
const roundingTolerance = 1e-9

// ScaleQuantity rescales a free-text quantity such as "400g" from one
// serving count to another. Text that does not start with a number is
// returned unchanged. Results are rounded half-up to one decimal and a
// trailing ".0" is dropped; the unit text is kept verbatim.
func ScaleQuantity(display string, fromServings, toServings int) (string, error) {
	if fromServings <= 0 {
		return "", fmt.Errorf("%w: original servings must be positive, got %d", ErrInvalidArgument, fromServings)
	}
	if toServings <= 0 {
		return "", fmt.Errorf("%w: target servings must be positive, got %d", ErrInvalidArgument, toServings)
	}

	m := quantityPattern.FindStringSubmatch(display)
	if m == nil {
		return display, nil
	}
	value, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return display, nil
	}

	scaled := value * float64(toServings) / float64(fromServings)
	scaled = math.Floor(scaled*10+0.5+roundingTolerance) / 10

	out := strconv.FormatFloat(scaled, 'f', 1, 64)
	out = strings.TrimSuffix(out, ".0")
	if m[3] == "" {
		return out, nil
	}
	return out + m[2] + m[3], nil
}

// ScaleIngredients returns a copy of ingredients with every quantity scaled
// from one serving count to another.
func ScaleIngredients(ingredients []Ingredient, fromServings, toServings int) ([]Ingredient, error) {
	out := make([]Ingredient, len(ingredients))
	for i, ing := range ingredients {
		q, err := ScaleQuantity(ing.Quantity, fromServings, toServings)
		if err != nil {
			return nil, err
		}
		out[i] = Ingredient{Name: ing.Name, Quantity: q}
	}
	return out, nil
}
