package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ingredient is a single ingredient line with a free-text display quantity,
// e.g. {"Name": "bloem", "Quantity": "400g"}.
type Ingredient struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity string `json:"quantity" validate:"max=100"`
}

// Ingredients is stored as a JSONB column.
type Ingredients []Ingredient

// Value implements driver.Valuer.
func (in Ingredients) Value() (driver.Value, error) {
	return marshalJSON(in)
}

// Scan implements sql.Scanner.
func (in *Ingredients) Scan(src any) error {
	return scanJSON(src, in)
}

// Instructions is stored as a JSONB column.
type Instructions []string

// Value implements driver.Valuer.
func (in Instructions) Value() (driver.Value, error) {
	return marshalJSON(in)
}

// Scan implements sql.Scanner.
func (in *Instructions) Scan(src any) error {
	return scanJSON(src, in)
}

// Recipe represents a stored recipe.
type Recipe struct {
	ID              string       `json:"id" db:"id"`
	Slug            string       `json:"slug" db:"slug"`
	Title           string       `json:"title" db:"title"`
	Description     string       `json:"description" db:"description"`
	Servings        int          `json:"servings" db:"servings"`
	PrepTimeMinutes int          `json:"prep_time_minutes" db:"prep_time_minutes"`
	Ingredients     Ingredients  `json:"ingredients" db:"ingredients"`
	Instructions    Instructions `json:"instructions" db:"instructions"`
	SourceURL       string       `json:"source_url" db:"source_url"`
	ImageURL        string       `json:"image_url" db:"image_url"`
	CategoryIDs     []string     `json:"category_ids" db:"-"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// Scaled returns a copy of the recipe with every ingredient quantity scaled
// to the given number of servings.
func (r *Recipe) Scaled(servings int) (*Recipe, error) {
	ingredients, err := ScaleIngredients(r.Ingredients, r.Servings, servings)
	if err != nil {
		return nil, err
	}
	scaled := *r
	scaled.Servings = servings
	scaled.Ingredients = ingredients
	return &scaled, nil
}

// Category is a label attachable to recipes, grouped under a type such as
// "gang" or "uitgever".
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`
}

// CategoryGroup holds the categories sharing one type.
type CategoryGroup struct {
	Type       string     `json:"type"`
	Categories []Category `json:"categories"`
}

// Association links a recipe to a category.
type Association struct {
	RecipeID   string `db:"recipe_id"`
	CategoryID string `db:"category_id"`
}

// MenuEntry plans a recipe on a day of the week (0 = monday).
type MenuEntry struct {
	Day      int    `json:"day" validate:"min=0,max=6"`
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	Servings int    `json:"servings" validate:"required,min=1"`
}

// MenuEntries is stored as a JSONB column.
type MenuEntries []MenuEntry

// Value implements driver.Valuer.
func (m MenuEntries) Value() (driver.Value, error) {
	return marshalJSON(m)
}

// Scan implements sql.Scanner.
func (m *MenuEntries) Scan(src any) error {
	return scanJSON(src, m)
}

// Menu is a weekly menu.
type Menu struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	WeekStart time.Time   `json:"week_start" db:"week_start"`
	Entries   MenuEntries `json:"entries" db:"entries"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// GroceryItem is one line on a grocery list.
type GroceryItem struct {
	ID       string  `json:"id" db:"id"`
	ListID   string  `json:"-" db:"list_id"`
	Name     string  `json:"name" db:"name"`
	Quantity string  `json:"quantity" db:"quantity"`
	Checked  bool    `json:"checked" db:"checked"`
	RecipeID *string `json:"recipe_id,omitempty" db:"recipe_id"`
	Position int     `json:"-" db:"position"`
}

// GroceryList is a named list of grocery items.
type GroceryList struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	Items     []GroceryItem `json:"items" db:"-"`
}

// Draft holds recipe fields extracted from unstructured input before they
// are saved.
type Draft struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Servings        int          `json:"servings"`
	PrepTimeMinutes int          `json:"prep_time_minutes"`
	Ingredients     []Ingredient `json:"ingredients"`
	Instructions    []string     `json:"instructions"`
}

// Recipe converts the draft into an unsaved recipe.
func (d *Draft) Recipe() *Recipe {
	servings := d.Servings
	if servings <= 0 {
		servings = DefaultServings
	}
	return &Recipe{
		Title:           strings.TrimSpace(d.Title),
		Description:     strings.TrimSpace(d.Description),
		Servings:        servings,
		PrepTimeMinutes: d.PrepTimeMinutes,
		Ingredients:     d.Ingredients,
		Instructions:    d.Instructions,
	}
}

// DefaultServings is used when a parsed draft carries no serving count.
const DefaultServings = 4

// marshalJSON encodes v as a string; lib/pq sends []byte parameters as
// bytea, which JSONB columns reject.
func marshalJSON[T any](v []T) (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src any, dst any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON column: %w", err)
	}
	return nil
}

// Sentinel errors returned by the store and the pure helpers.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupported      = errors.New("not supported")
)
