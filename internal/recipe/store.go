package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store defines the interface for recipe data operations.
type Store interface {
	ListRecipes(ctx context.Context) ([]*Recipe, error)
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error)
	GetRecipesByIDs(ctx context.Context, ids []string) ([]*Recipe, error)
	CreateRecipe(ctx context.Context, r *Recipe, categoryIDs []string) error
	UpdateRecipe(ctx context.Context, r *Recipe, categoryIDs []string) error
	DeleteRecipe(ctx context.Context, id string) error
	SetRecipeImage(ctx context.Context, id, imageURL string) error
	SetRecipeCategories(ctx context.Context, id string, categoryIDs []string) error
	ListAssociations(ctx context.Context, categoryIDs []string) ([]Association, error)

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListMenus(ctx context.Context) ([]*Menu, error)
	GetMenu(ctx context.Context, id string) (*Menu, error)
	CreateMenu(ctx context.Context, m *Menu) error
	UpdateMenu(ctx context.Context, m *Menu) error
	DeleteMenu(ctx context.Context, id string) error

	ListGroceryLists(ctx context.Context) ([]*GroceryList, error)
	GetGroceryList(ctx context.Context, id string) (*GroceryList, error)
	CreateGroceryList(ctx context.Context, l *GroceryList) error
	DeleteGroceryList(ctx context.Context, id string) error
	AddGroceryItems(ctx context.Context, listID string, items []GroceryItem) ([]GroceryItem, error)
	SetGroceryItemChecked(ctx context.Context, listID, itemID string, checked bool) error
	DeleteGroceryItem(ctx context.Context, listID, itemID string) error
}

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id UUID PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	servings INTEGER NOT NULL CHECK (servings > 0),
	prep_time_minutes INTEGER NOT NULL DEFAULT 0,
	ingredients JSONB NOT NULL DEFAULT '[]',
	instructions JSONB NOT NULL DEFAULT '[]',
	source_url TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	UNIQUE (name, type)
);

CREATE TABLE IF NOT EXISTS recipe_categories (
	recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	PRIMARY KEY (recipe_id, category_id)
);

CREATE TABLE IF NOT EXISTS menus (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	week_start DATE NOT NULL,
	entries JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS grocery_lists (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS grocery_items (
	id UUID PRIMARY KEY,
	list_id UUID NOT NULL REFERENCES grocery_lists(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	quantity TEXT NOT NULL DEFAULT '',
	checked BOOLEAN NOT NULL DEFAULT FALSE,
	recipe_id UUID REFERENCES recipes(id) ON DELETE SET NULL,
	position INTEGER NOT NULL
);
`

// NewPostgresStore connects to the database and creates the tables if they
// do not exist yet.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const recipeColumns = `id, slug, title, description, servings, prep_time_minutes, ingredients, instructions, source_url, image_url, created_at, updated_at`

// ListRecipes returns all recipes ordered by title.
func (s *PostgresStore) ListRecipes(ctx context.Context) ([]*Recipe, error) {
	recipes := []*Recipe{}
	if err := s.db.SelectContext(ctx, &recipes, "SELECT "+recipeColumns+" FROM recipes ORDER BY title"); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", translateError(err))
	}
	if err := s.attachCategories(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by id.
func (s *PostgresStore) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	return s.getRecipe(ctx, "id", id)
}

// GetRecipeBySlug retrieves a recipe by slug.
func (s *PostgresStore) GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error) {
	return s.getRecipe(ctx, "slug", slug)
}

func (s *PostgresStore) getRecipe(ctx context.Context, column, value string) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r, "SELECT "+recipeColumns+" FROM recipes WHERE "+column+" = $1", value)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe by %s: %w", column, translateError(err))
	}
	if err := s.attachCategories(ctx, []*Recipe{&r}); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRecipesByIDs retrieves the recipes with the given ids. Unknown ids are
// ignored.
func (s *PostgresStore) GetRecipesByIDs(ctx context.Context, ids []string) ([]*Recipe, error) {
	if len(ids) == 0 {
		return []*Recipe{}, nil
	}
	recipes := []*Recipe{}
	err := s.db.SelectContext(ctx, &recipes,
		"SELECT "+recipeColumns+" FROM recipes WHERE id = ANY($1) ORDER BY title", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by ids: %w", translateError(err))
	}
	if err := s.attachCategories(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// attachCategories fills CategoryIDs for the given recipes with one query.
func (s *PostgresStore) attachCategories(ctx context.Context, recipes []*Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]string, len(recipes))
	byID := make(map[string]*Recipe, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		byID[r.ID] = r
		r.CategoryIDs = []string{}
	}

	var links []Association
	err := s.db.SelectContext(ctx, &links,
		"SELECT recipe_id, category_id FROM recipe_categories WHERE recipe_id = ANY($1) ORDER BY category_id", pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe categories: %w", translateError(err))
	}
	for _, l := range links {
		if r, ok := byID[l.RecipeID]; ok {
			r.CategoryIDs = append(r.CategoryIDs, l.CategoryID)
		}
	}
	return nil
}

// CreateRecipe inserts a new recipe, assigning id and timestamps, and links
// it to categoryIDs in the same transaction.
func (s *PostgresStore) CreateRecipe(ctx context.Context, r *Recipe, categoryIDs []string) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO recipes (`+recipeColumns+`) VALUES (:id, :slug, :title, :description, :servings, :prep_time_minutes, :ingredients, :instructions, :source_url, :image_url, :created_at, :updated_at)`,
		r)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", translateError(err))
	}
	if err := linkCategories(ctx, tx, r.ID, categoryIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	r.CategoryIDs = nonNil(categoryIDs)
	return nil
}

// UpdateRecipe overwrites the editable fields of a recipe. A non-nil
// categoryIDs replaces the category links in the same transaction; nil
// leaves them alone.
func (s *PostgresStore) UpdateRecipe(ctx context.Context, r *Recipe, categoryIDs []string) error {
	r.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.NamedExecContext(ctx,
		`UPDATE recipes SET slug = :slug, title = :title, description = :description, servings = :servings,
			prep_time_minutes = :prep_time_minutes, ingredients = :ingredients, instructions = :instructions,
			source_url = :source_url, updated_at = :updated_at
		WHERE id = :id`,
		r)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", translateError(err))
	}
	if err := expectAffected(res, "recipe"); err != nil {
		return err
	}
	if categoryIDs != nil {
		if err := linkCategories(ctx, tx, r.ID, categoryIDs); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	if categoryIDs != nil {
		r.CategoryIDs = nonNil(categoryIDs)
	}
	return nil
}

// DeleteRecipe removes a recipe and its category links.
func (s *PostgresStore) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", translateError(err))
	}
	return expectAffected(res, "recipe")
}

// SetRecipeImage stores the public URL of the recipe image.
func (s *PostgresStore) SetRecipeImage(ctx context.Context, id, imageURL string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE recipes SET image_url = $2, updated_at = $3 WHERE id = $1", id, imageURL, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save recipe image: %w", translateError(err))
	}
	return expectAffected(res, "recipe")
}

// SetRecipeCategories replaces the category links of a recipe.
func (s *PostgresStore) SetRecipeCategories(ctx context.Context, id string, categoryIDs []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists bool
	if err := tx.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM recipes WHERE id = $1)", id); err != nil {
		return fmt.Errorf("failed to check recipe: %w", translateError(err))
	}
	if !exists {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}

	if err := linkCategories(ctx, tx, id, categoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe categories: %w", err)
	}
	return nil
}

// linkCategories replaces the category links of recipeID inside tx.
func linkCategories(ctx context.Context, tx *sqlx.Tx, recipeID string, categoryIDs []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM recipe_categories WHERE recipe_id = $1", recipeID); err != nil {
		return fmt.Errorf("failed to clear recipe categories: %w", translateError(err))
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"INSERT INTO recipe_categories (recipe_id, category_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING",
		recipeID, pq.Array(categoryIDs))
	if err != nil {
		return fmt.Errorf("failed to link recipe categories: %w", translateError(err))
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// ListAssociations returns the (recipe, category) pairs for the given
// categories only.
func (s *PostgresStore) ListAssociations(ctx context.Context, categoryIDs []string) ([]Association, error) {
	if len(categoryIDs) == 0 {
		return []Association{}, nil
	}
	query, args, err := sqlx.In("SELECT recipe_id, category_id FROM recipe_categories WHERE category_id IN (?)", categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build association query: %w", err)
	}
	var links []Association
	if err := s.db.SelectContext(ctx, &links, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list associations: %w", translateError(err))
	}
	return links, nil
}

// ListCategories returns all categories ordered by type and name.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	if err := s.db.SelectContext(ctx, &categories, "SELECT id, name, type FROM categories ORDER BY type, name"); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", translateError(err))
	}
	return categories, nil
}

// CreateCategory inserts a new category.
func (s *PostgresStore) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, err := s.db.NamedExecContext(ctx, "INSERT INTO categories (id, name, type) VALUES (:id, :name, :type)", c); err != nil {
		return fmt.Errorf("failed to save category: %w", translateError(err))
	}
	return nil
}

// UpdateCategory renames or retypes a category.
func (s *PostgresStore) UpdateCategory(ctx context.Context, c *Category) error {
	res, err := s.db.NamedExecContext(ctx, "UPDATE categories SET name = :name, type = :type WHERE id = :id", c)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", translateError(err))
	}
	return expectAffected(res, "category")
}

// DeleteCategory removes a category and its recipe links.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", translateError(err))
	}
	return expectAffected(res, "category")
}

// ListMenus returns all menus, newest week first.
func (s *PostgresStore) ListMenus(ctx context.Context) ([]*Menu, error) {
	menus := []*Menu{}
	if err := s.db.SelectContext(ctx, &menus, "SELECT id, name, week_start, entries, created_at FROM menus ORDER BY week_start DESC, name"); err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", translateError(err))
	}
	return menus, nil
}

// GetMenu retrieves a menu by id.
func (s *PostgresStore) GetMenu(ctx context.Context, id string) (*Menu, error) {
	var m Menu
	if err := s.db.GetContext(ctx, &m, "SELECT id, name, week_start, entries, created_at FROM menus WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", translateError(err))
	}
	return &m, nil
}

// CreateMenu inserts a new menu.
func (s *PostgresStore) CreateMenu(ctx context.Context, m *Menu) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now().UTC()
	_, err := s.db.NamedExecContext(ctx,
		"INSERT INTO menus (id, name, week_start, entries, created_at) VALUES (:id, :name, :week_start, :entries, :created_at)", m)
	if err != nil {
		return fmt.Errorf("failed to save menu: %w", translateError(err))
	}
	return nil
}

// UpdateMenu overwrites name, week and entries of a menu.
func (s *PostgresStore) UpdateMenu(ctx context.Context, m *Menu) error {
	res, err := s.db.NamedExecContext(ctx,
		"UPDATE menus SET name = :name, week_start = :week_start, entries = :entries WHERE id = :id", m)
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", translateError(err))
	}
	return expectAffected(res, "menu")
}

// DeleteMenu removes a menu.
func (s *PostgresStore) DeleteMenu(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM menus WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", translateError(err))
	}
	return expectAffected(res, "menu")
}

// ListGroceryLists returns all grocery lists without their items.
func (s *PostgresStore) ListGroceryLists(ctx context.Context) ([]*GroceryList, error) {
	lists := []*GroceryList{}
	if err := s.db.SelectContext(ctx, &lists, "SELECT id, name, created_at FROM grocery_lists ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("failed to list grocery lists: %w", translateError(err))
	}
	return lists, nil
}

// GetGroceryList retrieves a grocery list with its items.
func (s *PostgresStore) GetGroceryList(ctx context.Context, id string) (*GroceryList, error) {
	var l GroceryList
	if err := s.db.GetContext(ctx, &l, "SELECT id, name, created_at FROM grocery_lists WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to get grocery list: %w", translateError(err))
	}
	l.Items = []GroceryItem{}
	err := s.db.SelectContext(ctx, &l.Items,
		"SELECT id, list_id, name, quantity, checked, recipe_id, position FROM grocery_items WHERE list_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery items: %w", translateError(err))
	}
	return &l, nil
}

// CreateGroceryList inserts a list together with its items.
func (s *PostgresStore) CreateGroceryList(ctx context.Context, l *GroceryList) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.NamedExecContext(ctx, "INSERT INTO grocery_lists (id, name, created_at) VALUES (:id, :name, :created_at)", l); err != nil {
		return fmt.Errorf("failed to save grocery list: %w", translateError(err))
	}
	items, err := insertGroceryItems(ctx, tx, l.ID, 0, l.Items)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit grocery list: %w", err)
	}
	l.Items = items
	return nil
}

// DeleteGroceryList removes a list and its items.
func (s *PostgresStore) DeleteGroceryList(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM grocery_lists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete grocery list: %w", translateError(err))
	}
	return expectAffected(res, "grocery list")
}

// AddGroceryItems appends items to the end of a list.
func (s *PostgresStore) AddGroceryItems(ctx context.Context, listID string, items []GroceryItem) ([]GroceryItem, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Lock the list row so concurrent appends get distinct positions.
	var locked string
	if err := tx.GetContext(ctx, &locked, "SELECT id FROM grocery_lists WHERE id = $1 FOR UPDATE", listID); err != nil {
		return nil, fmt.Errorf("failed to get grocery list: %w", translateError(err))
	}
	var next int
	if err := tx.GetContext(ctx, &next, "SELECT COALESCE(MAX(position) + 1, 0) FROM grocery_items WHERE list_id = $1", listID); err != nil {
		return nil, fmt.Errorf("failed to get next position: %w", translateError(err))
	}

	saved, err := insertGroceryItems(ctx, tx, listID, next, items)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit grocery items: %w", err)
	}
	return saved, nil
}

func insertGroceryItems(ctx context.Context, tx *sqlx.Tx, listID string, start int, items []GroceryItem) ([]GroceryItem, error) {
	saved := make([]GroceryItem, len(items))
	for i, item := range items {
		item.ID = uuid.NewString()
		item.ListID = listID
		item.Position = start + i
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO grocery_items (id, list_id, name, quantity, checked, recipe_id, position)
			VALUES (:id, :list_id, :name, :quantity, :checked, :recipe_id, :position)`, item)
		if err != nil {
			return nil, fmt.Errorf("failed to save grocery item: %w", translateError(err))
		}
		saved[i] = item
	}
	return saved, nil
}

// SetGroceryItemChecked ticks an item on or off.
func (s *PostgresStore) SetGroceryItemChecked(ctx context.Context, listID, itemID string, checked bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE grocery_items SET checked = $3 WHERE list_id = $1 AND id = $2", listID, itemID, checked)
	if err != nil {
		return fmt.Errorf("failed to update grocery item: %w", translateError(err))
	}
	return expectAffected(res, "grocery item")
}

// DeleteGroceryItem removes an item from a list.
func (s *PostgresStore) DeleteGroceryItem(ctx context.Context, listID, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM grocery_items WHERE list_id = $1 AND id = $2", listID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", translateError(err))
	}
	return expectAffected(res, "grocery item")
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// PostgreSQL error codes the API distinguishes.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqInvalidTextRepr     = "22P02"
)

// translateError maps driver errors onto the package sentinels while keeping
// the original error in the chain.
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	case pqCheckViolation, pqInvalidTextRepr:
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return err
}
