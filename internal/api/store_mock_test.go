package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kookboek/internal/recipe"
)

// mockStore is an in-memory recipe.Store.
type mockStore struct {
	mu         sync.Mutex
	recipes    map[string]*recipe.Recipe
	categories map[string]recipe.Category
	links      []recipe.Association
	menus      map[string]*recipe.Menu
	lists      map[string]*recipe.GroceryList

	// failWith, when set, is returned by every call.
	failWith error
}

var _ recipe.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		recipes:    make(map[string]*recipe.Recipe),
		categories: make(map[string]recipe.Category),
		menus:      make(map[string]*recipe.Menu),
		lists:      make(map[string]*recipe.GroceryList),
	}
}

func (s *mockStore) categoryIDs(recipeID string) []string {
	ids := []string{}
	for _, l := range s.links {
		if l.RecipeID == recipeID {
			ids = append(ids, l.CategoryID)
		}
	}
	return ids
}

func (s *mockStore) copyRecipe(r *recipe.Recipe) *recipe.Recipe {
	cp := *r
	cp.CategoryIDs = s.categoryIDs(r.ID)
	return &cp
}

func (s *mockStore) ListRecipes(ctx context.Context) ([]*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []*recipe.Recipe{}
	for _, r := range s.recipes {
		out = append(out, s.copyRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *mockStore) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.recipes[id]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	return s.copyRecipe(r), nil
}

func (s *mockStore) GetRecipeBySlug(ctx context.Context, slug string) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recipes {
		if r.Slug == slug {
			return s.copyRecipe(r), nil
		}
	}
	return nil, recipe.ErrNotFound
}

func (s *mockStore) GetRecipesByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*recipe.Recipe{}
	for _, id := range ids {
		if r, ok := s.recipes[id]; ok {
			out = append(out, s.copyRecipe(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *mockStore) slugTaken(slug, exceptID string) bool {
	for _, r := range s.recipes {
		if r.Slug == slug && r.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *mockStore) CreateRecipe(ctx context.Context, r *recipe.Recipe, categoryIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(r.Slug, "") {
		return recipe.ErrConflict
	}
	if err := s.checkCategories(categoryIDs); err != nil {
		return err
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	s.recipes[r.ID] = &cp
	s.replaceLinks(r.ID, categoryIDs)
	r.CategoryIDs = s.categoryIDs(r.ID)
	return nil
}

func (s *mockStore) UpdateRecipe(ctx context.Context, r *recipe.Recipe, categoryIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[r.ID]; !ok {
		return recipe.ErrNotFound
	}
	if s.slugTaken(r.Slug, r.ID) {
		return recipe.ErrConflict
	}
	if err := s.checkCategories(categoryIDs); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	cp := *r
	s.recipes[r.ID] = &cp
	if categoryIDs != nil {
		s.replaceLinks(r.ID, categoryIDs)
		r.CategoryIDs = s.categoryIDs(r.ID)
	}
	return nil
}

// checkCategories mirrors the foreign key on recipe_categories: nothing is
// written when a category is unknown.
func (s *mockStore) checkCategories(categoryIDs []string) error {
	for _, c := range categoryIDs {
		if _, ok := s.categories[c]; !ok {
			return recipe.ErrInvalidReference
		}
	}
	return nil
}

func (s *mockStore) replaceLinks(recipeID string, categoryIDs []string) {
	kept := []recipe.Association{}
	for _, l := range s.links {
		if l.RecipeID != recipeID {
			kept = append(kept, l)
		}
	}
	for _, c := range categoryIDs {
		kept = append(kept, recipe.Association{RecipeID: recipeID, CategoryID: c})
	}
	s.links = kept
}

func (s *mockStore) DeleteRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return recipe.ErrNotFound
	}
	delete(s.recipes, id)
	kept := s.links[:0]
	for _, l := range s.links {
		if l.RecipeID != id {
			kept = append(kept, l)
		}
	}
	s.links = kept
	return nil
}

func (s *mockStore) SetRecipeImage(ctx context.Context, id, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return recipe.ErrNotFound
	}
	r.ImageURL = imageURL
	return nil
}

func (s *mockStore) SetRecipeCategories(ctx context.Context, id string, categoryIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return recipe.ErrNotFound
	}
	if err := s.checkCategories(categoryIDs); err != nil {
		return err
	}
	s.replaceLinks(id, categoryIDs)
	return nil
}

func (s *mockStore) ListAssociations(ctx context.Context, categoryIDs []string) ([]recipe.Association, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]bool)
	for _, c := range categoryIDs {
		wanted[c] = true
	}
	var out []recipe.Association
	for _, l := range s.links {
		if wanted[l.CategoryID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *mockStore) ListCategories(ctx context.Context) ([]recipe.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recipe.Category{}
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *mockStore) CreateCategory(ctx context.Context, c *recipe.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == c.Name && existing.Type == c.Type {
			return recipe.ErrConflict
		}
	}
	c.ID = uuid.NewString()
	s.categories[c.ID] = *c
	return nil
}

func (s *mockStore) UpdateCategory(ctx context.Context, c *recipe.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return recipe.ErrNotFound
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *mockStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return recipe.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *mockStore) ListMenus(ctx context.Context) ([]*recipe.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*recipe.Menu{}
	for _, m := range s.menus {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (s *mockStore) GetMenu(ctx context.Context, id string) (*recipe.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[id]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *mockStore) CreateMenu(ctx context.Context, m *recipe.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	cp := *m
	s.menus[m.ID] = &cp
	return nil
}

func (s *mockStore) UpdateMenu(ctx context.Context, m *recipe.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[m.ID]; !ok {
		return recipe.ErrNotFound
	}
	cp := *m
	s.menus[m.ID] = &cp
	return nil
}

func (s *mockStore) DeleteMenu(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[id]; !ok {
		return recipe.ErrNotFound
	}
	delete(s.menus, id)
	return nil
}

func (s *mockStore) ListGroceryLists(ctx context.Context) ([]*recipe.GroceryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*recipe.GroceryList{}
	for _, l := range s.lists {
		out = append(out, &recipe.GroceryList{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt})
	}
	return out, nil
}

func (s *mockStore) GetGroceryList(ctx context.Context, id string) (*recipe.GroceryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[id]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	cp := *l
	cp.Items = append([]recipe.GroceryItem{}, l.Items...)
	return &cp, nil
}

func (s *mockStore) CreateGroceryList(ctx context.Context, l *recipe.GroceryList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	if l.Items == nil {
		l.Items = []recipe.GroceryItem{}
	}
	for i := range l.Items {
		l.Items[i].ID = uuid.NewString()
		l.Items[i].ListID = l.ID
		l.Items[i].Position = i
	}
	cp := *l
	cp.Items = append([]recipe.GroceryItem{}, l.Items...)
	s.lists[l.ID] = &cp
	return nil
}

func (s *mockStore) DeleteGroceryList(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return recipe.ErrNotFound
	}
	delete(s.lists, id)
	return nil
}

func (s *mockStore) AddGroceryItems(ctx context.Context, listID string, items []recipe.GroceryItem) ([]recipe.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].ListID = listID
		items[i].Position = len(l.Items)
		l.Items = append(l.Items, items[i])
	}
	return items, nil
}

func (s *mockStore) SetGroceryItemChecked(ctx context.Context, listID, itemID string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return recipe.ErrNotFound
	}
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items[i].Checked = checked
			return nil
		}
	}
	return recipe.ErrNotFound
}

func (s *mockStore) DeleteGroceryItem(ctx context.Context, listID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return recipe.ErrNotFound
	}
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return nil
		}
	}
	return recipe.ErrNotFound
}
