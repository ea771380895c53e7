package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kookboek/internal/recipe"
)

const dateLayout = "2006-01-02"

type menuRequest struct {
	Name      string             `json:"name" validate:"required,max=100"`
	WeekStart string             `json:"week_start" validate:"required,datetime=2006-01-02"`
	Entries   []recipe.MenuEntry `json:"entries" validate:"dive"`
}

func (req *menuRequest) menu() *recipe.Menu {
	weekStart, _ := time.Parse(dateLayout, req.WeekStart) // checked by the datetime tag
	entries := recipe.MenuEntries(req.Entries)
	if entries == nil {
		entries = recipe.MenuEntries{}
	}
	return &recipe.Menu{Name: strings.TrimSpace(req.Name), WeekStart: weekStart, Entries: entries}
}

type buildGroceryListRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// GetMenus lists all menus.
func (h *Handler) GetMenus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	menus, err := h.store.ListMenus(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

// GetMenu returns one menu.
func (h *Handler) GetMenu(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	m, err := h.store.GetMenu(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// CreateMenu stores a new weekly menu.
func (h *Handler) CreateMenu(c *gin.Context) {
	var req menuRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	m := req.menu()
	if err := h.checkMenuRecipes(ctx, m); err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.store.CreateMenu(ctx, m); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateMenu overwrites a menu.
func (h *Handler) UpdateMenu(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req menuRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	m := req.menu()
	m.ID = id
	if err := h.checkMenuRecipes(ctx, m); err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.store.UpdateMenu(ctx, m); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMenu removes a menu.
func (h *Handler) DeleteMenu(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.DeleteMenu(ctx, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkMenuRecipes rejects menus that plan recipes which do not exist.
func (h *Handler) checkMenuRecipes(ctx context.Context, m *recipe.Menu) error {
	ids := m.RecipeIDs()
	if len(ids) == 0 {
		return nil
	}
	found, err := h.store.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return fmt.Errorf("menu plans %d unknown recipe(s): %w", len(ids)-len(found), recipe.ErrInvalidReference)
	}
	return nil
}

// BuildGroceryList creates a grocery list from the ingredients of every
// recipe on the menu, scaled to the planned servings.
func (h *Handler) BuildGroceryList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req buildGroceryListRequest
	if c.Request.ContentLength > 0 && !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	m, err := h.store.GetMenu(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	found, err := h.store.GetRecipesByIDs(ctx, m.RecipeIDs())
	if err != nil {
		h.writeError(c, err)
		return
	}
	byID := make(map[string]*recipe.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	items, err := recipe.BuildGroceryItems(m, byID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Boodschappen " + m.Name
	}
	list := &recipe.GroceryList{Name: name, Items: items}
	if err := h.store.CreateGroceryList(ctx, list); err != nil {
		h.writeError(c, err)
		return
	}
	h.log.Info("grocery list built from menu",
		zap.String("menu_id", m.ID), zap.String("list_id", list.ID), zap.Int("items", len(list.Items)))
	c.JSON(http.StatusCreated, list)
}
