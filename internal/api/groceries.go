package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kookboek/internal/recipe"
)

type groceryItemRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity string `json:"quantity" validate:"max=100"`
	RecipeID string `json:"recipe_id" validate:"omitempty,uuid"`
}

func groceryItems(reqs []groceryItemRequest) []recipe.GroceryItem {
	items := make([]recipe.GroceryItem, len(reqs))
	for i, r := range reqs {
		items[i] = recipe.GroceryItem{Name: strings.TrimSpace(r.Name), Quantity: strings.TrimSpace(r.Quantity)}
		if r.RecipeID != "" {
			id := r.RecipeID
			items[i].RecipeID = &id
		}
	}
	return items
}

type groceryListRequest struct {
	Name  string               `json:"name" validate:"required,max=100"`
	Items []groceryItemRequest `json:"items" validate:"dive"`
}

type addGroceryItemsRequest struct {
	Items []groceryItemRequest `json:"items" validate:"required,min=1,dive"`
}

type checkGroceryItemRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

// GetGroceryLists lists grocery lists without items.
func (h *Handler) GetGroceryLists(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	lists, err := h.store.ListGroceryLists(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// GetGroceryList returns one list with its items.
func (h *Handler) GetGroceryList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	list, err := h.store.GetGroceryList(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateGroceryList stores a new list.
func (h *Handler) CreateGroceryList(c *gin.Context) {
	var req groceryListRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	list := &recipe.GroceryList{Name: strings.TrimSpace(req.Name), Items: groceryItems(req.Items)}
	if err := h.store.CreateGroceryList(ctx, list); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// DeleteGroceryList removes a list.
func (h *Handler) DeleteGroceryList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.DeleteGroceryList(ctx, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddGroceryItems appends items to a list.
func (h *Handler) AddGroceryItems(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req addGroceryItemsRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	items, err := h.store.AddGroceryItems(ctx, id, groceryItems(req.Items))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, items)
}

// CheckGroceryItem ticks an item on or off.
func (h *Handler) CheckGroceryItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}
	var req checkGroceryItemRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.SetGroceryItemChecked(ctx, id, itemID, *req.Checked); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": itemID, "checked": *req.Checked})
}

// DeleteGroceryItem removes an item from a list.
func (h *Handler) DeleteGroceryItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.DeleteGroceryItem(ctx, id, itemID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
