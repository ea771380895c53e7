package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kookboek/internal/recipe"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,max=50"`
}

// GetCategories lists categories, grouped by type with ?grouped=true.
func (h *Handler) GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if c.Query("grouped") == "true" {
		c.JSON(http.StatusOK, recipe.GroupCategoriesByType(categories))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory stores a new category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	cat := &recipe.Category{Name: strings.TrimSpace(req.Name), Type: strings.TrimSpace(req.Type)}
	if err := h.store.CreateCategory(ctx, cat); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory renames or retypes a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	cat := &recipe.Category{ID: id, Name: strings.TrimSpace(req.Name), Type: strings.TrimSpace(req.Type)}
	if err := h.store.UpdateCategory(ctx, cat); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.DeleteCategory(ctx, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
