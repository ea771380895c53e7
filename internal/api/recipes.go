package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kookboek/internal/platform/imagestore"
	"kookboek/internal/recipe"
)

type recipeRequest struct {
	Title           string              `json:"title" validate:"required,max=200"`
	Description     string              `json:"description" validate:"max=5000"`
	Servings        int                 `json:"servings" validate:"required,min=1,max=100"`
	PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"min=0,max=10080"`
	Ingredients     []recipe.Ingredient `json:"ingredients" validate:"dive"`
	Instructions    []string            `json:"instructions" validate:"dive,required"`
	SourceURL       string              `json:"source_url" validate:"omitempty,url"`
	CategoryIDs     []string            `json:"category_ids" validate:"omitempty,dive,uuid"`
}

func (req *recipeRequest) apply(r *recipe.Recipe) {
	r.Title = strings.TrimSpace(req.Title)
	r.Description = req.Description
	r.Servings = req.Servings
	r.PrepTimeMinutes = req.PrepTimeMinutes
	r.Ingredients = req.Ingredients
	r.Instructions = req.Instructions
	r.SourceURL = req.SourceURL
	if r.Ingredients == nil {
		r.Ingredients = recipe.Ingredients{}
	}
	if r.Instructions == nil {
		r.Instructions = recipe.Instructions{}
	}
}

type recipeCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids" validate:"dive,uuid"`
}

// GetRecipes lists recipes. With ?categories=a,b only recipes carrying all of
// the given categories are returned.
func (h *Handler) GetRecipes(c *gin.Context) {
	categoryIDs, err := canonicalCategoryIDs(recipe.SplitCategoryIDs(c.Query("categories")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if len(categoryIDs) == 0 {
		recipes, err := h.store.ListRecipes(ctx)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, recipes)
		return
	}

	associations, err := h.store.ListAssociations(ctx, categoryIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	matched := recipe.FilterRecipesByAllCategories(associations, categoryIDs)
	h.log.Debug("category filter",
		zap.Strings("categories", categoryIDs),
		zap.Int("associations", len(associations)),
		zap.Int("matched", len(matched)))

	recipes, err := h.store.GetRecipesByIDs(ctx, matched)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// canonicalCategoryIDs rewrites ids to the lowercase hyphenated UUID form the
// store uses and drops repeats. nil stays nil.
func canonicalCategoryIDs(ids []string) ([]string, error) {
	if ids == nil {
		return nil, nil
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("category %q is not a valid UUID", raw)
		}
		if canonical := id.String(); !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out, nil
}

// GetRecipe returns one recipe by id or slug. With ?servings=N the
// ingredient quantities are scaled to N servings.
func (h *Handler) GetRecipe(c *gin.Context) {
	servings := 0
	if raw := c.Query("servings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "servings must be an integer"})
			return
		}
		servings = n
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	r, err := h.lookupRecipe(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if c.Query("servings") != "" && servings != r.Servings {
		r, err = r.Scaled(servings)
		if err != nil {
			h.writeError(c, err)
			return
		}
		h.metrics.RecipeScaled()
	}
	c.JSON(http.StatusOK, r)
}

// lookupRecipe accepts either a UUID or a slug.
func (h *Handler) lookupRecipe(ctx context.Context, idOrSlug string) (*recipe.Recipe, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return h.store.GetRecipe(ctx, id.String())
	}
	return h.store.GetRecipeBySlug(ctx, idOrSlug)
}

// CreateRecipe stores a new recipe.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if !h.bind(c, &req) {
		return
	}

	categoryIDs, err := canonicalCategoryIDs(req.CategoryIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	r := &recipe.Recipe{}
	req.apply(r)
	if err := h.saveNewRecipe(ctx, r, categoryIDs); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// saveNewRecipe inserts r and its category links under a slug derived from
// its title, adding a short suffix when the slug is taken.
func (h *Handler) saveNewRecipe(ctx context.Context, r *recipe.Recipe, categoryIDs []string) error {
	r.Slug = recipe.Slugify(r.Title)
	err := h.store.CreateRecipe(ctx, r, categoryIDs)
	if errors.Is(err, recipe.ErrConflict) {
		r.Slug = uniqueSlug(r.Title)
		err = h.store.CreateRecipe(ctx, r, categoryIDs)
	}
	if err != nil {
		return err
	}
	h.log.Info("recipe created",
		zap.String("id", r.ID),
		zap.String("slug", r.Slug),
		zap.Int("categories", len(r.CategoryIDs)))
	return nil
}

func uniqueSlug(title string) string {
	return recipe.Slugify(title) + "-" + uuid.NewString()[:8]
}

// UpdateRecipe overwrites a recipe. The slug follows the title.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req recipeRequest
	if !h.bind(c, &req) {
		return
	}
	categoryIDs, err := canonicalCategoryIDs(req.CategoryIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	r, err := h.store.GetRecipe(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	titleChanged := strings.TrimSpace(req.Title) != r.Title
	req.apply(r)
	if titleChanged {
		r.Slug = recipe.Slugify(r.Title)
	}

	err = h.store.UpdateRecipe(ctx, r, categoryIDs)
	if titleChanged && errors.Is(err, recipe.ErrConflict) {
		r.Slug = uniqueSlug(r.Title)
		err = h.store.UpdateRecipe(ctx, r, categoryIDs)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteRecipe removes a recipe.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.DeleteRecipe(ctx, id); err != nil {
		h.writeError(c, err)
		return
	}
	h.log.Info("recipe deleted", zap.String("id", id))
	c.Status(http.StatusNoContent)
}

// SetRecipeCategories replaces the categories of a recipe.
func (h *Handler) SetRecipeCategories(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req recipeCategoriesRequest
	if !h.bind(c, &req) {
		return
	}
	categoryIDs, err := canonicalCategoryIDs(req.CategoryIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if categoryIDs == nil {
		categoryIDs = []string{}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.store.SetRecipeCategories(ctx, id, categoryIDs); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "category_ids": categoryIDs})
}

// UploadRecipeImage resizes an uploaded jpeg or png and attaches it to the
// recipe.
func (h *Handler) UploadRecipeImage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	imageData, ext, ok := readUpload(c, func(ext string) bool { return imagestore.ContentType(ext) != "" })
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	if _, err := h.store.GetRecipe(ctx, id); err != nil {
		h.writeError(c, err)
		return
	}

	resized, err := imagestore.Resize(imageData, ext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.images.Save(ctx, imageKey(id, resized, ext), resized, imagestore.ContentType(ext))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.store.SetRecipeImage(ctx, id, url); err != nil {
		h.writeError(c, err)
		return
	}
	h.log.Info("recipe image stored", zap.String("id", id), zap.String("url", url))
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// imageKey names an image after its recipe and content so that a new upload
// gets a new URL.
func imageKey(recipeID string, data []byte, ext string) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("recipes/%s-%s%s", recipeID, hex.EncodeToString(sum[:])[:12], strings.ToLower(ext))
}

// readUpload reads the multipart "file" field, rejecting extensions that
// allowed reports as unsupported.
func readUpload(c *gin.Context, allowed func(ext string) bool) ([]byte, string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("get form err: %s", err.Error())})
		return nil, "", false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file type %q is not allowed", ext)})
		return nil, "", false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("open file err: %s", err.Error())})
		return nil, "", false
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("read file err: %s", err.Error())})
		return nil, "", false
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return nil, "", false
	}
	return data, ext, true
}
