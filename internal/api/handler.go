package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kookboek/internal/recipe"
)

// Request timeouts for outbound calls.
const (
	storeTimeout = 5 * time.Second
	aiTimeout    = 45 * time.Second
)

// RecipeParser turns unstructured input into recipe drafts.
type RecipeParser interface {
	ParseRecipeText(ctx context.Context, text string) (*recipe.Draft, error)
	ParseRecipeAudio(ctx context.Context, audioData []byte, mimeType string) (*recipe.Draft, error)
	ParseRecipeImage(ctx context.Context, imageData []byte, format string) (*recipe.Draft, error)
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Metrics receives business events.
type Metrics interface {
	AIParse(kind string, err error)
	RecipeScaled()
}

// Handler handles HTTP requests.
type Handler struct {
	store    recipe.Store
	parser   RecipeParser
	images   ImageStore
	metrics  Metrics
	log      *zap.Logger
	validate *Validator
}

// NewHandler creates a new Handler.
func NewHandler(store recipe.Store, parser RecipeParser, images ImageStore, metrics Metrics, log *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		parser:   parser,
		images:   images,
		metrics:  metrics,
		log:      log,
		validate: NewValidator(),
	}
}

// Health reports liveness, including the database when the store can be
// pinged.
func (h *Handler) Health(c *gin.Context) {
	pinger, ok := h.store.(interface{ Ping(context.Context) error })
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := pinger.Ping(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bind decodes the JSON body into req and validates it.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(c, err)
		return false
	}
	return true
}
