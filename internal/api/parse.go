package api

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kookboek/internal/recipe"
)

var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".flac": "audio/flac",
}

var imageFormats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
}

type parseTextRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

// ParseText turns free text into a recipe draft.
func (h *Handler) ParseText(c *gin.Context) {
	var req parseTextRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	draft, err := h.parser.ParseRecipeText(ctx, req.Text)
	h.respondDraft(ctx, c, "text", draft, err)
}

// ParseAudio turns a spoken recipe into a draft.
func (h *Handler) ParseAudio(c *gin.Context) {
	data, ext, ok := readUpload(c, func(ext string) bool { _, ok := audioTypes[ext]; return ok })
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	draft, err := h.parser.ParseRecipeAudio(ctx, data, audioMIMEType(c, ext))
	h.respondDraft(ctx, c, "audio", draft, err)
}

// ParseImage reads a recipe from a photo.
func (h *Handler) ParseImage(c *gin.Context) {
	data, ext, ok := readUpload(c, func(ext string) bool { _, ok := imageFormats[ext]; return ok })
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	draft, err := h.parser.ParseRecipeImage(ctx, data, imageFormats[ext])
	h.respondDraft(ctx, c, "image", draft, err)
}

// audioMIMEType prefers the part's declared audio type over the extension.
func audioMIMEType(c *gin.Context, ext string) string {
	if file, err := c.FormFile("file"); err == nil {
		if mt, _, err := mime.ParseMediaType(file.Header.Get("Content-Type")); err == nil && strings.HasPrefix(mt, "audio/") {
			return mt
		}
	}
	return audioTypes[ext]
}

// respondDraft records the parse outcome and writes the draft. With
// ?save=true the draft is stored as a new recipe.
func (h *Handler) respondDraft(ctx context.Context, c *gin.Context, kind string, draft *recipe.Draft, err error) {
	h.metrics.AIParse(kind, err)
	if err != nil {
		h.log.Warn("recipe parse failed", zap.String("kind", kind), zap.Error(err))
		h.writeError(c, err)
		return
	}

	if c.Query("save") != "true" {
		c.JSON(http.StatusOK, draft)
		return
	}

	r := draft.Recipe()
	if err := h.saveNewRecipe(ctx, r, nil); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
