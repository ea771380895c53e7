package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kookboek/internal/logger"
	"kookboek/internal/metrics"
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	AllowedOrigins []string
	// ImagesDir is served under /images when set.
	ImagesDir      string
	MaxUploadBytes int64
}

// NewRouter wires middleware and routes.
func NewRouter(h *Handler, m *metrics.Collector, log *zap.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(log), m.HTTPMiddleware())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	if cfg.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = cfg.MaxUploadBytes
		r.Use(limitBody(cfg.MaxUploadBytes))
	}

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.GET("/recipes", h.GetRecipes)
	r.POST("/recipes", h.CreateRecipe)
	r.GET("/recipes/:id", h.GetRecipe)
	r.PUT("/recipes/:id", h.UpdateRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)
	r.PUT("/recipes/:id/categories", h.SetRecipeCategories)
	r.POST("/recipes/:id/image", h.UploadRecipeImage)

	r.POST("/parse/text", h.ParseText)
	r.POST("/parse/audio", h.ParseAudio)
	r.POST("/parse/image", h.ParseImage)

	r.GET("/categories", h.GetCategories)
	r.POST("/categories", h.CreateCategory)
	r.PUT("/categories/:id", h.UpdateCategory)
	r.DELETE("/categories/:id", h.DeleteCategory)

	r.GET("/menus", h.GetMenus)
	r.POST("/menus", h.CreateMenu)
	r.GET("/menus/:id", h.GetMenu)
	r.PUT("/menus/:id", h.UpdateMenu)
	r.DELETE("/menus/:id", h.DeleteMenu)
	r.POST("/menus/:id/grocery-list", h.BuildGroceryList)

	r.GET("/grocery-lists", h.GetGroceryLists)
	r.POST("/grocery-lists", h.CreateGroceryList)
	r.GET("/grocery-lists/:id", h.GetGroceryList)
	r.DELETE("/grocery-lists/:id", h.DeleteGroceryList)
	r.POST("/grocery-lists/:id/items", h.AddGroceryItems)
	r.PATCH("/grocery-lists/:id/items/:itemId", h.CheckGroceryItem)
	r.DELETE("/grocery-lists/:id/items/:itemId", h.DeleteGroceryItem)

	if cfg.ImagesDir != "" {
		r.Static("/images", cfg.ImagesDir)
	}
	return r
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
