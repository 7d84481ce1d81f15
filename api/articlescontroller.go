package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthfeed/pipeline"
	"healthfeed/types"
)

// ArticlePipeline is the coordinator surface the article routes bind to.
type ArticlePipeline interface {
	GetPage(ctx context.Context, page int) (pipeline.Page, error)
	Refresh(ctx context.Context) ([]types.Article, error)
	EnrichOne(ctx context.Context, id int) (types.Article, error)
	EnrichBatch(ctx context.Context) ([]types.Article, error)
	GetSimplified(ctx context.Context, id int) (string, error)
}

type articleHandler struct {
	pipeline ArticlePipeline
}

// RegisterArticleRoutes registers the article feed and enrichment routes.
func RegisterArticleRoutes(r *gin.Engine, p ArticlePipeline) {
	h := &articleHandler{pipeline: p}
	g := r.Group("/api/articles")
	g.GET("", h.getArticles)
	g.POST("/refresh", h.refresh)
	g.POST("/process-ai", h.processAll)
	g.POST("/:id/process-ai", h.processOne)
	g.POST("/:id/simplify", h.simplify)
}

func (h *articleHandler) getArticles(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.pipeline.GetPage(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch health news articles",
		})
		return
	}

	resp := gin.H{
		"success":       true,
		"articles":      result.Articles,
		"cached":        result.Cached,
		"page":          result.Page,
		"hasMore":       result.HasMore,
		"totalArticles": result.Total,
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	c.JSON(http.StatusOK, resp)
}

func (h *articleHandler) refresh(c *gin.Context) {
	articles, err := h.pipeline.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to refresh articles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"articles": articles,
		"message":  "Articles refreshed successfully",
	})
}

func (h *articleHandler) processAll(c *gin.Context) {
	articles, err := h.pipeline.EnrichBatch(c.Request.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrEnrichmentRunning) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "AI processing already in progress",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to process articles with AI",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"articles": articles,
		"message":  "Articles processed with AI successfully",
	})
}

func (h *articleHandler) processOne(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid article id"})
		return
	}

	article, err := h.pipeline.EnrichOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pipeline.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to process article with AI",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
}

func (h *articleHandler) simplify(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid article id"})
		return
	}

	simplified, err := h.pipeline.GetSimplified(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pipeline.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to simplify article",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "simplifiedContent": simplified})
}
