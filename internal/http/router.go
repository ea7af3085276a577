// Package http wires the library's JSON API: catalog passthrough reads,
// navigation and reader views, search, saved hadith, feedback and auth.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shialibrary/hadith-server/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// LoadUser never rejects; browsing stays public
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.LoadUser())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	if cfg.AuthController != nil {
		router.POST("/api/auth/register", cfg.AuthController.Register)
		router.POST("/api/auth/login", cfg.AuthController.Login)
		router.POST("/api/auth/logout", cfg.AuthController.Logout)
		router.GET("/api/auth/me", cfg.AuthController.Me)
	}

	// Catalog passthrough endpoints
	catalogController := NewCatalogController(cfg.Catalog)
	router.GET("/api/books", catalogController.GetAllBooks)
	router.GET("/api/books/:bookId/volumes", catalogController.GetVolumes)
	router.GET("/api/books/:bookId/chapters", catalogController.GetChaptersForBook)
	router.GET("/api/volumes/:volumeId/chapters", catalogController.GetChaptersForVolume)
	router.GET("/api/chapters/:chapterId/hadith", catalogController.GetHadithForChapter)
	router.GET("/api/hadith/:hadithId", catalogController.GetHadith)

	// Navigation and reader endpoints
	if cfg.Resolver != nil {
		navigationController := NewNavigationController(cfg.Resolver)
		router.GET("/api/books/:bookId/navigation", navigationController.GetNavigation)
	}
	if cfg.Reader != nil {
		readerController := NewReaderController(cfg.Reader)
		router.GET("/api/volumes/:volumeId/reader", readerController.GetVolumePage)
		router.GET("/api/books/:bookId/reader", readerController.GetBookPage)
		router.GET("/api/hadith/:hadithId/location", readerController.GetLocation)
	}

	// Search endpoint
	if cfg.Searcher != nil {
		searchController := NewSearchController(cfg.Searcher)
		router.GET("/api/search", searchController.Search)
	}

	// Saved hadith endpoints; mutations and listing require a signed-in user
	if cfg.SavedStore != nil && cfg.AuthMiddleware != nil {
		savedController := NewSavedController(cfg.SavedStore)
		requireAuth := cfg.AuthMiddleware.RequireAuth()
		router.POST("/api/hadith/:hadithId/save", requireAuth, savedController.Save)
		router.DELETE("/api/hadith/:hadithId/save", requireAuth, savedController.Remove)
		router.GET("/api/hadith/:hadithId/saved", savedController.IsSaved)
		router.GET("/api/saved", requireAuth, savedController.List)
		router.GET("/api/saved/count", requireAuth, savedController.GetCount)
	}

	// Feedback endpoint
	if cfg.EnqueueFeedback != nil {
		feedbackController := NewFeedbackController(cfg.Auditor, cfg.EnqueueFeedback)
		router.POST("/api/feedback", feedbackController.Submit)
	}

	// Book cover endpoint
	if cfg.CoverCache != nil {
		coversController := NewCoversController(cfg.CoverCache, cfg.Catalog)
		router.GET("/api/books/:bookId/cover", coversController.GetCover)
	}

	return router
}
