package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shialibrary/hadith-server/internal/library"
	"github.com/shialibrary/hadith-server/internal/tasks"
)

func TestHealthController_Status(t *testing.T) {
	t.Run("healthy with database", func(t *testing.T) {
		db, _, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		router := gin.New()
		router.GET("/health", NewHealthController(db, "test").Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status": "healthy"`)
		assert.Contains(t, w.Body.String(), "search_index")
	})

	t.Run("no database is not configured", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", NewHealthController(nil, "test").Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "not configured")
	})
}

func TestNewRouter_RoutesRegistered(t *testing.T) {
	db, repo, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	router := NewRouter(RouterConfig{
		Database: db,
		Catalog:  repo,
		Resolver: library.NewResolver(repo),
		Reader:   library.NewReader(repo),
		Searcher: &stubSearcher{},
		EnqueueFeedback: func(task tasks.SendFeedbackTask) error {
			return nil
		},
		Version: "test",
	})

	for _, path := range []string{"/ping", "/health", "/api/books", "/api/books/1/volumes", "/api/search?q=allah"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// Saved routes are absent without auth wiring
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/saved", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
