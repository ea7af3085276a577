package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shialibrary/hadith-server/internal/library"
)

func TestNavigationController_GetNavigation(t *testing.T) {
	t.Run("defaults to first real volume", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		v1 := seedVolume(t, db, book.ID, 1)
		v2 := seedVolume(t, db, book.ID, 2)
		seedChapter(t, db, book.ID, &v1.ID, 1)
		seedChapter(t, db, book.ID, &v2.ID, 1)

		router := gin.New()
		router.GET("/api/books/:bookId/navigation", NewNavigationController(library.NewResolver(repo)).GetNavigation)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1/navigation", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var nav library.Navigation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nav))
		assert.Equal(t, v1.ID, nav.SelectedVolumeID)
		require.NotNil(t, nav.VolumeNumber)
		assert.Equal(t, 1, *nav.VolumeNumber)
		assert.Len(t, nav.Volumes, 2)
		assert.Len(t, nav.Chapters, 1)
	})

	t.Run("selecting a volume switches chapters", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		v1 := seedVolume(t, db, book.ID, 1)
		v2 := seedVolume(t, db, book.ID, 2)
		seedChapter(t, db, book.ID, &v1.ID, 1)
		ch2 := seedChapter(t, db, book.ID, &v2.ID, 7)

		router := gin.New()
		router.GET("/api/books/:bookId/navigation", NewNavigationController(library.NewResolver(repo)).GetNavigation)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1/navigation?volume=2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var nav library.Navigation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nav))
		assert.Equal(t, v2.ID, nav.SelectedVolumeID)
		require.NotNil(t, nav.VolumeNumber)
		assert.Equal(t, 2, *nav.VolumeNumber)
		require.Len(t, nav.Chapters, 1)
		assert.Equal(t, ch2.ID, nav.Chapters[0].ID)
	})

	t.Run("sentinel volume hides the selector", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Nahj al-Balagha")
		sentinel := seedVolume(t, db, book.ID, 0)
		seedChapter(t, db, book.ID, &sentinel.ID, 1)

		router := gin.New()
		router.GET("/api/books/:bookId/navigation", NewNavigationController(library.NewResolver(repo)).GetNavigation)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1/navigation", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var nav library.Navigation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nav))
		assert.Empty(t, nav.Volumes)
		require.NotNil(t, nav.VolumeNumber)
		assert.Equal(t, 0, *nav.VolumeNumber)
		assert.Len(t, nav.Chapters, 1)
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		_, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/books/:bookId/navigation", NewNavigationController(library.NewResolver(repo)).GetNavigation)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/999/navigation", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("volume from another book is rejected", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		other := seedBook(t, db, "Other")
		seedVolume(t, db, book.ID, 1)
		seedVolume(t, db, other.ID, 1)

		router := gin.New()
		router.GET("/api/books/:bookId/navigation", NewNavigationController(library.NewResolver(repo)).GetNavigation)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1/navigation?volume=2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
