package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shialibrary/hadith-server/internal/auth"
	"github.com/shialibrary/hadith-server/internal/database/saved"
	"github.com/shialibrary/hadith-server/internal/entities"
)

// asUser injects an authenticated user the way the session middleware would.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Next()
	}
}

func TestSavedController_Save(t *testing.T) {
	t.Run("saves a hadith", func(t *testing.T) {
		db, _, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		volume := seedVolume(t, db, book.ID, 1)
		chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
		h := seedHadith(t, db, chapter.ID, "1", "hadith")

		controller := NewSavedController(saved.NewRepository(db.DB))
		router := gin.New()
		router.POST("/api/hadith/:hadithId/save", asUser(1), controller.Save)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/hadith/1/save", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var count int64
		require.NoError(t, db.DB.Model(&entities.SavedHadith{}).
			Where("user_id = ? AND hadith_id = ?", 1, h.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("saving twice reports already saved", func(t *testing.T) {
		db, _, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		volume := seedVolume(t, db, book.ID, 1)
		chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
		seedHadith(t, db, chapter.ID, "1", "hadith")

		controller := NewSavedController(saved.NewRepository(db.DB))
		router := gin.New()
		router.POST("/api/hadith/:hadithId/save", asUser(1), controller.Save)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/hadith/1/save", nil)
			router.ServeHTTP(w, req)

			if i == 0 {
				assert.Equal(t, http.StatusCreated, w.Code)
			} else {
				assert.Equal(t, http.StatusConflict, w.Code)
				assert.Contains(t, w.Body.String(), "already saved")
			}
		}

		var count int64
		require.NoError(t, db.DB.Model(&entities.SavedHadith{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestSavedController_Remove(t *testing.T) {
	t.Run("removing a never-saved hadith succeeds", func(t *testing.T) {
		db, _, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		controller := NewSavedController(saved.NewRepository(db.DB))
		router := gin.New()
		router.DELETE("/api/hadith/:hadithId/save", asUser(1), controller.Remove)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/hadith/42/save", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSavedController_IsSaved(t *testing.T) {
	t.Run("anonymous user gets false", func(t *testing.T) {
		db, _, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		controller := NewSavedController(saved.NewRepository(db.DB))
		router := gin.New()
		router.GET("/api/hadith/:hadithId/saved", controller.IsSaved)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/hadith/1/saved", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"saved":false`)
	})

	t.Run("saved hadith reports true", func(t *testing.T) {
		db, _, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		volume := seedVolume(t, db, book.ID, 1)
		chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
		h := seedHadith(t, db, chapter.ID, "1", "hadith")
		require.NoError(t, db.DB.Create(&entities.SavedHadith{UserID: 1, HadithID: h.ID}).Error)

		controller := NewSavedController(saved.NewRepository(db.DB))
		router := gin.New()
		router.GET("/api/hadith/:hadithId/saved", asUser(1), controller.IsSaved)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/hadith/1/saved", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"saved":true`)
	})
}

func TestSavedController_List(t *testing.T) {
	db, _, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "Al-Kafi")
	volume := seedVolume(t, db, book.ID, 1)
	chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
	h1 := seedHadith(t, db, chapter.ID, "1", "first")
	h2 := seedHadith(t, db, chapter.ID, "2", "second")
	require.NoError(t, db.DB.Create(&entities.SavedHadith{UserID: 1, HadithID: h1.ID}).Error)
	require.NoError(t, db.DB.Create(&entities.SavedHadith{UserID: 2, HadithID: h2.ID}).Error)

	controller := NewSavedController(saved.NewRepository(db.DB))
	router := gin.New()
	router.GET("/api/saved", asUser(1), controller.List)
	router.GET("/api/saved/count", asUser(1), controller.GetCount)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/saved", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), "first")
	assert.NotContains(t, w.Body.String(), "second")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/saved/count", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestSavedRoutes_RequireAuth(t *testing.T) {
	db, _, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	controller := NewSavedController(saved.NewRepository(db.DB))
	middleware := auth.NewMiddleware(nil, nil)
	router := gin.New()
	router.POST("/api/hadith/:hadithId/save", middleware.RequireAuth(), controller.Save)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/hadith/1/save", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "please sign in")
}
