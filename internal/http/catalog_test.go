package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/database"
	"github.com/shialibrary/hadith-server/internal/database/catalog"
	"github.com/shialibrary/hadith-server/internal/entities"
)

func setupCatalogTestDB(t *testing.T) (*database.Database, *catalog.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, catalog.NewRepository(db.DB), cleanup
}

func seedBook(t *testing.T, db *database.Database, title string) entities.Book {
	t.Helper()
	book := entities.Book{Title: title, EnglishTitle: title, Author: "Author"}
	require.NoError(t, db.DB.Create(&book).Error)
	return book
}

func seedVolume(t *testing.T, db *database.Database, bookID uint, number int) entities.Volume {
	t.Helper()
	volume := entities.Volume{BookID: bookID, VolumeNumber: number}
	require.NoError(t, db.DB.Create(&volume).Error)
	return volume
}

func seedChapter(t *testing.T, db *database.Database, bookID uint, volumeID *uint, number int) entities.Chapter {
	t.Helper()
	chapter := entities.Chapter{
		BookID:        bookID,
		VolumeID:      volumeID,
		ChapterNumber: number,
		TitleEn:       "Chapter",
	}
	require.NoError(t, db.DB.Create(&chapter).Error)
	return chapter
}

func seedHadith(t *testing.T, db *database.Database, chapterID uint, number, english string) entities.Hadith {
	t.Helper()
	h := entities.Hadith{ChapterID: chapterID, HadithNumber: number, English: english}
	require.NoError(t, db.DB.Create(&h).Error)
	return h
}

func TestCatalogController_GetAllBooks(t *testing.T) {
	t.Run("returns all books", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		seedBook(t, db, "Al-Kafi")
		seedBook(t, db, "Nahj al-Balagha")

		router := gin.New()
		router.GET("/api/books", NewCatalogController(repo).GetAllBooks)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Books []entities.Book `json:"books"`
			Count int             `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Len(t, resp.Books, 2)
	})

	t.Run("empty catalog returns empty array", func(t *testing.T) {
		_, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/books", NewCatalogController(repo).GetAllBooks)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"books":[]`)
	})
}

func TestCatalogController_GetVolumes(t *testing.T) {
	t.Run("returns volumes ordered by number", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		seedVolume(t, db, book.ID, 3)
		seedVolume(t, db, book.ID, 1)
		seedVolume(t, db, book.ID, 2)

		router := gin.New()
		router.GET("/api/books/:bookId/volumes", NewCatalogController(repo).GetVolumes)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/1/volumes", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Volumes []entities.Volume `json:"volumes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Volumes, 3)
		assert.Equal(t, 1, resp.Volumes[0].VolumeNumber)
		assert.Equal(t, 3, resp.Volumes[2].VolumeNumber)
	})

	t.Run("rejects malformed book id", func(t *testing.T) {
		_, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/books/:bookId/volumes", NewCatalogController(repo).GetVolumes)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/abc/volumes", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalogController_GetHadithForChapter(t *testing.T) {
	t.Run("joins references", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		volume := seedVolume(t, db, book.ID, 1)
		chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
		h := seedHadith(t, db, chapter.ID, "1", "First hadith")
		require.NoError(t, db.DB.Create(&entities.HadithReference{HadithID: h.ID, Reference: "Al-Kafi 1:1"}).Error)

		router := gin.New()
		router.GET("/api/chapters/:chapterId/hadith", NewCatalogController(repo).GetHadithForChapter)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chapters/1/hadith", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "First hadith")
		assert.Contains(t, w.Body.String(), "Al-Kafi 1:1")
	})

	t.Run("orders by hadith number not insertion", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		volume := seedVolume(t, db, book.ID, 1)
		chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
		for _, number := range []string{"10", "2", "12/3", "12/2"} {
			seedHadith(t, db, chapter.ID, number, "text "+number)
		}

		router := gin.New()
		router.GET("/api/chapters/:chapterId/hadith", NewCatalogController(repo).GetHadithForChapter)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chapters/1/hadith", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Hadith []entities.Hadith `json:"hadith"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Hadith, 4)

		var served []string
		for _, h := range resp.Hadith {
			served = append(served, h.HadithNumber)
		}
		assert.Equal(t, []string{"2", "10", "12/2", "12/3"}, served)
	})
}

func TestCatalogController_GetHadith(t *testing.T) {
	t.Run("returns hadith by id", func(t *testing.T) {
		db, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		book := seedBook(t, db, "Al-Kafi")
		volume := seedVolume(t, db, book.ID, 1)
		chapter := seedChapter(t, db, book.ID, &volume.ID, 1)
		seedHadith(t, db, chapter.ID, "12/3", "Compound numbered hadith")

		router := gin.New()
		router.GET("/api/hadith/:hadithId", NewCatalogController(repo).GetHadith)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/hadith/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "12/3")
	})

	t.Run("unknown hadith is 404", func(t *testing.T) {
		_, repo, cleanup := setupCatalogTestDB(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/hadith/:hadithId", NewCatalogController(repo).GetHadith)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/hadith/999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// failingCatalog errors on every read so tests can observe the
// degrade-to-empty behavior of the passive list endpoints.
type failingCatalog struct{}

var errStoreDown = errors.New("store unavailable")

func (failingCatalog) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return nil, errStoreDown
}
func (failingCatalog) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	return nil, gorm.ErrRecordNotFound
}
func (failingCatalog) VolumesForBook(ctx context.Context, bookID uint) ([]entities.Volume, error) {
	return nil, errStoreDown
}
func (failingCatalog) ChaptersForVolume(ctx context.Context, volumeID uint) ([]entities.Chapter, error) {
	return nil, errStoreDown
}
func (failingCatalog) ChaptersForBook(ctx context.Context, bookID uint) ([]entities.Chapter, error) {
	return nil, errStoreDown
}
func (failingCatalog) HadithsForChapter(ctx context.Context, chapterID uint) ([]entities.Hadith, error) {
	return nil, errStoreDown
}
func (failingCatalog) GetHadith(ctx context.Context, id uint) (*entities.Hadith, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCatalogController_FetchFailureDegradesToEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewCatalogController(failingCatalog{})

	router := gin.New()
	router.GET("/api/books", controller.GetAllBooks)
	router.GET("/api/books/:bookId/chapters", controller.GetChaptersForBook)

	for _, path := range []string{"/api/books", "/api/books/1/chapters"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"count":0`, path)
	}
}
