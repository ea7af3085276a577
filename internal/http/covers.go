package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/covers"
)

// CoversController serves cached book cover images.
type CoversController struct {
	cache *covers.Cache
	books BookGetter
}

// NewCoversController creates a new CoversController.
func NewCoversController(cache *covers.Cache, books BookGetter) *CoversController {
	return &CoversController{cache: cache, books: books}
}

// GetCover serves a book's cover image from the local cache, downloading it
// from the book's image URL on first request. When caching fails the client
// is redirected to the original URL instead of seeing an error.
// GET /api/books/:bookId/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	book, err := cc.books.GetBook(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book for cover")
		return
	}

	if book.ImageURL == "" {
		respondNotFound(c, "cover")
		return
	}

	cachePath, err := cc.cache.GetCover(bookID, book.ImageURL)
	if err != nil || cachePath == "" {
		c.Redirect(http.StatusTemporaryRedirect, book.ImageURL)
		return
	}

	c.File(cachePath)
}
