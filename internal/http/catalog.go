package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/entities"
	"github.com/shialibrary/hadith-server/internal/hadith"
)

// CatalogController serves the unauthenticated passthrough endpoints: direct
// reads of books, volumes, chapters and hadith. A failed fetch on these
// passive paths logs and degrades to an empty list rather than surfacing an
// error to the client.
type CatalogController struct {
	store CatalogStore
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(store CatalogStore) *CatalogController {
	return &CatalogController{store: store}
}

// GetAllBooks returns every book in the catalog.
// GET /api/books
func (cc *CatalogController) GetAllBooks(c *gin.Context) {
	books, err := cc.store.ListBooks(c.Request.Context())
	if err != nil {
		log.Printf("List books failed, returning empty list: %v", err)
		books = nil
	}
	c.JSON(http.StatusOK, gin.H{"books": emptyIfNil(books), "count": len(books)})
}

// GetVolumes returns a book's volumes ordered by volume number.
// GET /api/books/:bookId/volumes
func (cc *CatalogController) GetVolumes(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	volumes, err := cc.store.VolumesForBook(c.Request.Context(), bookID)
	if err != nil {
		log.Printf("List volumes for book %d failed, returning empty list: %v", bookID, err)
		volumes = nil
	}
	c.JSON(http.StatusOK, gin.H{"volumes": emptyIfNil(volumes), "count": len(volumes)})
}

// GetChaptersForVolume returns a volume's chapters ordered by chapter number.
// GET /api/volumes/:volumeId/chapters
func (cc *CatalogController) GetChaptersForVolume(c *gin.Context) {
	volumeID, ok := parseIDParam(c, "volumeId")
	if !ok {
		return
	}

	chapters, err := cc.store.ChaptersForVolume(c.Request.Context(), volumeID)
	if err != nil {
		log.Printf("List chapters for volume %d failed, returning empty list: %v", volumeID, err)
		chapters = nil
	}
	c.JSON(http.StatusOK, gin.H{"chapters": emptyIfNil(chapters), "count": len(chapters)})
}

// GetChaptersForBook returns all of a book's chapters across volumes.
// GET /api/books/:bookId/chapters
func (cc *CatalogController) GetChaptersForBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	chapters, err := cc.store.ChaptersForBook(c.Request.Context(), bookID)
	if err != nil {
		log.Printf("List chapters for book %d failed, returning empty list: %v", bookID, err)
		chapters = nil
	}
	c.JSON(http.StatusOK, gin.H{"chapters": emptyIfNil(chapters), "count": len(chapters)})
}

// GetHadithForChapter returns a chapter's hadith with references joined,
// ordered by hadith number (main part, then sub part).
// GET /api/chapters/:chapterId/hadith
func (cc *CatalogController) GetHadithForChapter(c *gin.Context) {
	chapterID, ok := parseIDParam(c, "chapterId")
	if !ok {
		return
	}

	hadiths, err := cc.store.HadithsForChapter(c.Request.Context(), chapterID)
	if err != nil {
		log.Printf("List hadith for chapter %d failed, returning empty list: %v", chapterID, err)
		hadiths = nil
	}
	hadith.SortByNumber(hadiths)
	c.JSON(http.StatusOK, gin.H{"hadith": emptyIfNil(hadiths), "count": len(hadiths)})
}

// GetHadith returns a single hadith with its reference. Unlike the list
// endpoints a missing record is a 404: this backs deep links where a dead id
// must be distinguishable from an empty chapter.
// GET /api/hadith/:hadithId
func (cc *CatalogController) GetHadith(c *gin.Context) {
	hadithID, ok := parseIDParam(c, "hadithId")
	if !ok {
		return
	}

	h, err := cc.store.GetHadith(c.Request.Context(), hadithID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "hadith")
			return
		}
		respondInternalError(c, err, "get hadith")
		return
	}
	c.JSON(http.StatusOK, h)
}

// emptyIfNil keeps list responses as [] instead of null in JSON.
func emptyIfNil[T entities.Book | entities.Volume | entities.Chapter | entities.Hadith](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
