package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/library"
)

// ReaderController serves the paginated continuous reader and the deep-link
// locator.
type ReaderController struct {
	reader *library.Reader
}

// NewReaderController creates a new ReaderController.
func NewReaderController(reader *library.Reader) *ReaderController {
	return &ReaderController{reader: reader}
}

// GetVolumePage returns one page of a volume's hadith grouped by chapter.
// GET /api/volumes/:volumeId/reader?page=N
func (rc *ReaderController) GetVolumePage(c *gin.Context) {
	volumeID, ok := parseIDParam(c, "volumeId")
	if !ok {
		return
	}
	page := parsePageQuery(c)

	result, err := rc.reader.VolumePage(c.Request.Context(), volumeID, page)
	if err != nil {
		log.Printf("Reader page %d for volume %d failed, returning empty page: %v", page, volumeID, err)
		result = &library.ReaderPage{Page: page, PageSize: library.PageSize}
	}
	c.JSON(http.StatusOK, result)
}

// GetBookPage returns one page of a flat book's hadith (books without a
// volume tier).
// GET /api/books/:bookId/reader?page=N
func (rc *ReaderController) GetBookPage(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	page := parsePageQuery(c)

	result, err := rc.reader.BookPage(c.Request.Context(), bookID, page)
	if err != nil {
		log.Printf("Reader page %d for book %d failed, returning empty page: %v", page, bookID, err)
		result = &library.ReaderPage{Page: page, PageSize: library.PageSize}
	}
	c.JSON(http.StatusOK, result)
}

// GetLocation places a hadith inside the hierarchy for ?hadith=<id> deep
// links: the owning book, volume and the reader page it falls on. The client
// switches to that volume and page before scrolling to the hadith.
// GET /api/hadith/:hadithId/location
func (rc *ReaderController) GetLocation(c *gin.Context) {
	hadithID, ok := parseIDParam(c, "hadithId")
	if !ok {
		return
	}

	location, err := rc.reader.Locate(c.Request.Context(), hadithID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, library.ErrOrphanHadith) {
			respondNotFound(c, "hadith")
			return
		}
		respondInternalError(c, err, "locate hadith")
		return
	}
	c.JSON(http.StatusOK, location)
}
