package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/library"
)

// NavigationController resolves the browsing shape of a book: whether a
// volume selector is shown, which volume is selected and which chapters are
// listed.
type NavigationController struct {
	resolver *library.Resolver
}

// NewNavigationController creates a new NavigationController.
func NewNavigationController(resolver *library.Resolver) *NavigationController {
	return &NavigationController{resolver: resolver}
}

// GetNavigation resolves navigation for a book. Without a volume parameter
// the first real volume (or the sentinel/null-volume chapters) is selected;
// ?volume=<id> re-resolves with that volume selected.
// GET /api/books/:bookId/navigation
func (nc *NavigationController) GetNavigation(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	volumeID, ok, hasVolume := parseQueryID(c, "volume")
	if !ok {
		return
	}

	var (
		nav *library.Navigation
		err error
	)
	if hasVolume {
		nav, err = nc.resolver.SelectVolume(c.Request.Context(), bookID, volumeID)
	} else {
		nav, err = nc.resolver.Resolve(c.Request.Context(), bookID)
	}
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, library.ErrVolumeNotInBook):
			respondBadRequest(c, "volume does not belong to book")
		default:
			// Passive read: the hierarchy degrades to "no chapters found".
			log.Printf("Resolve navigation for book %d failed, returning empty navigation: %v", bookID, err)
			c.JSON(http.StatusOK, library.Navigation{})
		}
		return
	}

	c.JSON(http.StatusOK, nav)
}
