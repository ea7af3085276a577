package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shialibrary/hadith-server/internal/search"
)

// SearchController serves free-text search over the catalog.
type SearchController struct {
	searcher Searcher
}

// NewSearchController creates a new SearchController.
func NewSearchController(searcher Searcher) *SearchController {
	return &SearchController{searcher: searcher}
}

// Search runs a bilingual query. Too-short or unrecognized queries come back
// empty, and so does a failed search: listing matches is a passive read.
// GET /api/search?q=<query>
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("q")

	results, err := sc.searcher.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("Search %q failed, returning empty results: %v", query, err)
		results = nil
	}
	if results == nil {
		results = []search.Result{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
