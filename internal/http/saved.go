package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shialibrary/hadith-server/internal/database/saved"
	"github.com/shialibrary/hadith-server/internal/entities"
)

// SavedController handles per-user bookmarks. Save, remove and list run
// behind RequireAuth; IsSaved stays public and reports false for anonymous
// requests.
type SavedController struct {
	store SavedStore
}

// NewSavedController creates a new SavedController.
func NewSavedController(store SavedStore) *SavedController {
	return &SavedController{store: store}
}

// Save bookmarks a hadith for the signed-in user. Saving the same hadith
// twice is a distinct condition, not a generic failure.
// POST /api/hadith/:hadithId/save
func (sc *SavedController) Save(c *gin.Context) {
	hadithID, ok := parseIDParam(c, "hadithId")
	if !ok {
		return
	}

	err := sc.store.Save(c.Request.Context(), GetUserID(c), hadithID)
	if err != nil {
		if errors.Is(err, saved.ErrAlreadySaved) {
			respondError(c, http.StatusConflict, "already saved")
			return
		}
		respondInternalError(c, err, "save hadith")
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "hadith saved"})
}

// Remove deletes a bookmark. Removing a hadith that was never saved succeeds.
// DELETE /api/hadith/:hadithId/save
func (sc *SavedController) Remove(c *gin.Context) {
	hadithID, ok := parseIDParam(c, "hadithId")
	if !ok {
		return
	}

	if err := sc.store.Remove(c.Request.Context(), GetUserID(c), hadithID); err != nil {
		respondInternalError(c, err, "remove saved hadith")
		return
	}

	respondSuccess(c, "hadith removed")
}

// IsSaved reports whether the current user has saved the hadith. Anonymous
// requests get false, not an error.
// GET /api/hadith/:hadithId/saved
func (sc *SavedController) IsSaved(c *gin.Context) {
	hadithID, ok := parseIDParam(c, "hadithId")
	if !ok {
		return
	}

	userID := GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusOK, gin.H{"saved": false})
		return
	}

	isSaved, err := sc.store.IsSaved(c.Request.Context(), userID, hadithID)
	if err != nil {
		respondInternalError(c, err, "check saved hadith")
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": isSaved})
}

// List returns the user's saved hadith newest first, with the hierarchy
// joined in for direct navigation.
// GET /api/saved
func (sc *SavedController) List(c *gin.Context) {
	rows, err := sc.store.List(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list saved hadith")
		return
	}
	if rows == nil {
		rows = []entities.SavedHadith{}
	}

	c.JSON(http.StatusOK, gin.H{"saved": rows, "count": len(rows)})
}

// GetCount returns how many hadith the user has saved.
// GET /api/saved/count
func (sc *SavedController) GetCount(c *gin.Context) {
	count, err := sc.store.Count(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "count saved hadith")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
