// Package saved provides database operations for a user's saved hadith.
package saved

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/entities"
)

// ErrAlreadySaved is returned when a user saves a hadith a second time.
var ErrAlreadySaved = errors.New("hadith already saved")

// Repository handles all saved-hadith database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new saved repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save records a hadith for a user. A duplicate save trips the composite
// unique index and is reported as ErrAlreadySaved.
func (r *Repository) Save(ctx context.Context, userID, hadithID uint) error {
	row := entities.SavedHadith{UserID: userID, HadithID: hadithID}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil && isUniqueViolation(err) {
		return ErrAlreadySaved
	}
	return err
}

// Remove deletes a saved row. Removing a hadith that was never saved is not
// an error.
func (r *Repository) Remove(ctx context.Context, userID, hadithID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND hadith_id = ?", userID, hadithID).
		Delete(&entities.SavedHadith{}).Error
}

// IsSaved reports whether the user has saved the hadith.
func (r *Repository) IsSaved(ctx context.Context, userID, hadithID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.SavedHadith{}).
		Where("user_id = ? AND hadith_id = ?", userID, hadithID).
		Count(&count).Error
	return count > 0, err
}

// List returns the user's saved rows newest first, with the full hierarchy
// joined in so each row can link straight back to its place in a book.
func (r *Repository) List(ctx context.Context, userID uint) ([]entities.SavedHadith, error) {
	var rows []entities.SavedHadith
	err := r.db.WithContext(ctx).
		Preload("Hadith").
		Preload("Hadith.Reference").
		Preload("Hadith.Chapter").
		Preload("Hadith.Chapter.Volume").
		Preload("Hadith.Chapter.Volume.Book").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// Count returns how many hadith the user has saved.
func (r *Repository) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.SavedHadith{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// isUniqueViolation matches SQLite's constraint error text. The sqlite3
// driver error type is not imported here; string matching keeps the
// repository driver-agnostic for tests.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
