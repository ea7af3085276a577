// Package catalog provides read access to the library tables: books, volumes,
// chapters, hadith and their references. The catalog is read-only at runtime;
// rows come from the import-catalog command.
package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/entities"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns all books ordered by id.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Order("id ASC").Find(&books).Error
	return books, err
}

// GetBook retrieves a single book by ID.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// VolumesForBook returns a book's volumes ordered by volume number.
func (r *Repository) VolumesForBook(ctx context.Context, bookID uint) ([]entities.Volume, error) {
	var volumes []entities.Volume
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("volume_number ASC").
		Find(&volumes).Error
	return volumes, err
}

// GetVolume retrieves a single volume by ID.
func (r *Repository) GetVolume(ctx context.Context, id uint) (*entities.Volume, error) {
	var volume entities.Volume
	err := r.db.WithContext(ctx).First(&volume, id).Error
	if err != nil {
		return nil, err
	}
	return &volume, nil
}

// ChaptersForVolume returns a volume's chapters ordered by chapter number.
func (r *Repository) ChaptersForVolume(ctx context.Context, volumeID uint) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.WithContext(ctx).
		Where("volume_id = ?", volumeID).
		Order("chapter_number ASC").
		Find(&chapters).Error
	return chapters, err
}

// ChaptersWithoutVolume returns the chapters of a book that has no volume
// tier: rows with a null volume_id, ordered by chapter number.
func (r *Repository) ChaptersWithoutVolume(ctx context.Context, bookID uint) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND volume_id IS NULL", bookID).
		Order("chapter_number ASC").
		Find(&chapters).Error
	return chapters, err
}

// ChaptersForBook returns every chapter of a book regardless of tier.
func (r *Repository) ChaptersForBook(ctx context.Context, bookID uint) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("chapter_number ASC").
		Find(&chapters).Error
	return chapters, err
}

// GetChapter retrieves a single chapter by ID.
func (r *Repository) GetChapter(ctx context.Context, id uint) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.WithContext(ctx).First(&chapter, id).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// HadithsForChapter returns a chapter's hadith with references preloaded.
// Rows come back in table order; number ordering is applied by the caller.
func (r *Repository) HadithsForChapter(ctx context.Context, chapterID uint) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.db.WithContext(ctx).
		Preload("Reference").
		Where("chapter_id = ?", chapterID).
		Order("id ASC").
		Find(&hadiths).Error
	return hadiths, err
}

// HadithsForVolume bulk-loads every hadith in a volume in one query, for the
// reader view which flattens chapters before paginating.
func (r *Repository) HadithsForVolume(ctx context.Context, volumeID uint) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.db.WithContext(ctx).
		Preload("Reference").
		Joins("JOIN chapters ON chapters.id = hadith.chapter_id").
		Where("chapters.volume_id = ?", volumeID).
		Order("hadith.id ASC").
		Find(&hadiths).Error
	return hadiths, err
}

// HadithsWithoutVolume bulk-loads the hadith of a book with no volume tier.
func (r *Repository) HadithsWithoutVolume(ctx context.Context, bookID uint) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.db.WithContext(ctx).
		Preload("Reference").
		Joins("JOIN chapters ON chapters.id = hadith.chapter_id").
		Where("chapters.book_id = ? AND chapters.volume_id IS NULL", bookID).
		Order("hadith.id ASC").
		Find(&hadiths).Error
	return hadiths, err
}

// GetHadith retrieves a single hadith with its chapter chain preloaded, enough
// to place it in the hierarchy for deep links.
func (r *Repository) GetHadith(ctx context.Context, id uint) (*entities.Hadith, error) {
	var h entities.Hadith
	err := r.db.WithContext(ctx).
		Preload("Reference").
		Preload("Chapter").
		Preload("Chapter.Volume").
		First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// searchPreload attaches the hierarchy needed to denormalize a search result.
// The book is reached through the chapter, not the volume, so hits in
// volume-less books still carry a title.
func (r *Repository) searchPreload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Chapter").
		Preload("Chapter.Book").
		Preload("Chapter.Volume")
}

// SearchEnglishFTS runs a full-text match against the hadith_fts index.
// Fails with an SQL error when the index was never created.
func (r *Repository) SearchEnglishFTS(ctx context.Context, query string, limit int) ([]entities.Hadith, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Raw(
		`SELECT rowid FROM hadith_fts WHERE hadith_fts MATCH ? ORDER BY rank LIMIT ?`,
		ftsQuote(query), limit,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var hadiths []entities.Hadith
	err = r.searchPreload(ctx).Where("hadith.id IN ?", ids).Find(&hadiths).Error
	if err != nil {
		return nil, err
	}
	return orderByIDs(hadiths, ids), nil
}

// SearchEnglishLike is the case-insensitive substring fallback.
func (r *Repository) SearchEnglishLike(ctx context.Context, query string, limit int) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.searchPreload(ctx).
		Where(`LOWER(english) LIKE LOWER(?) ESCAPE '\'`, likePattern(query)).
		Limit(limit).
		Find(&hadiths).Error
	return hadiths, err
}

// SearchByNumber matches digit-only queries against the hadith number column.
func (r *Repository) SearchByNumber(ctx context.Context, query string, limit int) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.searchPreload(ctx).
		Where(`hadith_number LIKE ? ESCAPE '\'`, likePattern(query)).
		Limit(limit).
		Find(&hadiths).Error
	return hadiths, err
}

// SearchArabicExact matches the query as-is against the vocalized text.
func (r *Repository) SearchArabicExact(ctx context.Context, query string, limit int) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.searchPreload(ctx).
		Where(`arabic LIKE ? ESCAPE '\'`, likePattern(query)).
		Limit(limit).
		Find(&hadiths).Error
	return hadiths, err
}

// SearchArabicPlain matches a normalized query against the backfilled
// arabic_plain column.
func (r *Repository) SearchArabicPlain(ctx context.Context, normalizedQuery string, limit int) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.searchPreload(ctx).
		Where(`arabic_plain LIKE ? ESCAPE '\'`, likePattern(normalizedQuery)).
		Limit(limit).
		Find(&hadiths).Error
	return hadiths, err
}

// HasArabicPlain reports whether the normalized column has been backfilled.
func (r *Repository) HasArabicPlain(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Hadith{}).
		Where("arabic_plain <> ''").
		Count(&count).Error
	return count > 0, err
}

// CandidateHadiths fetches a bounded slice of rows containing Arabic text,
// for the in-process normalized filter when no indexed path matched.
func (r *Repository) CandidateHadiths(ctx context.Context, limit int) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	err := r.searchPreload(ctx).
		Where("arabic <> ''").
		Limit(limit).
		Find(&hadiths).Error
	return hadiths, err
}

// likePattern builds a substring LIKE pattern with the user's wildcards
// escaped, so a query like "100%" matches the literal text.
func likePattern(q string) string {
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, "%", `\%`)
	q = strings.ReplaceAll(q, "_", `\_`)
	return "%" + q + "%"
}

// ftsQuote wraps the query in double quotes so FTS5 treats it as a phrase
// rather than query syntax. Embedded quotes are doubled per SQL rules.
func ftsQuote(q string) string {
	quoted := make([]byte, 0, len(q)+2)
	quoted = append(quoted, '"')
	for i := 0; i < len(q); i++ {
		if q[i] == '"' {
			quoted = append(quoted, '"')
		}
		quoted = append(quoted, q[i])
	}
	return string(append(quoted, '"'))
}

func orderByIDs(hadiths []entities.Hadith, ids []uint) []entities.Hadith {
	byID := make(map[uint]entities.Hadith, len(hadiths))
	for _, h := range hadiths {
		byID[h.ID] = h
	}
	ordered := make([]entities.Hadith, 0, len(hadiths))
	for _, id := range ids {
		if h, ok := byID[id]; ok {
			ordered = append(ordered, h)
		}
	}
	return ordered
}
