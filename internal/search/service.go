// Package search implements the bilingual hadith search: full-text or
// substring matching for English queries, diacritic-insensitive matching for
// Arabic ones.
package search

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/shialibrary/hadith-server/internal/entities"
	"github.com/shialibrary/hadith-server/internal/hadith"
)

// minQueryLength is in runes; a single letter never starts a search.
const minQueryLength = 2

// Store is the catalog access the search paths need.
type Store interface {
	SearchEnglishFTS(ctx context.Context, query string, limit int) ([]entities.Hadith, error)
	SearchEnglishLike(ctx context.Context, query string, limit int) ([]entities.Hadith, error)
	SearchByNumber(ctx context.Context, query string, limit int) ([]entities.Hadith, error)
	SearchArabicExact(ctx context.Context, query string, limit int) ([]entities.Hadith, error)
	SearchArabicPlain(ctx context.Context, normalizedQuery string, limit int) ([]entities.Hadith, error)
	HasArabicPlain(ctx context.Context) (bool, error)
	CandidateHadiths(ctx context.Context, limit int) ([]entities.Hadith, error)
}

// Result is one match, denormalized with the hierarchy fields a client needs
// to navigate straight to the hadith.
type Result struct {
	HadithID       uint   `json:"hadith_id"`
	HadithNumber   string `json:"hadith_number"`
	Arabic         string `json:"arabic"`
	English        string `json:"english"`
	ChapterID      uint   `json:"chapter_id"`
	ChapterTitleEn string `json:"chapter_title_en"`
	ChapterTitleAr string `json:"chapter_title_ar"`
	VolumeID       uint   `json:"volume_id,omitempty"`
	VolumeNumber   int    `json:"volume_number,omitempty"`
	BookID         uint   `json:"book_id"`
	BookTitle      string `json:"book_title"`
}

// Service dispatches a query to the right matching path by script.
type Service struct {
	store          Store
	resultLimit    int
	candidateLimit int
	ftsEnabled     bool
}

// NewService creates a search service. ftsEnabled reflects whether the
// full-text index exists; when false the English path goes straight to the
// LIKE fallback.
func NewService(store Store, resultLimit, candidateLimit int, ftsEnabled bool) *Service {
	return &Service{
		store:          store,
		resultLimit:    resultLimit,
		candidateLimit: candidateLimit,
		ftsEnabled:     ftsEnabled,
	}
}

// Search runs a free-text query. Queries shorter than two runes, or with no
// recognizable script, return an empty result rather than an error.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return nil, nil
	}

	var (
		rows []entities.Hadith
		err  error
	)
	switch hadith.DetectScript(query) {
	case hadith.ScriptArabic:
		rows, err = s.searchArabic(ctx, query)
	case hadith.ScriptLatin:
		if hadith.IsNumeric(query) {
			rows, err = s.store.SearchByNumber(ctx, query, s.resultLimit)
		} else {
			rows, err = s.searchEnglish(ctx, query)
		}
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(rows) > s.resultLimit {
		rows = rows[:s.resultLimit]
	}
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, denormalize(row))
	}
	return results, nil
}

func (s *Service) searchEnglish(ctx context.Context, query string) ([]entities.Hadith, error) {
	if s.ftsEnabled {
		rows, err := s.store.SearchEnglishFTS(ctx, query, s.resultLimit)
		if err == nil {
			return rows, nil
		}
		log.Printf("Full-text search failed, using LIKE fallback: %v", err)
	}
	return s.store.SearchEnglishLike(ctx, query, s.resultLimit)
}

// searchArabic tries the vocalized text as-is first: a query typed with
// diacritics that matches exactly is the cheapest path. On zero rows it
// normalizes the query and retries against the backfilled plain column, or
// falls back to filtering a bounded candidate set in process.
func (s *Service) searchArabic(ctx context.Context, query string) ([]entities.Hadith, error) {
	rows, err := s.store.SearchArabicExact(ctx, query, s.resultLimit)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	normalized := hadith.NormalizeArabic(query)
	if normalized == "" {
		return nil, nil
	}

	hasPlain, err := s.store.HasArabicPlain(ctx)
	if err != nil {
		return nil, err
	}
	if hasPlain {
		return s.store.SearchArabicPlain(ctx, normalized, s.resultLimit)
	}

	candidates, err := s.store.CandidateHadiths(ctx, s.candidateLimit)
	if err != nil {
		return nil, err
	}
	var matched []entities.Hadith
	for _, c := range candidates {
		if hadith.ContainsNormalized(c.Arabic, normalized) {
			matched = append(matched, c)
			if len(matched) == s.resultLimit {
				break
			}
		}
	}
	return matched, nil
}

func denormalize(h entities.Hadith) Result {
	r := Result{
		HadithID:     h.ID,
		HadithNumber: h.HadithNumber,
		Arabic:       h.Arabic,
		English:      h.English,
		ChapterID:    h.ChapterID,
	}
	if chapter := h.Chapter; chapter != nil {
		r.ChapterTitleEn = chapter.TitleEn
		r.ChapterTitleAr = chapter.TitleAr
		r.BookID = chapter.BookID
		if book := chapter.Book; book != nil {
			r.BookTitle = book.Title
		}
		if volume := chapter.Volume; volume != nil {
			r.VolumeID = volume.ID
			r.VolumeNumber = volume.VolumeNumber
		}
	}
	return r
}
