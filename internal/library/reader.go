package library

import (
	"context"
	"sort"

	"github.com/shialibrary/hadith-server/internal/entities"
	"github.com/shialibrary/hadith-server/internal/hadith"
)

// ChapterGroup is one chapter's slice of a reader page. Only chapters with at
// least one hadith on the page appear.
type ChapterGroup struct {
	Chapter entities.Chapter  `json:"chapter"`
	Hadiths []entities.Hadith `json:"hadiths"`
}

// ReaderPage is one window of the continuous reader: the volume's (or flat
// book's) hadith flattened across chapters in global order, sliced to the
// page, then regrouped under their owning chapters.
type ReaderPage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	PageSize     int            `json:"page_size"`
	TotalHadiths int            `json:"total_hadiths"`
	Groups       []ChapterGroup `json:"groups"`
}

// Location places a hadith inside the hierarchy for deep links: the owning
// book, volume (nil for flat books), chapter, and the reader page it falls on.
type Location struct {
	BookID       uint  `json:"book_id"`
	VolumeID     *uint `json:"volume_id,omitempty"`
	VolumeNumber *int  `json:"volume_number,omitempty"`
	ChapterID    uint  `json:"chapter_id"`
	Page         int   `json:"page"`
}

// Reader builds paginated continuous-reading views.
type Reader struct {
	store Store
}

// NewReader creates a new reader.
func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

// VolumePage returns one page of a volume's hadith. The whole volume is
// fetched once; paging is a pure slice over the flattened order.
func (r *Reader) VolumePage(ctx context.Context, volumeID uint, page int) (*ReaderPage, error) {
	chapters, err := r.store.ChaptersForVolume(ctx, volumeID)
	if err != nil {
		return nil, err
	}
	hadiths, err := r.store.HadithsForVolume(ctx, volumeID)
	if err != nil {
		return nil, err
	}
	return buildPage(chapters, hadiths, page), nil
}

// BookPage returns one page of a flat book's hadith (books without a volume
// tier).
func (r *Reader) BookPage(ctx context.Context, bookID uint, page int) (*ReaderPage, error) {
	chapters, err := r.store.ChaptersWithoutVolume(ctx, bookID)
	if err != nil {
		return nil, err
	}
	hadiths, err := r.store.HadithsWithoutVolume(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return buildPage(chapters, hadiths, page), nil
}

// Locate finds where a hadith lives so a deep link can open the right volume
// and page before scrolling to it.
func (r *Reader) Locate(ctx context.Context, hadithID uint) (*Location, error) {
	h, err := r.store.GetHadith(ctx, hadithID)
	if err != nil {
		return nil, err
	}
	chapter := h.Chapter
	if chapter == nil {
		return nil, ErrOrphanHadith
	}

	loc := &Location{ChapterID: chapter.ID, BookID: chapter.BookID}

	var chapters []entities.Chapter
	var hadiths []entities.Hadith
	if chapter.VolumeID != nil {
		loc.VolumeID = chapter.VolumeID
		if volume := chapter.Volume; volume != nil {
			loc.VolumeNumber = &volume.VolumeNumber
			loc.BookID = volume.BookID
		}

		chapters, err = r.store.ChaptersForVolume(ctx, *chapter.VolumeID)
		if err != nil {
			return nil, err
		}
		hadiths, err = r.store.HadithsForVolume(ctx, *chapter.VolumeID)
		if err != nil {
			return nil, err
		}
	} else {
		chapters, err = r.store.ChaptersWithoutVolume(ctx, chapter.BookID)
		if err != nil {
			return nil, err
		}
		hadiths, err = r.store.HadithsWithoutVolume(ctx, chapter.BookID)
		if err != nil {
			return nil, err
		}
	}

	flat := flatten(chapters, hadiths)
	for i, row := range flat {
		if row.ID == hadithID {
			loc.Page = i/PageSize + 1
			return loc, nil
		}
	}

	// The hadith exists but was not reachable through its chapter chain;
	// fall back to the first page rather than failing the deep link.
	loc.Page = 1
	return loc, nil
}

// flatten orders hadith globally: chapters by chapter_number, then each
// chapter's hadith by parsed number. The same order feeds paging and deep-link
// location, so the two can never disagree on which page a hadith is on.
func flatten(chapters []entities.Chapter, hadiths []entities.Hadith) []entities.Hadith {
	byChapter := make(map[uint][]entities.Hadith, len(chapters))
	for _, h := range hadiths {
		byChapter[h.ChapterID] = append(byChapter[h.ChapterID], h)
	}

	ordered := make([]entities.Chapter, len(chapters))
	copy(ordered, chapters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ChapterNumber < ordered[j].ChapterNumber
	})

	flat := make([]entities.Hadith, 0, len(hadiths))
	for _, c := range ordered {
		group := byChapter[c.ID]
		hadith.SortByNumber(group)
		flat = append(flat, group...)
	}
	return flat
}

func buildPage(chapters []entities.Chapter, hadiths []entities.Hadith, page int) *ReaderPage {
	flat := flatten(chapters, hadiths)
	window := pageSlice(flat, page, PageSize)

	chapterByID := make(map[uint]entities.Chapter, len(chapters))
	for _, c := range chapters {
		chapterByID[c.ID] = c
	}

	// Regroup the page window under its chapters, keeping flattened order.
	var groups []ChapterGroup
	for _, h := range window {
		if len(groups) > 0 && groups[len(groups)-1].Chapter.ID == h.ChapterID {
			last := &groups[len(groups)-1]
			last.Hadiths = append(last.Hadiths, h)
			continue
		}
		groups = append(groups, ChapterGroup{
			Chapter: chapterByID[h.ChapterID],
			Hadiths: []entities.Hadith{h},
		})
	}

	return &ReaderPage{
		Page:         page,
		TotalPages:   TotalPages(len(flat), PageSize),
		PageSize:     PageSize,
		TotalHadiths: len(flat),
		Groups:       groups,
	}
}
