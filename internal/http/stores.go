package http

import (
	"context"

	"github.com/shialibrary/hadith-server/internal/entities"
	"github.com/shialibrary/hadith-server/internal/search"
)

// This file consolidates the store interfaces used by HTTP controllers. Each
// controller depends only on the methods it actually calls; the concrete
// catalog/saved repositories satisfy all of them.

// BookGetter provides read access to a single book.
type BookGetter interface {
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
}

// CatalogStore is the read surface behind the unauthenticated passthrough
// endpoints.
type CatalogStore interface {
	BookGetter
	ListBooks(ctx context.Context) ([]entities.Book, error)
	VolumesForBook(ctx context.Context, bookID uint) ([]entities.Volume, error)
	ChaptersForVolume(ctx context.Context, volumeID uint) ([]entities.Chapter, error)
	ChaptersForBook(ctx context.Context, bookID uint) ([]entities.Chapter, error)
	HadithsForChapter(ctx context.Context, chapterID uint) ([]entities.Hadith, error)
	GetHadith(ctx context.Context, id uint) (*entities.Hadith, error)
}

// SavedStore defines the per-user bookmark operations.
type SavedStore interface {
	Save(ctx context.Context, userID, hadithID uint) error
	Remove(ctx context.Context, userID, hadithID uint) error
	IsSaved(ctx context.Context, userID, hadithID uint) (bool, error)
	List(ctx context.Context, userID uint) ([]entities.SavedHadith, error)
	Count(ctx context.Context, userID uint) (int64, error)
}

// Searcher runs a free-text query across the catalog.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}
