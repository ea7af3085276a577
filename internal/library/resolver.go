// Package library assembles the book/volume/chapter/hadith hierarchy into
// navigable views: the volume resolver, the paginated continuous reader, and
// deep-link location.
package library

import (
	"context"
	"errors"

	"github.com/shialibrary/hadith-server/internal/entities"
)

var (
	// ErrVolumeNotInBook is returned when a volume selection names a volume
	// that belongs to a different book.
	ErrVolumeNotInBook = errors.New("volume does not belong to book")

	// ErrOrphanHadith is returned when a hadith row has no resolvable chapter.
	ErrOrphanHadith = errors.New("hadith has no chapter")
)

// Store is the catalog access the library views need.
type Store interface {
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	VolumesForBook(ctx context.Context, bookID uint) ([]entities.Volume, error)
	GetVolume(ctx context.Context, id uint) (*entities.Volume, error)
	ChaptersForVolume(ctx context.Context, volumeID uint) ([]entities.Chapter, error)
	ChaptersWithoutVolume(ctx context.Context, bookID uint) ([]entities.Chapter, error)
	HadithsForChapter(ctx context.Context, chapterID uint) ([]entities.Hadith, error)
	HadithsForVolume(ctx context.Context, volumeID uint) ([]entities.Hadith, error)
	HadithsWithoutVolume(ctx context.Context, bookID uint) ([]entities.Hadith, error)
	GetHadith(ctx context.Context, id uint) (*entities.Hadith, error)
}

// Navigation is the resolved browsing state for a book.
//
// Three shapes exist:
//   - no volume rows at all: Volumes empty, VolumeNumber nil, Chapters are the
//     book's null-volume chapters;
//   - only a sentinel volume_number=0 row: Volumes empty (no selector),
//     VolumeNumber points at 0, Chapters come from the sentinel volume;
//   - real volumes: Volumes holds those with volume_number > 0, one of them is
//     selected, VolumeNumber points at its number.
type Navigation struct {
	Book             entities.Book      `json:"book"`
	Volumes          []entities.Volume  `json:"volumes"`
	SelectedVolumeID uint               `json:"selected_volume_id,omitempty"`
	VolumeNumber     *int               `json:"volume_number,omitempty"`
	Chapters         []entities.Chapter `json:"chapters"`
}

// Resolver determines how a book is subdivided and which chapters to show.
type Resolver struct {
	store Store
}

// NewResolver creates a new hierarchy resolver.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve builds the default navigation state for a book: the first real
// volume when one exists, the sentinel or null-volume chapters otherwise.
func (r *Resolver) Resolve(ctx context.Context, bookID uint) (*Navigation, error) {
	book, err := r.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	volumes, err := r.store.VolumesForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if len(volumes) == 0 {
		chapters, err := r.store.ChaptersWithoutVolume(ctx, bookID)
		if err != nil {
			return nil, err
		}
		return &Navigation{Book: *book, Chapters: chapters}, nil
	}

	valid := validVolumes(volumes)
	if len(valid) == 0 {
		// Only the volume_number=0 sentinel exists: chapters come from that
		// volume but no selector is exposed and the number reads as 0.
		sentinel := volumes[0]
		chapters, err := r.store.ChaptersForVolume(ctx, sentinel.ID)
		if err != nil {
			return nil, err
		}
		zero := 0
		return &Navigation{
			Book:             *book,
			SelectedVolumeID: sentinel.ID,
			VolumeNumber:     &zero,
			Chapters:         chapters,
		}, nil
	}

	selected := valid[0]
	chapters, err := r.store.ChaptersForVolume(ctx, selected.ID)
	if err != nil {
		return nil, err
	}
	number := selected.VolumeNumber
	return &Navigation{
		Book:             *book,
		Volumes:          valid,
		SelectedVolumeID: selected.ID,
		VolumeNumber:     &number,
		Chapters:         chapters,
	}, nil
}

// SelectVolume rebuilds navigation with a specific volume selected. The
// volume must belong to the book.
func (r *Resolver) SelectVolume(ctx context.Context, bookID, volumeID uint) (*Navigation, error) {
	book, err := r.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	volume, err := r.store.GetVolume(ctx, volumeID)
	if err != nil {
		return nil, err
	}
	if volume.BookID != bookID {
		return nil, ErrVolumeNotInBook
	}

	volumes, err := r.store.VolumesForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	chapters, err := r.store.ChaptersForVolume(ctx, volume.ID)
	if err != nil {
		return nil, err
	}

	number := volume.VolumeNumber
	return &Navigation{
		Book:             *book,
		Volumes:          validVolumes(volumes),
		SelectedVolumeID: volume.ID,
		VolumeNumber:     &number,
		Chapters:         chapters,
	}, nil
}

func validVolumes(volumes []entities.Volume) []entities.Volume {
	var valid []entities.Volume
	for _, v := range volumes {
		if v.VolumeNumber > 0 {
			valid = append(valid, v)
		}
	}
	return valid
}
