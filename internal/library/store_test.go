package library

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/shialibrary/hadith-server/internal/entities"
)

// fakeStore is an in-memory Store backed by slices, so resolver and reader
// logic is tested without a database.
type fakeStore struct {
	books    []entities.Book
	volumes  []entities.Volume
	chapters []entities.Chapter
	hadiths  []entities.Hadith
}

func (f *fakeStore) GetBook(_ context.Context, id uint) (*entities.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			book := b
			return &book, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) VolumesForBook(_ context.Context, bookID uint) ([]entities.Volume, error) {
	var out []entities.Volume
	for _, v := range f.volumes {
		if v.BookID == bookID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VolumeNumber < out[j].VolumeNumber })
	return out, nil
}

func (f *fakeStore) GetVolume(_ context.Context, id uint) (*entities.Volume, error) {
	for _, v := range f.volumes {
		if v.ID == id {
			volume := v
			return &volume, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ChaptersForVolume(_ context.Context, volumeID uint) ([]entities.Chapter, error) {
	var out []entities.Chapter
	for _, c := range f.chapters {
		if c.VolumeID != nil && *c.VolumeID == volumeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChapterNumber < out[j].ChapterNumber })
	return out, nil
}

func (f *fakeStore) ChaptersWithoutVolume(_ context.Context, bookID uint) ([]entities.Chapter, error) {
	var out []entities.Chapter
	for _, c := range f.chapters {
		if c.BookID == bookID && c.VolumeID == nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChapterNumber < out[j].ChapterNumber })
	return out, nil
}

func (f *fakeStore) HadithsForChapter(_ context.Context, chapterID uint) ([]entities.Hadith, error) {
	var out []entities.Hadith
	for _, h := range f.hadiths {
		if h.ChapterID == chapterID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) HadithsForVolume(ctx context.Context, volumeID uint) ([]entities.Hadith, error) {
	chapters, _ := f.ChaptersForVolume(ctx, volumeID)
	var out []entities.Hadith
	for _, c := range chapters {
		rows, _ := f.HadithsForChapter(ctx, c.ID)
		out = append(out, rows...)
	}
	return out, nil
}

func (f *fakeStore) HadithsWithoutVolume(ctx context.Context, bookID uint) ([]entities.Hadith, error) {
	chapters, _ := f.ChaptersWithoutVolume(ctx, bookID)
	var out []entities.Hadith
	for _, c := range chapters {
		rows, _ := f.HadithsForChapter(ctx, c.ID)
		out = append(out, rows...)
	}
	return out, nil
}

func (f *fakeStore) GetHadith(_ context.Context, id uint) (*entities.Hadith, error) {
	for _, h := range f.hadiths {
		if h.ID != id {
			continue
		}
		found := h
		for i := range f.chapters {
			if f.chapters[i].ID == h.ChapterID {
				chapter := f.chapters[i]
				if chapter.VolumeID != nil {
					for j := range f.volumes {
						if f.volumes[j].ID == *chapter.VolumeID {
							volume := f.volumes[j]
							chapter.Volume = &volume
						}
					}
				}
				found.Chapter = &chapter
			}
		}
		return &found, nil
	}
	return nil, gorm.ErrRecordNotFound
}
