// Package cli implements the administrative commands: catalog import and
// account creation. Content rows are only ever written here; the server
// itself reads them.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shialibrary/hadith-server/internal/config"
	"github.com/shialibrary/hadith-server/internal/database"
	"github.com/shialibrary/hadith-server/internal/entities"
	"github.com/shialibrary/hadith-server/internal/hadith"
)

// Catalog is the nested import document: books holding volumes holding
// chapters holding hadith. Flat books list chapters directly.
type Catalog struct {
	Books []BookEntry `json:"books"`
}

type BookEntry struct {
	Title        string         `json:"title"`
	EnglishTitle string         `json:"english_title"`
	Author       string         `json:"author"`
	Category     string         `json:"category"`
	ImageURL     string         `json:"image_url"`
	Volumes      []VolumeEntry  `json:"volumes"`
	Chapters     []ChapterEntry `json:"chapters"`
}

type VolumeEntry struct {
	VolumeNumber int            `json:"volume_number"`
	Chapters     []ChapterEntry `json:"chapters"`
}

type ChapterEntry struct {
	ChapterNumber int           `json:"chapter_number"`
	TitleEn       string        `json:"title_en"`
	TitleAr       string        `json:"title_ar"`
	Hadith        []HadithEntry `json:"hadith"`
}

type HadithEntry struct {
	HadithNumber string `json:"hadith_number"`
	Arabic       string `json:"arabic"`
	English      string `json:"english"`
	Reference    string `json:"reference"`
}

// ImportStats counts what an import wrote.
type ImportStats struct {
	Books    int
	Volumes  int
	Chapters int
	Hadith   int
}

// LoadCatalog parses a catalog JSON document from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(catalog.Books) == 0 {
		return nil, fmt.Errorf("catalog file contains no books")
	}
	return &catalog, nil
}

// ImportCatalog writes a parsed catalog into the database. The normalized
// Arabic column is populated at insert time so search never waits for a
// backfill pass.
func ImportCatalog(db *database.Database, catalog *Catalog) (*ImportStats, error) {
	stats := &ImportStats{}

	for _, bookEntry := range catalog.Books {
		book := entities.Book{
			Title:        bookEntry.Title,
			EnglishTitle: bookEntry.EnglishTitle,
			Author:       bookEntry.Author,
			Category:     bookEntry.Category,
			ImageURL:     bookEntry.ImageURL,
		}
		if err := db.DB.Create(&book).Error; err != nil {
			return stats, fmt.Errorf("save book %q: %w", bookEntry.Title, err)
		}
		stats.Books++

		for _, volumeEntry := range bookEntry.Volumes {
			volume := entities.Volume{BookID: book.ID, VolumeNumber: volumeEntry.VolumeNumber}
			if err := db.DB.Create(&volume).Error; err != nil {
				return stats, fmt.Errorf("save volume %d of %q: %w", volumeEntry.VolumeNumber, bookEntry.Title, err)
			}
			stats.Volumes++

			if err := importChapters(db, stats, book.ID, &volume.ID, volumeEntry.Chapters); err != nil {
				return stats, err
			}
		}

		// Chapters listed directly on the book have no volume tier
		if err := importChapters(db, stats, book.ID, nil, bookEntry.Chapters); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func importChapters(db *database.Database, stats *ImportStats, bookID uint, volumeID *uint, chapters []ChapterEntry) error {
	for _, chapterEntry := range chapters {
		chapter := entities.Chapter{
			BookID:        bookID,
			VolumeID:      volumeID,
			ChapterNumber: chapterEntry.ChapterNumber,
			TitleEn:       chapterEntry.TitleEn,
			TitleAr:       chapterEntry.TitleAr,
		}
		if err := db.DB.Create(&chapter).Error; err != nil {
			return fmt.Errorf("save chapter %d: %w", chapterEntry.ChapterNumber, err)
		}
		stats.Chapters++

		for _, hadithEntry := range chapterEntry.Hadith {
			row := entities.Hadith{
				ChapterID:    chapter.ID,
				HadithNumber: hadithEntry.HadithNumber,
				Arabic:       hadithEntry.Arabic,
				English:      hadithEntry.English,
				ArabicPlain:  hadith.NormalizeArabic(hadithEntry.Arabic),
			}
			if err := db.DB.Create(&row).Error; err != nil {
				return fmt.Errorf("save hadith %q: %w", hadithEntry.HadithNumber, err)
			}
			stats.Hadith++

			if hadithEntry.Reference != "" {
				ref := entities.HadithReference{HadithID: row.ID, Reference: hadithEntry.Reference}
				if err := db.DB.Create(&ref).Error; err != nil {
					return fmt.Errorf("save reference for hadith %q: %w", hadithEntry.HadithNumber, err)
				}
			}
		}
	}
	return nil
}

// ImportCatalogCommand loads a catalog JSON file into the database.
type ImportCatalogCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool
}

// NewImportCatalogCommand creates a new ImportCatalogCommand.
func NewImportCatalogCommand() *ImportCatalogCommand {
	return &ImportCatalogCommand{}
}

// ParseFlags parses command line flags.
func (cmd *ImportCatalogCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-catalog", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the catalog JSON file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and report without writing to the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-catalog -file <catalog.json> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load a nested book/volume/chapter/hadith JSON document into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	return nil
}

// Run executes the import command.
func (cmd *ImportCatalogCommand) Run() error {
	catalog, err := LoadCatalog(cmd.FilePath)
	if err != nil {
		return err
	}

	fmt.Printf("Catalog file: %s (%d books)\n", cmd.FilePath, len(catalog.Books))

	if cmd.DryRun {
		for _, book := range catalog.Books {
			chapters := len(book.Chapters)
			for _, v := range book.Volumes {
				chapters += len(v.Chapters)
			}
			fmt.Printf("  %q by %s: %d volumes, %d chapters\n",
				book.Title, book.Author, len(book.Volumes), chapters)
		}
		fmt.Println("Dry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	stats, err := ImportCatalog(db, catalog)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d books, %d volumes, %d chapters, %d hadith into %s\n",
		stats.Books, stats.Volumes, stats.Chapters, stats.Hadith, absDBPath)
	return nil
}
