package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shialibrary/hadith-server/internal/entities"
	"github.com/shialibrary/hadith-server/internal/hadith"
)

type Database struct {
	DB *gorm.DB

	// FTSAvailable reports whether the hadith_fts virtual table could be
	// created. When false, English search uses the LIKE path only.
	FTSAvailable bool
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Volume{},
		&entities.Chapter{},
		&entities.Hadith{},
		&entities.HadithReference{},
		&entities.User{},
		&entities.SavedHadith{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	// FTS5 is an optional SQLite extension; a database without it still works,
	// search just takes the LIKE fallback.
	if err := database.setupSearchIndex(); err != nil {
		log.Printf("Full-text index unavailable, falling back to LIKE search: %v", err)
	} else {
		database.FTSAvailable = true
	}

	if err := database.backfillArabicPlain(); err != nil {
		return nil, fmt.Errorf("failed to backfill normalized arabic: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) setupSearchIndex() error {
	statements := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS hadith_fts USING fts5(
			english,
			content='hadith',
			content_rowid='id'
		)`,
		`CREATE TRIGGER IF NOT EXISTS hadith_fts_insert AFTER INSERT ON hadith BEGIN
			INSERT INTO hadith_fts(rowid, english) VALUES (new.id, new.english);
		END`,
		`CREATE TRIGGER IF NOT EXISTS hadith_fts_delete AFTER DELETE ON hadith BEGIN
			INSERT INTO hadith_fts(hadith_fts, rowid, english) VALUES ('delete', old.id, old.english);
		END`,
		`CREATE TRIGGER IF NOT EXISTS hadith_fts_update AFTER UPDATE ON hadith BEGIN
			INSERT INTO hadith_fts(hadith_fts, rowid, english) VALUES ('delete', old.id, old.english);
			INSERT INTO hadith_fts(rowid, english) VALUES (new.id, new.english);
		END`,
		// Catch up on rows inserted while the index was missing.
		`INSERT INTO hadith_fts(rowid, english)
			SELECT h.id, h.english FROM hadith h
			WHERE h.id NOT IN (SELECT rowid FROM hadith_fts)`,
	}
	for _, stmt := range statements {
		if err := d.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// backfillArabicPlain fills the arabic_plain column for rows imported before
// normalization existed. Runs in batches so startup stays bounded on large
// catalogs.
func (d *Database) backfillArabicPlain() error {
	const batchSize = 500

	for {
		var rows []entities.Hadith
		err := d.DB.Select("id", "arabic").
			Where("arabic_plain = '' AND arabic <> ''").
			Limit(batchSize).
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		for _, row := range rows {
			plain := hadith.NormalizeArabic(row.Arabic)
			if plain == "" {
				// Keep a marker so the row is not re-selected forever.
				plain = " "
			}
			err := d.DB.Model(&entities.Hadith{}).
				Where("id = ?", row.ID).
				Update("arabic_plain", plain).Error
			if err != nil {
				return err
			}
		}

		if len(rows) < batchSize {
			return nil
		}
	}
}
