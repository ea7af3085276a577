package entities

// Catalog entities mirror the hosted library tables. The application only
// reads them; rows are created out-of-band via the import-catalog command.

type Book struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"index;size:512" json:"title"`
	EnglishTitle string   `gorm:"size:512" json:"english_title"`
	Author       string   `gorm:"size:256" json:"author"`
	Category     string   `gorm:"index;size:128" json:"category,omitempty"`
	ImageURL     string   `gorm:"size:2048" json:"image_url,omitempty"`
	Volumes      []Volume `gorm:"foreignKey:BookID" json:"volumes,omitempty"`
}

// Volume subdivides a book. VolumeNumber 0 is a sentinel meaning the book has
// a single implicit volume and no selector should be shown.
type Volume struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookID       uint      `gorm:"index" json:"book_id"`
	VolumeNumber int       `json:"volume_number"`
	Book         Book      `gorm:"foreignKey:BookID" json:"-"`
	Chapters     []Chapter `gorm:"foreignKey:VolumeID" json:"chapters,omitempty"`
}

// Chapter belongs to a volume, or directly to a book when VolumeID is nil
// (books without a volume tier). BookID is set either way so a book's full
// chapter list is a single query.
type Chapter struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	BookID        uint     `gorm:"index" json:"book_id"`
	VolumeID      *uint    `gorm:"index" json:"volume_id"`
	ChapterNumber int      `gorm:"index" json:"chapter_number"`
	TitleEn       string   `gorm:"size:512" json:"title_en"`
	TitleAr       string   `gorm:"size:512" json:"title_ar"`
	Book          *Book    `gorm:"foreignKey:BookID" json:"-"`
	Volume        *Volume  `gorm:"foreignKey:VolumeID" json:"-"`
	Hadiths       []Hadith `gorm:"foreignKey:ChapterID" json:"hadiths,omitempty"`
}

// Hadith is a single narrated record. HadithNumber is a display string and may
// be compound ("12/3"); ordering is handled by the hadith package, never by
// lexical sort on this column. ArabicPlain holds the diacritic-stripped form
// of Arabic for normalized search; empty when not yet backfilled.
type Hadith struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	ChapterID    uint             `gorm:"index" json:"chapter_id"`
	HadithNumber string           `gorm:"size:32" json:"hadith_number"`
	Arabic       string           `gorm:"type:text" json:"arabic"`
	English      string           `gorm:"type:text" json:"english"`
	ArabicPlain  string           `gorm:"type:text" json:"-"`
	Chapter      *Chapter         `gorm:"foreignKey:ChapterID" json:"-"`
	Reference    *HadithReference `gorm:"foreignKey:HadithID" json:"reference,omitempty"`
}

type HadithReference struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	HadithID  uint   `gorm:"uniqueIndex" json:"hadith_id"`
	Reference string `gorm:"size:512" json:"reference"`
}

func (Book) TableName() string {
	return "books"
}

func (Volume) TableName() string {
	return "volumes"
}

func (Chapter) TableName() string {
	return "chapters"
}

func (Hadith) TableName() string {
	return "hadith"
}

func (HadithReference) TableName() string {
	return "hadith_reference"
}
