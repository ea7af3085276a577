package entities

import "time"

// User is an account row in the profiles table. A profile is created on
// registration, or lazily on first sign-in for accounts that predate the
// profiles table.
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash     string     `gorm:"size:255" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// SavedHadith is a user's bookmark of a hadith. The composite unique index
// makes duplicate saves a constraint violation, which the saved repository
// reports as "already saved".
type SavedHadith struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_saved_user_hadith;index" json:"user_id"`
	HadithID  uint      `gorm:"uniqueIndex:idx_saved_user_hadith" json:"hadith_id"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Hadith    Hadith    `gorm:"foreignKey:HadithID" json:"hadith,omitempty"`
}

func (User) TableName() string {
	return "profiles"
}

func (SavedHadith) TableName() string {
	return "saved_hadiths"
}
