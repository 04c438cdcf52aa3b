package models

import (
	"strings"
	"time"
)

// DefaultImageURL is shown for users created without a profile image.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

type User struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:50;not null"`
	LastName  string    `gorm:"size:50;not null"`
	ImageURL  string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationship
	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NormalizeImageURL substitutes DefaultImageURL for a blank image URL.
func NormalizeImageURL(url string) string {
	if strings.TrimSpace(url) == "" {
		return DefaultImageURL
	}
	return url
}
