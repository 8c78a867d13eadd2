package models

import (
	"time"

	"gorm.io/gorm"
)

// Movie is an admin-managed catalog record, distinct from the external
// catalog proxied under /api/catalog.
type Movie struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null;index" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Year          int            `json:"year"`
	Genre         StringList     `gorm:"type:text" json:"genre"`
	Director      string         `json:"director"`
	Cast          StringList     `gorm:"type:text;column:cast_members" json:"cast"`
	PosterURL     string         `json:"poster_url"`
	TrailerURL    string         `json:"trailer_url"`
	AverageRating float64        `json:"average_rating"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
