package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a rated write-up of a catalog movie. A user may review a
// given movie at most once.
type Review struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MovieID    string `gorm:"not null;index;uniqueIndex:idx_reviews_user_movie" json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	Rating     int    `gorm:"not null" json:"rating"`
	Content    string `gorm:"type:text" json:"content"`
	UserID     uint   `gorm:"not null;index;uniqueIndex:idx_reviews_user_movie" json:"user_id"`
	User       User   `gorm:"foreignKey:UserID" json:"user"`
	Published  bool   `gorm:"default:true" json:"published"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this review (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
