package models

import "time"

// Comment target types.
const (
	CommentTargetBlog   = "blog"
	CommentTargetReview = "review"
)

// Comment is an append-only note on a blog or review. Comments have no
// edit operation; removal is done by the author, an admin, or the
// cascade that deletes the parent.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	TargetType string    `gorm:"not null;index:idx_comments_target" json:"target_type"`
	TargetID   uint      `gorm:"not null;index:idx_comments_target" json:"target_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt  time.Time `json:"created_at"`
}
