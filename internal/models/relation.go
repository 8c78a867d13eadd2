package models

import "time"

// RelationKind identifies which membership set a relation row belongs to.
type RelationKind string

const (
	RelationBlogLike   RelationKind = "blog_like"
	RelationReviewLike RelationKind = "review_like"
	RelationWatchlist  RelationKind = "watchlist"
)

// Relation is one membership pair: the row's presence IS the state.
// ObjectID is a string because watchlist entries reference external
// catalog IDs while likes reference numeric content IDs.
type Relation struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	SubjectID uint         `gorm:"not null;uniqueIndex:idx_relations_pair" json:"subject_id"`
	ObjectID  string       `gorm:"not null;uniqueIndex:idx_relations_pair" json:"object_id"`
	Kind      RelationKind `gorm:"not null;uniqueIndex:idx_relations_pair" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}
