package repository

import (
	"context"

	"cinelog/internal/models"

	"gorm.io/gorm"
)

// Stats summarizes platform activity for the admin dashboard.
type Stats struct {
	TotalUsers      int64 `json:"total_users"`
	PendingRequests int64 `json:"pending_requests"`
	TotalAdmins     int64 `json:"total_admins"`
	TotalBlogs      int64 `json:"total_blogs"`
	TotalReviews    int64 `json:"total_reviews"`
	TotalComments   int64 `json:"total_comments"`
	TotalLikes      int64 `json:"total_likes"`
	TotalMovies     int64 `json:"total_movies"`
}

// StatsRepository aggregates counts across the schema.
type StatsRepository interface {
	Collect(ctx context.Context) (*Stats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Collect(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := r.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{})},
		{&stats.PendingRequests, db.Model(&models.User{}).Where("is_approved = ? AND is_admin = ?", false, false)},
		{&stats.TotalAdmins, db.Model(&models.User{}).Where("is_admin = ?", true)},
		{&stats.TotalBlogs, db.Model(&models.Blog{})},
		{&stats.TotalReviews, db.Model(&models.Review{})},
		{&stats.TotalComments, db.Model(&models.Comment{})},
		{&stats.TotalLikes, db.Model(&models.Relation{}).Where("kind IN ?", []models.RelationKind{models.RelationBlogLike, models.RelationReviewLike})},
		{&stats.TotalMovies, db.Model(&models.Movie{})},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &stats, nil
}
