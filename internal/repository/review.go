package repository

import (
	"context"
	"errors"

	"cinelog/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Review, error)
	List(ctx context.Context, movieID string, limit, offset int, currentUserID uint) ([]*models.Review, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	DeleteCascade(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	AverageRating(ctx context.Context, movieID string) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.Published = true
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already reviewed this movie")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) applyReviewDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "reviews.*, " +
		"(SELECT COUNT(*) FROM relations WHERE relations.kind = 'review_like' AND relations.object_id = CAST(reviews.id AS TEXT)) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM relations WHERE relations.kind = 'review_like' AND relations.object_id = CAST(reviews.id AS TEXT) AND relations.subject_id = ?) as liked",
			currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Review, error) {
	var review models.Review
	err := r.applyReviewDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, movieID string, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	limit = clampLimit(limit, 20, 100)
	db := r.applyReviewDetails(r.db.WithContext(ctx), currentUserID).Preload("User")
	if movieID != "" {
		db = db.Where("movie_id = ?", movieID)
	}
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	limit = clampLimit(limit, 20, 100)
	err := r.applyReviewDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.CommentTargetReview, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kind = ? AND object_id = ?", models.RelationReviewLike, uintToString(id)).
			Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		// Hard delete: a soft-deleted row would keep occupying the
		// (user, movie) unique index and block reviewing the movie again.
		return tx.Unscoped().Delete(&models.Review{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, movieID string) (float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("movie_id = ?", movieID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
