package repository

import (
	"context"
	"errors"
	"strings"

	"cinelog/internal/models"

	"gorm.io/gorm"
)

// MovieRepository defines the interface for admin-managed movie records.
type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	GetByID(ctx context.Context, id uint) (*models.Movie, error)
	List(ctx context.Context, query string, limit, offset int) ([]*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) GetByID(ctx context.Context, id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Movie", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &movie, nil
}

func (r *movieRepository) List(ctx context.Context, query string, limit, offset int) ([]*models.Movie, error) {
	var movies []*models.Movie
	limit = clampLimit(limit, 20, 100)
	db := r.db.WithContext(ctx)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(director) LIKE ?", like, like)
	}
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&movies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Save(movie).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Movie{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Movie", id)
	}
	return nil
}
