package repository

import (
	"context"
	"errors"
	"strings"

	"cinelog/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	// DeleteCascade removes the blog with its comments and likes in one
	// transaction.
	DeleteCascade(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	// Publication is not a workflow: content goes live when it is created.
	blog.Published = true
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyBlogDetails adds subqueries to fetch counts and liked status in a single query.
func (r *blogRepository) applyBlogDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "blogs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.target_type = 'blog' AND comments.target_id = blogs.id) as comments_count, " +
		"(SELECT COUNT(*) FROM relations WHERE relations.kind = 'blog_like' AND relations.object_id = CAST(blogs.id AS TEXT)) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM relations WHERE relations.kind = 'blog_like' AND relations.object_id = CAST(blogs.id AS TEXT) AND relations.subject_id = ?) as liked",
			currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *blogRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	limit = clampLimit(limit, 20, 100)
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	limit = clampLimit(limit, 20, 100)
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Blog, error) {
	var blogs []*models.Blog
	limit = clampLimit(limit, 20, 100)
	like := "%" + strings.ToLower(query) + "%"
	err := r.applyBlogDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.CommentTargetBlog, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kind = ? AND object_id = ?", models.RelationBlogLike, uintToString(id)).
			Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		// Moderation removes content outright, not behind a soft-delete
		// scope.
		return tx.Unscoped().Delete(&models.Blog{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
