package repository

import (
	"context"
	"errors"
	"strings"

	"cinelog/internal/cache"
	"cinelog/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and the
// account approval lifecycle.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, query string, limit, offset int) ([]models.User, error)
	ListPending(ctx context.Context) ([]models.User, error)

	// Approve marks the account approved. Approving an already-approved
	// account is a no-op success; a missing account is NotFound.
	Approve(ctx context.Context, id uint) (*models.User, error)

	// RejectPending hard-deletes a pending, non-admin account. Returns
	// NotFound when the account is absent or no longer pending, so
	// replayed rejections and approve-then-reject sequences degrade to 404.
	RejectPending(ctx context.Context, id uint) error

	// ToggleAdmin flips the admin bit in a single statement. The protected
	// email can never have its bit flipped off.
	ToggleAdmin(ctx context.Context, id uint, protectedEmail string) (*models.User, error)

	// DeleteCascade removes the account and everything it authored in one
	// transaction. The protected email can never be deleted.
	DeleteCascade(ctx context.Context, id uint, protectedEmail string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	// Emails are stored lowercased; normalize here too so callers cannot
	// accidentally reintroduce case-sensitive lookups.
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("An account with that email or username already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	var users []models.User
	db := r.db.WithContext(ctx)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		db = db.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) ListPending(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("is_approved = ? AND is_admin = ?", false, false).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Approve(ctx context.Context, id uint) (*models.User, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Zero rows means the account does not exist: an already-approved
		// row still matches the WHERE clause, so idempotent replays touch
		// it again and report success.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		if count == 0 {
			return nil, models.NewNotFoundError("Access request", id)
		}
	}
	cache.InvalidateUser(ctx, id)

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Access request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) RejectPending(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND is_approved = ? AND is_admin = ?", id, false, false).
		Delete(&models.User{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Access request", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) ToggleAdmin(ctx context.Context, id uint, protectedEmail string) (*models.User, error) {
	protectedEmail = strings.ToLower(strings.TrimSpace(protectedEmail))

	// One statement, no read-then-write: the WHERE clause refuses the flip
	// that would strip the protected account's admin bit. NOT works on
	// boolean columns in both Postgres and SQLite.
	res := r.db.WithContext(ctx).Exec(
		`UPDATE users
		 SET is_admin = NOT is_admin, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND NOT (email = ? AND is_admin)`,
		id, protectedEmail,
	)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}

	if res.RowsAffected == 0 {
		// The row exists but was refused: it must be the protected admin.
		return nil, models.NewForbiddenError("The protected admin account cannot lose admin access")
	}

	cache.InvalidateUser(ctx, id)
	return &user, nil
}

func (r *userRepository) DeleteCascade(ctx context.Context, id uint, protectedEmail string) error {
	protectedEmail = strings.ToLower(strings.TrimSpace(protectedEmail))

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", id)
		}
		return models.NewInternalError(err)
	}
	if user.Email == protectedEmail {
		return models.NewForbiddenError("The protected admin account cannot be deleted")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blogIDs []uint
		if err := tx.Model(&models.Blog{}).Where("user_id = ?", id).Pluck("id", &blogIDs).Error; err != nil {
			return err
		}
		var reviewIDs []uint
		if err := tx.Model(&models.Review{}).Where("user_id = ?", id).Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}

		if len(blogIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", models.CommentTargetBlog, blogIDs).
				Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("kind = ? AND object_id IN (?)", models.RelationBlogLike, idsToStrings(blogIDs)).
				Delete(&models.Relation{}).Error; err != nil {
				return err
			}
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("kind = ? AND object_id IN (?)", models.RelationReviewLike, idsToStrings(reviewIDs)).
				Delete(&models.Relation{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Blog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

