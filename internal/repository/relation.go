// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"cinelog/internal/models"

	"gorm.io/gorm"
)

// RelationRepository manages membership pairs (likes, watchlist entries).
// Presence of a row is the membership state; there is no status column.
type RelationRepository interface {
	// Toggle flips membership for the pair and reports the resulting state.
	// It never reads before writing: the delete is attempted first, and if
	// nothing was there an insert with a conflict guard takes its place.
	Toggle(ctx context.Context, subjectID uint, objectID string, kind models.RelationKind) (bool, error)
	IsMember(ctx context.Context, subjectID uint, objectID string, kind models.RelationKind) (bool, error)
	Count(ctx context.Context, objectID string, kind models.RelationKind) (int64, error)
	ListObjects(ctx context.Context, subjectID uint, kind models.RelationKind) ([]string, error)
	DeleteForObject(ctx context.Context, tx *gorm.DB, objectID string, kind models.RelationKind) error
	DeleteForSubject(ctx context.Context, tx *gorm.DB, subjectID uint) error
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository returns a new RelationRepository implementation.
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Toggle(ctx context.Context, subjectID uint, objectID string, kind models.RelationKind) (bool, error) {
	// Remove-if-present: a single DELETE whose row count tells us whether
	// the pair existed. Concurrent removers race harmlessly; only one wins.
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM relations WHERE subject_id = ? AND object_id = ? AND kind = ?`,
		subjectID, objectID, kind,
	)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	// Else-add: the conflict guard collapses concurrent adders onto the
	// same row, so replays and races both land on "present".
	res = r.db.WithContext(ctx).Exec(
		`INSERT INTO relations (subject_id, object_id, kind, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (subject_id, object_id, kind) DO NOTHING`,
		subjectID, objectID, kind,
	)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return true, nil
}

func (r *relationRepository) IsMember(ctx context.Context, subjectID uint, objectID string, kind models.RelationKind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("subject_id = ? AND object_id = ? AND kind = ?", subjectID, objectID, kind).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *relationRepository) Count(ctx context.Context, objectID string, kind models.RelationKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("object_id = ? AND kind = ?", objectID, kind).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *relationRepository) ListObjects(ctx context.Context, subjectID uint, kind models.RelationKind) ([]string, error) {
	var objects []string
	if err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("subject_id = ? AND kind = ?", subjectID, kind).
		Order("created_at ASC").
		Pluck("object_id", &objects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return objects, nil
}

func (r *relationRepository) DeleteForObject(ctx context.Context, tx *gorm.DB, objectID string, kind models.RelationKind) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).
		Where("object_id = ? AND kind = ?", objectID, kind).
		Delete(&models.Relation{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationRepository) DeleteForSubject(ctx context.Context, tx *gorm.DB, subjectID uint) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Delete(&models.Relation{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
