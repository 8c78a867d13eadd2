package service

import (
	"context"
	"os"
	"testing"

	"cinelog/internal/database"
	"cinelog/internal/models"
	"cinelog/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	if user.Password == "" {
		user.Password = "hashed"
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// newContentService wires a content service against a real database with
// the admin check reading the users table, the way the server does.
func newContentService(db *gorm.DB) *ContentService {
	users := repository.NewUserRepository(db)
	return NewContentService(
		repository.NewBlogRepository(db),
		repository.NewReviewRepository(db),
		repository.NewCommentRepository(db),
		repository.NewRelationRepository(db),
		func(ctx context.Context, userID uint) (bool, error) {
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				return false, err
			}
			return u.IsAdmin, nil
		},
	)
}
