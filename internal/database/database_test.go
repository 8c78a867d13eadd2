package database

import (
	"testing"

	"cinelog/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestModelsMigrateCleanly(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	// The relation pair index must reject duplicates: presence is state,
	// so a duplicate row would corrupt every toggle.
	rel := models.Relation{SubjectID: 1, ObjectID: "42", Kind: models.RelationBlogLike}
	if err := db.Create(&rel).Error; err != nil {
		t.Fatalf("insert relation: %v", err)
	}
	dup := models.Relation{SubjectID: 1, ObjectID: "42", Kind: models.RelationBlogLike}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatal("expected unique violation for duplicate relation pair")
	}
}

func TestLogModeReturnsIndependentLogger(t *testing.T) {
	t.Parallel()

	base := &CustomGormLogger{Config: logger.Config{LogLevel: logger.Warn}}
	derived := base.LogMode(logger.Error)

	if got := derived.(*CustomGormLogger).Config.LogLevel; got != logger.Error {
		t.Fatalf("expected derived level Error, got %v", got)
	}
	if base.Config.LogLevel != logger.Warn {
		t.Fatal("LogMode must not mutate the receiver")
	}
}
