package repository

import (
	"context"
	"testing"

	"cinelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const protectedEmail = "root@example.com"

func seedUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	if user.Password == "" {
		user.Password = "hashed"
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateLowercasesEmailAndDetectsConflicts(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "casey", Email: "Casey@Example.COM", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "casey@example.com", first.Email)

	// Same address under different casing is the same account.
	dup := &models.User{Username: "casey2", Email: "CASEY@example.com", Password: "hashed"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	found, err := repo.GetByEmail(ctx, "cAsEy@ExAmPlE.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
}

func TestApproveIsIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	pending := seedUser(t, db, models.User{Username: "pat", Email: "pat@example.com"})

	approved, err := repo.Approve(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// Replayed approval is a no-op success, not an error.
	again, err := repo.Approve(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, again.IsApproved)
}

func TestApproveMissingAccountIsNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Approve(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestRejectPendingDeletesAccount(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	pending := seedUser(t, db, models.User{Username: "riley", Email: "riley@example.com"})

	require.NoError(t, repo.RejectPending(ctx, pending.ID))

	// The account is gone for good: even login-by-email cannot find it.
	found, err := repo.GetByEmail(ctx, "riley@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	// Replayed rejection degrades to NotFound.
	err = repo.RejectPending(ctx, pending.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestRejectApprovedAccountIsNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, models.User{Username: "drew", Email: "drew@example.com", IsApproved: true})

	err := repo.RejectPending(ctx, u.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)

	// The approved account survives the attempt.
	found, err := repo.GetByEmail(ctx, "drew@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestToggleAdminFlipsBothWays(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, models.User{Username: "sam", Email: "sam@example.com", IsApproved: true})

	granted, err := repo.ToggleAdmin(ctx, u.ID, protectedEmail)
	require.NoError(t, err)
	assert.True(t, granted.IsAdmin)

	revoked, err := repo.ToggleAdmin(ctx, u.ID, protectedEmail)
	require.NoError(t, err)
	assert.False(t, revoked.IsAdmin)
}

func TestToggleAdminRefusesProtectedRevocation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	root := seedUser(t, db, models.User{Username: "root", Email: protectedEmail, IsAdmin: true, IsApproved: true})

	_, err := repo.ToggleAdmin(ctx, root.ID, protectedEmail)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)

	var after models.User
	require.NoError(t, db.First(&after, root.ID).Error)
	assert.True(t, after.IsAdmin, "protected account must keep its admin bit")
}

func TestToggleAdminMissingUserIsNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.ToggleAdmin(context.Background(), 999, protectedEmail)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestDeleteCascadeRemovesAuthoredContent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "ava", Email: "ava@example.com", IsApproved: true})
	reader := seedUser(t, db, models.User{Username: "max", Email: "max@example.com", IsApproved: true})

	blog := models.Blog{Title: "t", Content: "c", UserID: author.ID, Published: true}
	require.NoError(t, db.Create(&blog).Error)
	comment := models.Comment{Text: "nice", TargetType: models.CommentTargetBlog, TargetID: blog.ID, UserID: reader.ID}
	require.NoError(t, db.Create(&comment).Error)
	_, err := relations.Toggle(ctx, reader.ID, uintToString(blog.ID), models.RelationBlogLike)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCascade(ctx, author.ID, protectedEmail))

	var blogCount, commentCount, relCount int64
	require.NoError(t, db.Model(&models.Blog{}).Count(&blogCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.Relation{}).Count(&relCount).Error)
	assert.Zero(t, blogCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, relCount)

	// The reader is untouched.
	found, err := repo.GetByEmail(ctx, "max@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestDeleteCascadeRefusesProtectedAdmin(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	root := seedUser(t, db, models.User{Username: "root", Email: protectedEmail, IsAdmin: true, IsApproved: true})

	err := repo.DeleteCascade(context.Background(), root.ID, protectedEmail)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)
}
