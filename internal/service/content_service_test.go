package service

import (
	"context"
	"testing"

	"cinelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBlogPublishesImmediately(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "aut", Email: "aut@example.com", IsApproved: true})

	blog, err := svc.CreateBlog(ctx, CreateBlogInput{
		UserID:  author.ID,
		Title:   "Best courtroom dramas",
		Content: "A list.",
		Tags:    models.StringList{"drama", "law"},
	})
	require.NoError(t, err)
	assert.True(t, blog.Published, "there is no review queue for content")
	assert.Equal(t, models.StringList{"drama", "law"}, blog.Tags)
}

func TestCreateBlogRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)

	_, err := svc.CreateBlog(context.Background(), CreateBlogInput{UserID: 1, Title: "", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}

func TestUpdateBlogOwnershipEnforced(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "own", Email: "own@example.com", IsApproved: true})
	other := seedUser(t, db, models.User{Username: "oth", Email: "oth@example.com", IsApproved: true})

	blog, err := svc.CreateBlog(ctx, CreateBlogInput{UserID: author.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.UpdateBlog(ctx, UpdateBlogInput{UserID: other.ID, BlogID: blog.ID, Title: "hijacked"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)

	updated, err := svc.UpdateBlog(ctx, UpdateBlogInput{UserID: author.ID, BlogID: blog.ID, Title: "revised"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Title)
}

func TestDeleteBlogAllowsAdmins(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "aaa", Email: "aaa@example.com", IsApproved: true})
	admin := seedUser(t, db, models.User{Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true})
	bystander := seedUser(t, db, models.User{Username: "bys", Email: "bys@example.com", IsApproved: true})

	blog, err := svc.CreateBlog(ctx, CreateBlogInput{UserID: author.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	err = svc.DeleteBlog(ctx, bystander.ID, blog.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)

	require.NoError(t, svc.DeleteBlog(ctx, admin.ID, blog.ID))
}

func TestToggleBlogLikeRoundTrip(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "wrt", Email: "wrt@example.com", IsApproved: true})
	fan := seedUser(t, db, models.User{Username: "fn", Email: "fn@example.com", IsApproved: true})

	blog, err := svc.CreateBlog(ctx, CreateBlogInput{UserID: author.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	state, err := svc.ToggleBlogLike(ctx, fan.ID, blog.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, int64(1), state.Likes)

	state, err = svc.ToggleBlogLike(ctx, fan.ID, blog.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, int64(0), state.Likes)
}

func TestToggleBlogLikeMissingBlogIsNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)

	_, err := svc.ToggleBlogLike(context.Background(), 1, 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestToggleReviewLikeRoundTrip(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	critic := seedUser(t, db, models.User{Username: "cr", Email: "cr@example.com", IsApproved: true})

	review, err := svc.CreateReview(ctx, CreateReviewInput{
		UserID: critic.ID, MovieID: "tt100", MovieTitle: "Heat", Rating: 9, Content: "tense",
	})
	require.NoError(t, err)

	state, err := svc.ToggleReviewLike(ctx, critic.ID, review.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)

	state, err = svc.ToggleReviewLike(ctx, critic.ID, review.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
}

func TestCreateReviewRejectsSecondReviewForSameMovie(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	critic := seedUser(t, db, models.User{Username: "cc", Email: "cc@example.com", IsApproved: true})

	_, err := svc.CreateReview(ctx, CreateReviewInput{UserID: critic.ID, MovieID: "tt7", Rating: 7})
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, CreateReviewInput{UserID: critic.ID, MovieID: "tt7", Rating: 2})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", err.(*models.AppError).Code)
}

func TestDeleteReviewAllowsReviewingSameMovieAgain(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	critic := seedUser(t, db, models.User{Username: "rr", Email: "rr@example.com", IsApproved: true})

	review, err := svc.CreateReview(ctx, CreateReviewInput{
		UserID: critic.ID, MovieID: "tt8", MovieTitle: "Alien", Rating: 9, Content: "first take",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReview(ctx, critic.ID, review.ID))

	// The deleted row must not linger and block the unique index.
	var remaining int64
	require.NoError(t, db.Unscoped().Model(&models.Review{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	_, err = svc.CreateReview(ctx, CreateReviewInput{
		UserID: critic.ID, MovieID: "tt8", MovieTitle: "Alien", Rating: 4, Content: "second take",
	})
	require.NoError(t, err)
}

func TestAddCommentValidatesTarget(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	user := seedUser(t, db, models.User{Username: "cm", Email: "cm@example.com", IsApproved: true})

	_, err := svc.AddComment(ctx, user.ID, models.CommentTargetBlog, 404, "hello")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)

	_, err = svc.AddComment(ctx, user.ID, "podcast", 1, "hello")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)

	blog, err := svc.CreateBlog(ctx, CreateBlogInput{UserID: user.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, user.ID, models.CommentTargetBlog, blog.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", comment.Text)
}

func TestDeleteCommentAuthorOrAdminOnly(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := newContentService(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "ca", Email: "ca@example.com", IsApproved: true})
	admin := seedUser(t, db, models.User{Username: "cad", Email: "cad@example.com", IsAdmin: true, IsApproved: true})
	stranger := seedUser(t, db, models.User{Username: "cs", Email: "cs@example.com", IsApproved: true})

	blog, err := svc.CreateBlog(ctx, CreateBlogInput{UserID: author.ID, Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := svc.AddComment(ctx, author.ID, models.CommentTargetBlog, blog.ID, "mine")
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, stranger.ID, comment.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)

	require.NoError(t, svc.DeleteComment(ctx, admin.ID, comment.ID))
}
