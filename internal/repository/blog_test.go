package repository

import (
	"context"
	"testing"

	"cinelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogComputedColumns(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	blogs := NewBlogRepository(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "wri", Email: "wri@example.com", IsApproved: true})
	fan := seedUser(t, db, models.User{Username: "fan", Email: "fan@example.com", IsApproved: true})

	blog := &models.Blog{Title: "Top ten heists", Content: "body", UserID: author.ID, Tags: models.StringList{"crime"}}
	require.NoError(t, blogs.Create(ctx, blog))
	assert.True(t, blog.Published, "blogs publish at creation")

	_, err := relations.Toggle(ctx, fan.ID, uintToString(blog.ID), models.RelationBlogLike)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{
		Text: "great list", TargetType: models.CommentTargetBlog, TargetID: blog.ID, UserID: fan.ID,
	}).Error)

	got, err := blogs.GetByID(ctx, blog.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.True(t, got.Liked)

	// A different viewer sees the counts but not a personal liked flag.
	other, err := blogs.GetByID(ctx, blog.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, other.LikesCount)
	assert.False(t, other.Liked)
}

func TestBlogGetMissingIsNotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	blogs := NewBlogRepository(db)

	_, err := blogs.GetByID(context.Background(), 404, 0)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestBlogDeleteCascade(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	blogs := NewBlogRepository(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, models.User{Username: "aut", Email: "aut@example.com", IsApproved: true})
	blog := &models.Blog{Title: "t", Content: "c", UserID: author.ID}
	require.NoError(t, blogs.Create(ctx, blog))
	require.NoError(t, db.Create(&models.Comment{
		Text: "x", TargetType: models.CommentTargetBlog, TargetID: blog.ID, UserID: author.ID,
	}).Error)
	_, err := relations.Toggle(ctx, author.ID, uintToString(blog.ID), models.RelationBlogLike)
	require.NoError(t, err)

	require.NoError(t, blogs.DeleteCascade(ctx, blog.ID))

	exists, err := blogs.Exists(ctx, blog.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	var commentCount, relCount int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.Relation{}).Count(&relCount).Error)
	assert.Zero(t, commentCount)
	assert.Zero(t, relCount)
}

func TestReviewUniquePerUserAndMovie(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	critic := seedUser(t, db, models.User{Username: "cri", Email: "cri@example.com", IsApproved: true})

	first := &models.Review{MovieID: "tt1", Rating: 8, Content: "good", UserID: critic.ID}
	require.NoError(t, reviews.Create(ctx, first))

	dup := &models.Review{MovieID: "tt1", Rating: 3, Content: "changed my mind", UserID: critic.ID}
	err := reviews.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", err.(*models.AppError).Code)

	// A different movie is fine.
	other := &models.Review{MovieID: "tt2", Rating: 5, Content: "ok", UserID: critic.ID}
	require.NoError(t, reviews.Create(ctx, other))
}

func TestReviewAverageRating(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, models.User{Username: "ra", Email: "ra@example.com", IsApproved: true})
	b := seedUser(t, db, models.User{Username: "rb", Email: "rb@example.com", IsApproved: true})

	require.NoError(t, reviews.Create(ctx, &models.Review{MovieID: "tt9", Rating: 6, UserID: a.ID}))
	require.NoError(t, reviews.Create(ctx, &models.Review{MovieID: "tt9", Rating: 10, UserID: b.ID}))

	avg, err := reviews.AverageRating(ctx, "tt9")
	require.NoError(t, err)
	assert.InDelta(t, 8.0, avg, 0.001)

	none, err := reviews.AverageRating(ctx, "tt-none")
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestStatsCollect(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	stats := NewStatsRepository(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, models.User{Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true})
	seedUser(t, db, models.User{Username: "pen", Email: "pen@example.com"})
	blog := models.Blog{Title: "t", Content: "c", UserID: admin.ID, Published: true}
	require.NoError(t, db.Create(&blog).Error)
	_, err := relations.Toggle(ctx, admin.ID, uintToString(blog.ID), models.RelationBlogLike)
	require.NoError(t, err)
	_, err = relations.Toggle(ctx, admin.ID, "m1", models.RelationWatchlist)
	require.NoError(t, err)

	got, err := stats.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalUsers)
	assert.Equal(t, int64(1), got.PendingRequests)
	assert.Equal(t, int64(1), got.TotalAdmins)
	assert.Equal(t, int64(1), got.TotalBlogs)
	assert.Equal(t, int64(1), got.TotalLikes, "watchlist entries are not likes")
}
