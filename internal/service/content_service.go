// Package service contains the application's business rules, between the
// HTTP handlers and the repositories.
package service

import (
	"context"
	"strconv"

	"cinelog/internal/middleware"
	"cinelog/internal/models"
	"cinelog/internal/repository"
	"cinelog/internal/validation"
)

// ContentService owns blogs, reviews, comments and their like toggles.
type ContentService struct {
	blogRepo     repository.BlogRepository
	reviewRepo   repository.ReviewRepository
	commentRepo  repository.CommentRepository
	relationRepo repository.RelationRepository
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

// NewContentService wires the content service.
func NewContentService(
	blogRepo repository.BlogRepository,
	reviewRepo repository.ReviewRepository,
	commentRepo repository.CommentRepository,
	relationRepo repository.RelationRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ContentService {
	return &ContentService{
		blogRepo:     blogRepo,
		reviewRepo:   reviewRepo,
		commentRepo:  commentRepo,
		relationRepo: relationRepo,
		isAdmin:      isAdmin,
	}
}

// CreateBlogInput carries a new blog's fields.
type CreateBlogInput struct {
	UserID   uint
	Title    string
	Content  string
	ImageURL string
	Tags     models.StringList
}

// UpdateBlogInput carries a blog edit; empty fields keep their value.
type UpdateBlogInput struct {
	UserID   uint
	BlogID   uint
	Title    string
	Content  string
	ImageURL string
	Tags     models.StringList
}

// CreateReviewInput carries a new review's fields.
type CreateReviewInput struct {
	UserID     uint
	MovieID    string
	MovieTitle string
	Rating     int
	Content    string
}

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

func (s *ContentService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if err := validation.ValidateBlogInput(in.Title, in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateTags(in.Tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	blog := &models.Blog{
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		Tags:     in.Tags,
		UserID:   in.UserID,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID, in.UserID)
}

func (s *ContentService) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID, in.UserID)
	if err != nil {
		return nil, err
	}
	if blog.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own blogs")
	}

	if in.Title != "" {
		blog.Title = in.Title
	}
	if in.Content != "" {
		blog.Content = in.Content
	}
	if in.ImageURL != "" {
		blog.ImageURL = in.ImageURL
	}
	if in.Tags != nil {
		if err := validation.ValidateTags(in.Tags); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		blog.Tags = in.Tags
	}
	if err := validation.ValidateBlogInput(blog.Title, blog.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// DeleteBlog removes a blog with its comments and likes. Allowed for the
// author and for admins.
func (s *ContentService) DeleteBlog(ctx context.Context, userID, blogID uint) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID, userID)
	if err != nil {
		return err
	}
	if blog.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own blogs")
		}
	}
	return s.blogRepo.DeleteCascade(ctx, blogID)
}

// ToggleBlogLike flips the caller's like and returns the new state. The
// flip itself is one store operation; the 404 check and the count are
// reads around it, not part of it.
func (s *ContentService) ToggleBlogLike(ctx context.Context, userID, blogID uint) (*LikeState, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Blog", blogID)
	}

	objectID := strconv.FormatUint(uint64(blogID), 10)
	liked, err := s.relationRepo.Toggle(ctx, userID, objectID, models.RelationBlogLike)
	if err != nil {
		return nil, err
	}
	middleware.ToggleFlips.WithLabelValues(string(models.RelationBlogLike), stateLabel(liked)).Inc()

	likes, err := s.relationRepo.Count(ctx, objectID, models.RelationBlogLike)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Likes: likes}, nil
}

func (s *ContentService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := validation.ValidateReviewInput(in.MovieID, in.Rating, in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	review := &models.Review{
		MovieID:    in.MovieID,
		MovieTitle: in.MovieTitle,
		Rating:     in.Rating,
		Content:    in.Content,
		UserID:     in.UserID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID, in.UserID)
}

func (s *ContentService) UpdateReview(ctx context.Context, userID, reviewID uint, rating int, content string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, models.NewForbiddenError("You can only update your own reviews")
	}

	if rating != 0 {
		review.Rating = rating
	}
	if content != "" {
		review.Content = content
	}
	if err := validation.ValidateReviewInput(review.MovieID, review.Rating, review.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ContentService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own reviews")
		}
	}
	return s.reviewRepo.DeleteCascade(ctx, reviewID)
}

func (s *ContentService) ToggleReviewLike(ctx context.Context, userID, reviewID uint) (*LikeState, error) {
	exists, err := s.reviewRepo.Exists(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Review", reviewID)
	}

	objectID := strconv.FormatUint(uint64(reviewID), 10)
	liked, err := s.relationRepo.Toggle(ctx, userID, objectID, models.RelationReviewLike)
	if err != nil {
		return nil, err
	}
	middleware.ToggleFlips.WithLabelValues(string(models.RelationReviewLike), stateLabel(liked)).Inc()

	likes, err := s.relationRepo.Count(ctx, objectID, models.RelationReviewLike)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Likes: likes}, nil
}

// AddComment appends a comment to a blog or review.
func (s *ContentService) AddComment(ctx context.Context, userID uint, targetType string, targetID uint, text string) (*models.Comment, error) {
	if err := validation.ValidateComment(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	switch targetType {
	case models.CommentTargetBlog:
		exists, err := s.blogRepo.Exists(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewNotFoundError("Blog", targetID)
		}
	case models.CommentTargetReview:
		exists, err := s.reviewRepo.Exists(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewNotFoundError("Review", targetID)
		}
	default:
		return nil, models.NewValidationError("invalid comment target")
	}

	comment := &models.Comment{
		Text:       text,
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment. Allowed for its author and for admins.
func (s *ContentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func stateLabel(present bool) string {
	if present {
		return "added"
	}
	return "removed"
}
