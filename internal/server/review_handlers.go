package server

import (
	"cinelog/internal/models"
	"cinelog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews handles GET /api/reviews with an optional ?movie_id= filter.
func (s *Server) GetReviews(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)
	movieID := c.Query("movie_id")

	reviews, err := s.reviewRepo.List(c.Context(), movieID, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(reviews)
}

// GetReview handles GET /api/reviews/:id
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	review, err := s.reviewRepo.GetByID(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(review)
}

// GetUserReviews handles GET /api/users/:id/reviews
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	reviews, err := s.reviewRepo.ListByUser(c.Context(), authorID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(reviews)
}

// CreateReview handles POST /api/reviews. One review per user per movie;
// a second attempt is a 409.
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		MovieID    string `json:"movie_id"`
		MovieTitle string `json:"movie_title"`
		Rating     int    `json:"rating"`
		Content    string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	review, err := s.contentService.CreateReview(c.Context(), service.CreateReviewInput{
		UserID:     userID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		Rating:     req.Rating,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	review, err := s.contentService.UpdateReview(c.Context(), userID, reviewID, req.Rating, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeleteReview(c.Context(), userID, reviewID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

// ToggleReviewLike handles PUT /api/reviews/:id/like
func (s *Server) ToggleReviewLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.contentService.ToggleReviewLike(c.Context(), userID, reviewID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(state)
}

// GetReviewComments handles GET /api/reviews/:id/comments
func (s *Server) GetReviewComments(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	comments, err := s.commentRepo.ListForTarget(c.Context(), models.CommentTargetReview, reviewID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(comments)
}

// CreateReviewComment handles POST /api/reviews/:id/comments
func (s *Server) CreateReviewComment(c *fiber.Ctx) error {
	return s.createComment(c, models.CommentTargetReview)
}

// DeleteReviewComment handles DELETE /api/reviews/:id/comments/:commentId
func (s *Server) DeleteReviewComment(c *fiber.Ctx) error {
	return s.deleteComment(c)
}
