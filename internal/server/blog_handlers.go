package server

import (
	"errors"

	"cinelog/internal/models"
	"cinelog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes a JSON body and keeps typed coercion errors intact so
// a malformed tags field reports VALIDATION_ERROR rather than a generic
// bad-body message.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return models.RespondWithAppError(c, appErr)
		}
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	return nil
}

// GetBlogs handles GET /api/blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	blogs, err := s.blogRepo.List(c.Context(), page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(blogs)
}

// SearchBlogs handles GET /api/blogs/search?q=...
func (s *Server) SearchBlogs(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	page := parsePagination(c, 10)
	userID, _ := s.optionalUserID(c)

	blogs, err := s.blogRepo.Search(c.Context(), q, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(blogs)
}

// GetBlog handles GET /api/blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	blog, err := s.blogRepo.GetByID(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(blog)
}

// GetUserBlogs handles GET /api/users/:id/blogs
func (s *Server) GetUserBlogs(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	blogs, err := s.blogRepo.ListByUser(c.Context(), authorID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(blogs)
}

// CreateBlog handles POST /api/blogs
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string            `json:"title"`
		Content  string            `json:"content"`
		ImageURL string            `json:"image_url,omitempty"`
		Tags     models.StringList `json:"tags,omitempty"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	blog, err := s.contentService.CreateBlog(c.Context(), service.CreateBlogInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Tags:     req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(blog)
}

// UpdateBlog handles PUT /api/blogs/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string            `json:"title"`
		Content  string            `json:"content"`
		ImageURL string            `json:"image_url,omitempty"`
		Tags     models.StringList `json:"tags,omitempty"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	blog, err := s.contentService.UpdateBlog(c.Context(), service.UpdateBlogInput{
		UserID:   userID,
		BlogID:   blogID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Tags:     req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(blog)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeleteBlog(c.Context(), userID, blogID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Blog deleted"})
}

// ToggleBlogLike handles PUT /api/blogs/:id/like. Each call flips the
// caller's like; the response carries the resulting state and count.
func (s *Server) ToggleBlogLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.contentService.ToggleBlogLike(c.Context(), userID, blogID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(state)
}

// GetBlogComments handles GET /api/blogs/:id/comments
func (s *Server) GetBlogComments(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	comments, err := s.commentRepo.ListForTarget(c.Context(), models.CommentTargetBlog, blogID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(comments)
}

// CreateBlogComment handles POST /api/blogs/:id/comments
func (s *Server) CreateBlogComment(c *fiber.Ctx) error {
	return s.createComment(c, models.CommentTargetBlog)
}

// DeleteBlogComment handles DELETE /api/blogs/:id/comments/:commentId
func (s *Server) DeleteBlogComment(c *fiber.Ctx) error {
	return s.deleteComment(c)
}

func (s *Server) createComment(c *fiber.Ctx, targetType string) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.contentService.AddComment(c.Context(), userID, targetType, targetID, req.Text)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (s *Server) deleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
