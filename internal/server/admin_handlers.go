package server

import (
	"cinelog/internal/models"
	"cinelog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.statsRepo.Collect(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetAdminUsers handles GET /api/admin/users?q=...
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	users, err := s.userRepo.List(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// ToggleUserAdmin handles PUT /api/admin/users/:id/admin. Each call flips
// the target's admin bit; the protected admin account is refused with 403.
func (s *Server) ToggleUserAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.ToggleAdmin(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/admin/users/:id. Everything the user
// authored goes with them; the protected admin account is refused.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteAccount(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// CreateAdmin handles POST /api/admin/create-admin. The account is created
// approved and with the admin bit set, skipping the request queue.
func (s *Server) CreateAdmin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashedPassword),
		IsAdmin:    true,
		IsApproved: true,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetAllComments handles GET /api/admin/comments (moderation view)
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	comments, err := s.commentRepo.ListAll(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(comments)
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// AdminDeleteBlog handles DELETE /api/admin/blogs/:id
func (s *Server) AdminDeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	exists, err := s.blogRepo.Exists(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !exists {
		return models.RespondWithAppError(c, models.NewNotFoundError("Blog", id))
	}

	if err := s.blogRepo.DeleteCascade(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Blog deleted"})
}

// AdminDeleteReview handles DELETE /api/admin/reviews/:id
func (s *Server) AdminDeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	exists, err := s.reviewRepo.Exists(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !exists {
		return models.RespondWithAppError(c, models.NewNotFoundError("Review", id))
	}

	if err := s.reviewRepo.DeleteCascade(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
