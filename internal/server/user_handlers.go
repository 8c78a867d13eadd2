package server

import (
	"cinelog/internal/models"
	"cinelog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Avatar string `json:"avatar"`
		Bio    string `json:"bio"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// ToggleWatchlist handles PUT /api/users/me/watchlist/:movieId. Each call
// flips the movie in or out of the caller's watchlist.
func (s *Server) ToggleWatchlist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	movieID := c.Params("movieId")

	state, err := s.userService.ToggleWatchlist(c.Context(), userID, movieID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(state)
}

// GetMyWatchlist handles GET /api/users/me/watchlist. Catalog details are
// joined best-effort: entries the catalog cannot resolve are returned as
// bare IDs.
func (s *Server) GetMyWatchlist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	ids, err := s.userService.Watchlist(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	movies := s.catalogClient.GetMany(c.Context(), ids)

	return c.JSON(fiber.Map{
		"watchlist": ids,
		"movies":    movies,
	})
}
