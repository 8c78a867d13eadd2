package server

import (
	"cinelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCatalog handles GET /api/catalog?q=...
func (s *Server) GetCatalog(c *fiber.Ctx) error {
	payload, err := s.catalogClient.List(c.Context(), c.Query("q"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// GetCatalogMovie handles GET /api/catalog/:movieId
func (s *Server) GetCatalogMovie(c *fiber.Ctx) error {
	payload, err := s.catalogClient.Get(c.Context(), c.Params("movieId"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// GetFreeCatalog handles GET /free, the unauthenticated catalog listing.
func (s *Server) GetFreeCatalog(c *fiber.Ctx) error {
	payload, err := s.catalogClient.List(c.Context(), c.Query("q"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}
