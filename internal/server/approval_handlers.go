package server

import (
	"cinelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAccessRequests handles GET /api/admin/requests
func (s *Server) GetAccessRequests(c *fiber.Ctx) error {
	requests, err := s.userService.ListPendingRequests(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(requests)
}

// ApproveAccessRequest handles PATCH /api/admin/requests/:id/approve.
// Approving twice is a no-op success; a missing account is 404.
func (s *Server) ApproveAccessRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.ApproveRequest(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// RejectAccessRequest handles DELETE /api/admin/requests/:id/reject.
// The account is hard-deleted; rejecting an absent or already-approved
// account is 404.
func (s *Server) RejectAccessRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.RejectRequest(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Access request rejected"})
}
