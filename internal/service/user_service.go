package service

import (
	"context"

	"cinelog/internal/middleware"
	"cinelog/internal/models"
	"cinelog/internal/repository"
)

// UserService owns profile updates, the approval workflow, watchlist
// toggles and admin grants.
type UserService struct {
	userRepo       repository.UserRepository
	relationRepo   repository.RelationRepository
	protectedEmail string
}

// NewUserService wires the user service. protectedEmail names the one
// admin account that can never be demoted or deleted.
func NewUserService(userRepo repository.UserRepository, relationRepo repository.RelationRepository, protectedEmail string) *UserService {
	return &UserService{
		userRepo:       userRepo,
		relationRepo:   relationRepo,
		protectedEmail: protectedEmail,
	}
}

// UpdateProfileInput carries profile edits; empty fields keep their value.
type UpdateProfileInput struct {
	UserID uint
	Avatar string
	Bio    string
}

// WatchlistState is the outcome of a watchlist toggle.
type WatchlistState struct {
	InWatchlist bool     `json:"in_watchlist"`
	Watchlist   []string `json:"watchlist"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	const maxAvatarLen = 500
	const maxBioLen = 1000

	if len(in.Avatar) > maxAvatarLen {
		return nil, models.NewValidationError("Avatar URL too long (max 500 characters)")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 1000 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListPendingRequests returns accounts awaiting approval.
func (s *UserService) ListPendingRequests(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListPending(ctx)
}

// ApproveRequest marks an account approved. Safe to replay.
func (s *UserService) ApproveRequest(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.Approve(ctx, id)
}

// RejectRequest deletes a pending account. Rejecting an absent or
// already-approved account reports NotFound.
func (s *UserService) RejectRequest(ctx context.Context, id uint) error {
	return s.userRepo.RejectPending(ctx, id)
}

// ToggleWatchlist flips a catalog movie in or out of the caller's
// watchlist and returns the full list.
func (s *UserService) ToggleWatchlist(ctx context.Context, userID uint, movieID string) (*WatchlistState, error) {
	if movieID == "" {
		return nil, models.NewValidationError("movie id is required")
	}

	present, err := s.relationRepo.Toggle(ctx, userID, movieID, models.RelationWatchlist)
	if err != nil {
		return nil, err
	}
	middleware.ToggleFlips.WithLabelValues(string(models.RelationWatchlist), stateLabel(present)).Inc()

	list, err := s.relationRepo.ListObjects(ctx, userID, models.RelationWatchlist)
	if err != nil {
		return nil, err
	}
	return &WatchlistState{InWatchlist: present, Watchlist: list}, nil
}

// Watchlist returns the caller's watchlist movie IDs.
func (s *UserService) Watchlist(ctx context.Context, userID uint) ([]string, error) {
	return s.relationRepo.ListObjects(ctx, userID, models.RelationWatchlist)
}

// ToggleAdmin flips a user's admin bit. The protected admin's bit can
// never be flipped off.
func (s *UserService) ToggleAdmin(ctx context.Context, targetID uint) (*models.User, error) {
	return s.userRepo.ToggleAdmin(ctx, targetID, s.protectedEmail)
}

// DeleteAccount removes a user and everything they authored. The
// protected admin can never be deleted.
func (s *UserService) DeleteAccount(ctx context.Context, targetID uint) error {
	return s.userRepo.DeleteCascade(ctx, targetID, s.protectedEmail)
}
