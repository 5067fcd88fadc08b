package services

import (
	"context"
	"fmt"

	"github.com/metrix-gg/metrix-server/models"
	"github.com/metrix-gg/metrix-server/repositories"
)

type UserService interface {
	// ListActiveSpectators feeds the spectator dropdown of the bracket editor.
	ListActiveSpectators(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListActiveSpectators(ctx context.Context) ([]models.User, error) {
	spectators, err := s.userRepo.ListActiveSpectators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active spectators: %w", err)
	}
	return spectators, nil
}
