package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/metrix-gg/metrix-server/repositories"
)

var (
	ErrParticipantNameRequired = errors.New("participant display name is required")
	ErrTournamentFull          = errors.New("tournament is full")
)

type RegisterParticipantInput struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
}

type ParticipantService interface {
	Register(ctx context.Context, tournamentID uuid.UUID, input RegisterParticipantInput) (*models.Participant, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Participant, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	tournamentRepo  repositories.TournamentRepository
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	tournamentRepo repositories.TournamentRepository,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		tournamentRepo:  tournamentRepo,
	}
}

func (s *participantService) Register(ctx context.Context, tournamentID uuid.UUID, input RegisterParticipantInput) (*models.Participant, error) {
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, ErrParticipantNameRequired
	}

	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	existing, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count entrants for tournament %s: %w", tournamentID, err)
	}
	if len(existing) >= tournament.MaxPlayers {
		return nil, ErrTournamentFull
	}

	participant := &models.Participant{
		ID:           uuid.New(),
		UserID:       input.UserID,
		TournamentID: tournamentID,
		DisplayName:  input.DisplayName,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *participantService) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Participant, error) {
	participants, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %s: %w", tournamentID, err)
	}
	return participants, nil
}

func (s *participantService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}
