package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/brackets"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/metrix-gg/metrix-server/repositories"
	"github.com/metrix-gg/metrix-server/storage"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Game        string    `json:"game"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	MaxPlayers  int       `json:"max_players"`
}

// RoundView is one named round of the public bracket read path.
type RoundView struct {
	Round   int            `json:"round"`
	Name    string         `json:"name"`
	Matches []models.Match `json:"matches"`
}

type BracketView struct {
	Tournament   *models.Tournament   `json:"tournament"`
	Rounds       []RoundView          `json:"rounds"`
	Participants []models.Participant `json:"participants"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID uuid.UUID, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	GetBracketView(ctx context.Context, id uuid.UUID) (*BracketView, error)
	UploadBanner(ctx context.Context, id uuid.UUID, contentType string, banner io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	uploader        storage.FileUploader
	logger          *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		uploader:        uploader,
		logger:          logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID uuid.UUID, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}
	if strings.TrimSpace(input.Game) == "" {
		return nil, ErrTournamentGameRequired
	}
	if input.MaxPlayers < 2 {
		return nil, ErrTournamentInvalidCapacity
	}

	tournament := &models.Tournament{
		ID:          uuid.New(),
		Name:        input.Name,
		Game:        input.Game,
		Description: input.Description,
		OrganizerID: organizerID,
		StartDate:   input.StartDate,
		Status:      models.TournamentUpcoming,
		MaxPlayers:  input.MaxPlayers,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}
	s.attachBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.attachBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		s.attachBannerURL(&tournaments[i])
	}
	return tournaments, nil
}

// GetBracketView assembles the renderer feed: the tournament, its entrants,
// and the persisted matches grouped into named rounds. The three reads are
// independent and run in parallel.
func (s *tournamentService) GetBracketView(ctx context.Context, id uuid.UUID) (*BracketView, error) {
	var (
		tournament   *models.Tournament
		participants []models.Participant
		matches      []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.FindByID(gCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to load tournament %s: %w", id, err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		p, err := s.participantRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list participants for tournament %s: %w", id, err)
		}
		participants = p
		return nil
	})
	g.Go(func() error {
		m, err := s.matchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list matches for tournament %s: %w", id, err)
		}
		matches = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.attachBannerURL(tournament)

	maxRound := brackets.MaxRound(matches)
	grouped := brackets.GroupByRound(matches)
	rounds := make([]RoundView, 0, len(grouped))
	for _, round := range brackets.Rounds(matches) {
		rounds = append(rounds, RoundView{
			Round:   round,
			Name:    brackets.RoundName(round, maxRound),
			Matches: grouped[round],
		})
	}

	return &BracketView{
		Tournament:   tournament,
		Rounds:       rounds,
		Participants: participants,
	}, nil
}

func (s *tournamentService) UploadBanner(ctx context.Context, id uuid.UUID, contentType string, banner io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrBannerStorageDisabled
	}

	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%s/banner", id)
	result, err := s.uploader.Upload(ctx, key, contentType, banner)
	if err != nil {
		return nil, fmt.Errorf("failed to upload banner for tournament %s: %w", id, err)
	}

	if err := s.tournamentRepo.UpdateBannerKey(ctx, id, &result.Key); err != nil {
		// Best effort: the object is orphaned if this fails, the next upload
		// overwrites the same key.
		return nil, err
	}

	tournament.BannerKey = &result.Key
	s.attachBannerURL(tournament)
	s.logger.Info("tournament banner uploaded",
		slog.String("tournament_id", id.String()),
		slog.String("key", result.Key))
	return tournament, nil
}

func (s *tournamentService) attachBannerURL(t *models.Tournament) {
	if t == nil || t.BannerKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.PublicURL(*t.BannerKey)
	t.BannerURL = &url
}
