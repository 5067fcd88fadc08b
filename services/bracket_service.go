package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/brackets"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/metrix-gg/metrix-server/repositories"
)

// saveTimeout bounds the two remote calls of a bracket save. The original
// design had no timeout at all; this is a deliberate tightening.
const saveTimeout = 15 * time.Second

// BracketService owns bracket edit sessions: one generated, in-memory match
// list per editing admin, mutated through the session operations and
// persisted with replace-all semantics. Sessions live in process memory;
// concurrent editing of the same tournament by two admins is unsupported and
// last-save-wins.
type BracketService interface {
	StartSession(ctx context.Context, tournamentID uuid.UUID) (*brackets.EditSession, error)
	GetSession(sessionID uuid.UUID) (*brackets.EditSession, error)
	UpdateMatch(sessionID uuid.UUID, index int, upd brackets.MatchUpdate) (*brackets.EditSession, error)
	SwapPlayer(sessionID uuid.UUID, index int, slot brackets.Slot, playerID *uuid.UUID) (*brackets.EditSession, error)
	DeleteMatch(sessionID uuid.UUID, index int) (*brackets.EditSession, error)
	AvailableParticipants(sessionID uuid.UUID, index int, slot brackets.Slot) ([]models.Participant, error)
	Validate(sessionID uuid.UUID) ([]brackets.Violation, error)
	Save(ctx context.Context, sessionID uuid.UUID) ([]models.Match, error)
	DiscardSession(sessionID uuid.UUID) error
}

type bracketService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	generator       brackets.Generator
	hub             *brackets.Hub
	logger          *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*brackets.EditSession
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.Generator,
	hub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		generator:       generator,
		hub:             hub,
		logger:          logger,
		sessions:        make(map[uuid.UUID]*brackets.EditSession),
	}
}

func (s *bracketService) StartSession(ctx context.Context, tournamentID uuid.UUID) (*brackets.EditSession, error) {
	if _, err := s.tournamentRepo.FindByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	participants, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %s: %w", tournamentID, err)
	}

	matches, err := s.generator.Generate(ctx, brackets.GenerateParams{
		TournamentID: tournamentID,
		Participants: participants,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := brackets.NewEditSession(tournamentID, participants, matches)
	s.sessions[session.ID] = session

	s.logger.Info("bracket edit session started",
		slog.String("session_id", session.ID.String()),
		slog.String("tournament_id", tournamentID.String()),
		slog.Int("participants", len(participants)),
		slog.Int("matches", len(matches)))

	return session, nil
}

func (s *bracketService) GetSession(sessionID uuid.UUID) (*brackets.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupSession(sessionID)
}

func (s *bracketService) UpdateMatch(sessionID uuid.UUID, index int, upd brackets.MatchUpdate) (*brackets.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.UpdateMatch(index, upd); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *bracketService) SwapPlayer(sessionID uuid.UUID, index int, slot brackets.Slot, playerID *uuid.UUID) (*brackets.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SwapPlayer(index, slot, playerID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *bracketService) DeleteMatch(sessionID uuid.UUID, index int) (*brackets.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.DeleteMatch(index); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *bracketService) AvailableParticipants(sessionID uuid.UUID, index int, slot brackets.Slot) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupSession(sessionID)
	if err != nil {
		return nil, err
	}
	return session.AvailableParticipants(index, slot)
}

func (s *bracketService) Validate(sessionID uuid.UUID) ([]brackets.Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupSession(sessionID)
	if err != nil {
		return nil, err
	}
	return brackets.Validate(session.Matches), nil
}

// Save persists the session's match list with replace-all semantics: delete
// every existing match row for the tournament, then bulk-insert the edited
// list with derived match codes. The two steps are not atomic as a pair; a
// failure is reported with the phase it happened in, and the in-memory
// session is kept so the admin can retry without redoing edits.
func (s *bracketService) Save(ctx context.Context, sessionID uuid.UUID) ([]models.Match, error) {
	s.mu.Lock()
	session, err := s.lookupSession(sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	tournamentID := session.TournamentID
	matches := make([]models.Match, len(session.Matches))
	copy(matches, session.Matches)
	s.mu.Unlock()

	for i := range matches {
		code := brackets.MatchCode(tournamentID, matches[i].Round, matches[i].MatchNumber)
		matches[i].MatchCode = &code
	}

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	deleted, err := s.matchRepo.DeleteByTournament(ctx, tournamentID)
	if err != nil {
		s.logger.Error("bracket save failed before insert",
			slog.String("tournament_id", tournamentID.String()),
			slog.Any("error", err))
		return nil, &PersistenceError{Phase: PhaseDelete, Err: err}
	}

	saved, err := s.matchRepo.InsertAll(ctx, matches)
	if err != nil {
		// The delete already ran; the tournament may now have zero matches
		// until a retry succeeds.
		s.logger.Error("bracket save failed during insert",
			slog.String("tournament_id", tournamentID.String()),
			slog.Int64("deleted_rows", deleted),
			slog.Any("error", err))
		return nil, &PersistenceError{Phase: PhaseInsert, Err: err}
	}

	s.logger.Info("bracket saved",
		slog.String("tournament_id", tournamentID.String()),
		slog.Int64("deleted_rows", deleted),
		slog.Int("inserted_rows", len(saved)))

	if s.hub != nil {
		s.hub.BroadcastToTournament(tournamentID, brackets.Event{
			Type:         brackets.EventBracketSaved,
			TournamentID: tournamentID.String(),
			Payload:      map[string]int{"matches": len(saved)},
		})
	}

	return saved, nil
}

func (s *bracketService) DiscardSession(sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// lookupSession must be called with s.mu held.
func (s *bracketService) lookupSession(sessionID uuid.UUID) (*brackets.EditSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
