package services

import (
	"errors"
	"fmt"

	"github.com/metrix-gg/metrix-server/brackets"
)

// Shared service-level errors, mapped to HTTP statuses by the handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrSessionNotFound     = errors.New("bracket edit session not found")

	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentGameRequired    = errors.New("tournament game is required")
	ErrTournamentInvalidCapacity = errors.New("tournament max players must be at least 2")

	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthAccountDisabled    = errors.New("account is disabled")

	ErrBannerStorageDisabled = errors.New("banner storage is not configured")

	// ErrInsufficientParticipants is surfaced unchanged from the generator so
	// callers can treat it as a non-fatal warning.
	ErrInsufficientParticipants = brackets.ErrInsufficientParticipants
)

// PersistencePhase distinguishes where a replace-all save failed. The save is
// an explicit two-step sequence: a failure in the delete phase left the old
// bracket untouched, a failure in the insert phase may have left the
// tournament with no matches at all, and callers decide whether to retry.
type PersistencePhase string

const (
	PhaseDelete PersistencePhase = "delete"
	PhaseInsert PersistencePhase = "insert"
)

type PersistenceError struct {
	Phase PersistencePhase
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("bracket save failed during %s phase: %v", e.Phase, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
