package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a confirmed tournament entrant. Identity is UserID; the
// bracket subsystem never mutates participants after loading them.
type Participant struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
