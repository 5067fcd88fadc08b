package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus mirrors the tournament_status ENUM in the database.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentLive      TournamentStatus = "live"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCanceled  TournamentStatus = "canceled"
)

type Tournament struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Game        string           `json:"game" db:"game"`
	Description *string          `json:"description,omitempty" db:"description"`
	OrganizerID uuid.UUID        `json:"organizer_id" db:"organizer_id"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	Status      TournamentStatus `json:"status" db:"status"`
	MaxPlayers  int              `json:"max_players" db:"max_players"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	BannerKey   *string          `json:"-" db:"banner_key"`
	BannerURL   *string          `json:"banner_url,omitempty" db:"-"`

	// Related entities, loaded on demand.
	Participants []Participant `json:"participants,omitempty" db:"-"`
	Matches      []Match       `json:"matches,omitempty" db:"-"`
}
