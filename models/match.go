package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus mirrors the match_status ENUM in the database.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
)

// Match is one slot of a tournament bracket. Round-1 matches carry the seeded
// players; later rounds are created empty and filled by a separate admin
// workflow. A nil Player2ID on a round-1 match is a bye.
type Match struct {
	ID            int         `json:"id,omitempty" db:"id"`
	TournamentID  uuid.UUID   `json:"tournament_id" db:"tournament_id"`
	Round         int         `json:"round" db:"round"`
	MatchNumber   int         `json:"match_number" db:"match_number"`
	Player1ID     *uuid.UUID  `json:"player1_id" db:"player1_id"`
	Player2ID     *uuid.UUID  `json:"player2_id" db:"player2_id"`
	ScheduledTime *time.Time  `json:"scheduled_time,omitempty" db:"scheduled_time"`
	SpectatorID   *uuid.UUID  `json:"spectator_id,omitempty" db:"spectator_id"`
	Status        MatchStatus `json:"status" db:"status"`
	MatchCode     *string     `json:"match_code,omitempty" db:"match_code"`
	CreatedAt     time.Time   `json:"created_at,omitempty" db:"created_at"`
}
