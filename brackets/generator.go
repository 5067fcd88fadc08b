package brackets

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
)

// ErrInsufficientParticipants is reported when a bracket is requested for
// fewer than two entrants. No partial bracket is produced.
var ErrInsufficientParticipants = errors.New("not enough participants to generate a bracket (minimum 2)")

type GenerateParams struct {
	TournamentID uuid.UUID
	Participants []models.Participant
}

// Generator builds the full in-memory match list for a tournament. The result
// is ephemeral; callers own it until it is persisted.
type Generator interface {
	Generate(ctx context.Context, params GenerateParams) ([]models.Match, error)

	Name() string
}
