package brackets

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanBracket(t *testing.T) {
	tournamentID := uuid.New()
	gen := NewSingleEliminationGenerator(nil)
	matches, err := gen.Generate(context.Background(), GenerateParams{
		TournamentID: tournamentID,
		Participants: makeParticipants(t, tournamentID, 6),
	})
	require.NoError(t, err)

	assert.Empty(t, Validate(matches))
}

func TestValidateDuplicatePlayerInRound(t *testing.T) {
	playerA := uuid.New()
	playerB := uuid.New()
	matches := []models.Match{
		{Round: 1, MatchNumber: 1, Player1ID: &playerA, Player2ID: &playerB},
		{Round: 1, MatchNumber: 2, Player1ID: &playerA},
		{Round: 2, MatchNumber: 3, Player1ID: &playerB}, // other round, allowed
	}

	violations := Validate(matches)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationDuplicatePlayer, violations[0].Code)
	assert.Equal(t, 1, violations[0].Round)
	assert.Equal(t, 2, violations[0].MatchNumber)
}

func TestValidateDuplicateMatchNumber(t *testing.T) {
	matches := []models.Match{
		{Round: 1, MatchNumber: 1},
		{Round: 1, MatchNumber: 1},
	}

	violations := Validate(matches)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationDuplicateMatchNumber, violations[0].Code)
}

func TestValidateSelfPairing(t *testing.T) {
	player := uuid.New()
	matches := []models.Match{
		{Round: 1, MatchNumber: 1, Player1ID: &player, Player2ID: &player},
	}

	violations := Validate(matches)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationSelfPairing, violations[0].Code)
}
