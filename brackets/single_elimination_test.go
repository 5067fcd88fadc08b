package brackets

import (
	"context"
	"math/rand"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeParticipants(t *testing.T, tournamentID uuid.UUID, n int) []models.Participant {
	t.Helper()
	participants := make([]models.Participant, n)
	for i := range participants {
		participants[i] = models.Participant{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			TournamentID: tournamentID,
			DisplayName:  gofakeit.Gamertag(),
		}
	}
	return participants
}

func TestGenerateBracketShape(t *testing.T) {
	testCases := []struct {
		name            string
		participants    int
		matchesPerRound []int
	}{
		{"2 participants", 2, []int{1}},
		{"3 participants", 3, []int{2, 1}},
		{"4 participants", 4, []int{2, 1}},
		{"5 participants", 5, []int{4, 2, 1}},
		{"7 participants", 7, []int{4, 2, 1}},
		{"8 participants", 8, []int{4, 2, 1}},
		{"16 participants", 16, []int{8, 4, 2, 1}},
		{"33 participants", 33, []int{32, 16, 8, 4, 2, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tournamentID := uuid.New()
			gen := NewSingleEliminationGenerator(nil)

			matches, err := gen.Generate(context.Background(), GenerateParams{
				TournamentID: tournamentID,
				Participants: makeParticipants(t, tournamentID, tc.participants),
			})
			require.NoError(t, err)

			grouped := GroupByRound(matches)
			require.Len(t, grouped, len(tc.matchesPerRound))
			for i, want := range tc.matchesPerRound {
				assert.Len(t, grouped[i+1], want, "round %d", i+1)
			}

			total := 0
			for _, count := range tc.matchesPerRound {
				total += count
			}
			require.Len(t, matches, total)

			// Match numbers are dense from 1 in round-major order.
			for i, m := range matches {
				assert.Equal(t, i+1, m.MatchNumber)
				assert.Equal(t, tournamentID, m.TournamentID)
				assert.Equal(t, models.MatchStatusScheduled, m.Status)
				assert.Nil(t, m.ScheduledTime)
				assert.Nil(t, m.SpectatorID)
				if i > 0 {
					assert.GreaterOrEqual(t, m.Round, matches[i-1].Round)
				}
			}
		})
	}
}

func TestGenerateBracketTooFewParticipants(t *testing.T) {
	gen := NewSingleEliminationGenerator(nil)
	tournamentID := uuid.New()

	for _, n := range []int{0, 1} {
		matches, err := gen.Generate(context.Background(), GenerateParams{
			TournamentID: tournamentID,
			Participants: makeParticipants(t, tournamentID, n),
		})
		assert.ErrorIs(t, err, ErrInsufficientParticipants, "n=%d", n)
		assert.Nil(t, matches)
	}
}

func TestGenerateBracketRoundOneSeeding(t *testing.T) {
	testCases := []struct {
		participants int
		byes         int
	}{
		{2, 0},
		{4, 0},
		{5, 3},
		{6, 2},
		{9, 7},
	}

	for _, tc := range testCases {
		tournamentID := uuid.New()
		participants := makeParticipants(t, tournamentID, tc.participants)
		gen := NewSingleEliminationGenerator(nil)

		matches, err := gen.Generate(context.Background(), GenerateParams{
			TournamentID: tournamentID,
			Participants: participants,
		})
		require.NoError(t, err)

		seeded := make(map[uuid.UUID]int)
		byes := 0
		for _, m := range matches {
			if m.Round != 1 {
				// Later rounds stay empty until winners are entered.
				assert.Nil(t, m.Player1ID)
				assert.Nil(t, m.Player2ID)
				continue
			}
			if m.Player1ID != nil {
				seeded[*m.Player1ID]++
			}
			if m.Player2ID == nil {
				byes++
			} else {
				seeded[*m.Player2ID]++
			}
			if m.Player1ID == nil {
				byes++
			}
		}

		require.Len(t, seeded, tc.participants, "n=%d", tc.participants)
		for _, p := range participants {
			assert.Equal(t, 1, seeded[p.ID], "participant %s seeded once", p.DisplayName)
		}
		assert.Equal(t, tc.byes, byes, "n=%d", tc.participants)
	}
}

func TestGenerateBracketSeededRNGIsDeterministic(t *testing.T) {
	tournamentID := uuid.New()
	participants := makeParticipants(t, tournamentID, 8)
	params := GenerateParams{TournamentID: tournamentID, Participants: participants}

	first, err := NewSingleEliminationGenerator(rand.New(rand.NewSource(42))).Generate(context.Background(), params)
	require.NoError(t, err)
	second, err := NewSingleEliminationGenerator(rand.New(rand.NewSource(42))).Generate(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateBracketShapeIsStableAcrossRuns(t *testing.T) {
	tournamentID := uuid.New()
	participants := makeParticipants(t, tournamentID, 13)
	params := GenerateParams{TournamentID: tournamentID, Participants: participants}
	gen := NewSingleEliminationGenerator(nil)

	first, err := gen.Generate(context.Background(), params)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Round, second[i].Round)
		assert.Equal(t, first[i].MatchNumber, second[i].MatchNumber)
	}
}
