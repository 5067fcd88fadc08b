package brackets

import (
	"testing"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/stretchr/testify/assert"
)

func TestRoundName(t *testing.T) {
	testCases := []struct {
		round    int
		maxRound int
		want     string
	}{
		{1, 1, "Finals"},
		{2, 2, "Finals"},
		{1, 2, "Semi-Finals"},
		{2, 4, "Quarter-Finals"},
		{1, 4, "Round of 16"},
		{2, 6, "Round of 32"},
		{1, 6, "Round of 64"},
		{1, 7, "Round 1"},
		{2, 8, "Round 2"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, RoundName(tc.round, tc.maxRound), "round %d of %d", tc.round, tc.maxRound)
	}
}

func TestGroupByRound(t *testing.T) {
	matches := []models.Match{
		{Round: 1, MatchNumber: 1},
		{Round: 1, MatchNumber: 2},
		{Round: 2, MatchNumber: 3},
	}

	grouped := GroupByRound(matches)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped[1], 2)
	assert.Len(t, grouped[2], 1)
	assert.Equal(t, 1, grouped[1][0].MatchNumber)
	assert.Equal(t, 2, grouped[1][1].MatchNumber)

	assert.Equal(t, []int{1, 2}, Rounds(matches))
	assert.Equal(t, 2, MaxRound(matches))
	assert.Equal(t, 0, MaxRound(nil))
}

func TestMatchCode(t *testing.T) {
	tournamentID := uuid.MustParse("a1b2c3d4-e5f6-4789-8abc-def012345678")

	assert.Equal(t, "a1b2c3d4-R1-M1", MatchCode(tournamentID, 1, 1))
	assert.Equal(t, "a1b2c3d4-R3-M12", MatchCode(tournamentID, 3, 12))
}
