package brackets

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, participantCount int) *EditSession {
	t.Helper()
	tournamentID := uuid.New()
	participants := makeParticipants(t, tournamentID, participantCount)

	gen := NewSingleEliminationGenerator(rand.New(rand.NewSource(7)))
	matches, err := gen.Generate(context.Background(), GenerateParams{
		TournamentID: tournamentID,
		Participants: participants,
	})
	require.NoError(t, err)

	return NewEditSession(tournamentID, participants, matches)
}

func TestAvailableParticipantsKeepsOwnOccupant(t *testing.T) {
	// 4 entrants fill round 1 completely, so the only participant available
	// for a round-1 slot is whoever already occupies it.
	sess := newTestSession(t, 4)

	available, err := sess.AvailableParticipants(0, SlotPlayer1)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, *sess.Matches[0].Player1ID, available[0].ID)

	// The same match's other slot must not offer player1's occupant.
	available, err = sess.AvailableParticipants(0, SlotPlayer2)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, *sess.Matches[0].Player2ID, available[0].ID)
}

func TestAvailableParticipantsAfterVacating(t *testing.T) {
	sess := newTestSession(t, 4)
	vacated := *sess.Matches[1].Player2ID

	require.NoError(t, sess.SwapPlayer(1, SlotPlayer2, nil))

	// The vacated participant is now free for any slot, alongside the
	// slot's own occupant.
	available, err := sess.AvailableParticipants(0, SlotPlayer1)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(available))
	for _, p := range available {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{*sess.Matches[0].Player1ID, vacated}, ids)

	// The empty final offers only the unassigned participant.
	finalIndex := len(sess.Matches) - 1
	available, err = sess.AvailableParticipants(finalIndex, SlotPlayer1)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, vacated, available[0].ID)
}

func TestSwapPlayerAssignsAndVacates(t *testing.T) {
	sess := newTestSession(t, 5)

	free := *sess.Matches[0].Player1ID
	require.NoError(t, sess.SwapPlayer(0, SlotPlayer1, nil))
	assert.Nil(t, sess.Matches[0].Player1ID)

	// Reassign the freed participant into a bye slot of another match.
	byeIndex := -1
	for i, m := range sess.Matches {
		if m.Round == 1 && m.Player1ID != nil && m.Player2ID == nil {
			byeIndex = i
			break
		}
	}
	require.NotEqual(t, -1, byeIndex, "expected a bye with 5 entrants")

	require.NoError(t, sess.SwapPlayer(byeIndex, SlotPlayer2, &free))
	require.NotNil(t, sess.Matches[byeIndex].Player2ID)
	assert.Equal(t, free, *sess.Matches[byeIndex].Player2ID)
}

func TestUpdateMatchMergesOnlyProvidedFields(t *testing.T) {
	sess := newTestSession(t, 4)
	before := sess.Matches[0]

	scheduled := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)
	spectator := uuid.New()
	status := models.MatchStatusLive

	err := sess.UpdateMatch(0, MatchUpdate{
		ScheduledTime: &scheduled,
		SpectatorID:   &spectator,
		Status:        &status,
	})
	require.NoError(t, err)

	after := sess.Matches[0]
	assert.Equal(t, before.Player1ID, after.Player1ID)
	assert.Equal(t, before.Player2ID, after.Player2ID)
	assert.Equal(t, before.MatchNumber, after.MatchNumber)
	require.NotNil(t, after.ScheduledTime)
	assert.True(t, scheduled.Equal(*after.ScheduledTime))
	require.NotNil(t, after.SpectatorID)
	assert.Equal(t, spectator, *after.SpectatorID)
	assert.Equal(t, models.MatchStatusLive, after.Status)

	// Untouched matches stay untouched.
	assert.Equal(t, models.MatchStatusScheduled, sess.Matches[1].Status)
	assert.Nil(t, sess.Matches[1].SpectatorID)
}

func TestDeleteMatchDoesNotRenumber(t *testing.T) {
	sess := newTestSession(t, 5)
	require.Len(t, sess.Matches, 7)

	survivors := make([]models.Match, 0, len(sess.Matches)-1)
	survivors = append(survivors, sess.Matches[:2]...)
	survivors = append(survivors, sess.Matches[3:]...)

	require.NoError(t, sess.DeleteMatch(2))
	require.Len(t, sess.Matches, 6)
	assert.Equal(t, survivors, sess.Matches)

	// Match numbers keep their gap: 1, 2, 4, 5, 6, 7.
	numbers := make([]int, 0, len(sess.Matches))
	for _, m := range sess.Matches {
		numbers = append(numbers, m.MatchNumber)
	}
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7}, numbers)
}

func TestSessionIndexAndSlotErrors(t *testing.T) {
	sess := newTestSession(t, 4)

	assert.ErrorIs(t, sess.UpdateMatch(-1, MatchUpdate{}), ErrMatchIndexOutOfRange)
	assert.ErrorIs(t, sess.UpdateMatch(len(sess.Matches), MatchUpdate{}), ErrMatchIndexOutOfRange)
	assert.ErrorIs(t, sess.DeleteMatch(99), ErrMatchIndexOutOfRange)
	assert.ErrorIs(t, sess.SwapPlayer(0, Slot("coach"), nil), ErrUnknownSlot)

	_, err := sess.AvailableParticipants(0, Slot("coach"))
	assert.ErrorIs(t, err, ErrUnknownSlot)
	_, err = sess.AvailableParticipants(42, SlotPlayer1)
	assert.ErrorIs(t, err, ErrMatchIndexOutOfRange)

	_, err = ParseSlot("player2")
	assert.NoError(t, err)
	_, err = ParseSlot("referee")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}
