package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTournamentService(t *testing.T) (TournamentService, *fakeTournamentRepo, *fakeParticipantRepo, *fakeMatchRepo) {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo()
	participantRepo := newFakeParticipantRepo()
	matchRepo := &fakeMatchRepo{}
	svc := NewTournamentService(tournamentRepo, participantRepo, matchRepo, nil, testLogger())
	return svc, tournamentRepo, participantRepo, matchRepo
}

func TestCreateTournamentValidation(t *testing.T) {
	svc, _, _, _ := setupTournamentService(t)
	organizerID := uuid.New()

	testCases := []struct {
		name  string
		input CreateTournamentInput
		want  error
	}{
		{"missing name", CreateTournamentInput{Game: "CS2", MaxPlayers: 8}, ErrTournamentNameRequired},
		{"missing game", CreateTournamentInput{Name: "Weekly Cup", MaxPlayers: 8}, ErrTournamentGameRequired},
		{"capacity too small", CreateTournamentInput{Name: "Weekly Cup", Game: "CS2", MaxPlayers: 1}, ErrTournamentInvalidCapacity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), organizerID, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	tournament, err := svc.Create(context.Background(), organizerID, CreateTournamentInput{
		Name:       "Weekly Cup",
		Game:       "CS2",
		StartDate:  time.Now().Add(48 * time.Hour),
		MaxPlayers: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TournamentUpcoming, tournament.Status)
	assert.Equal(t, organizerID, tournament.OrganizerID)
	assert.NotEqual(t, uuid.Nil, tournament.ID)
}

func TestGetBracketViewGroupsNamedRounds(t *testing.T) {
	svc, tournamentRepo, participantRepo, matchRepo := setupTournamentService(t)

	tournamentID := uuid.New()
	tournamentRepo.tournaments[tournamentID] = &models.Tournament{
		ID:   tournamentID,
		Name: "Metrix Open",
		Game: "Dota 2",
	}
	participantRepo.byTournament[tournamentID] = []models.Participant{
		{ID: uuid.New(), TournamentID: tournamentID, DisplayName: "alpha"},
		{ID: uuid.New(), TournamentID: tournamentID, DisplayName: "bravo"},
	}
	matchRepo.stored = []models.Match{
		{ID: 1, TournamentID: tournamentID, Round: 1, MatchNumber: 1, Status: models.MatchStatusScheduled},
		{ID: 2, TournamentID: tournamentID, Round: 1, MatchNumber: 2, Status: models.MatchStatusScheduled},
		{ID: 3, TournamentID: tournamentID, Round: 2, MatchNumber: 3, Status: models.MatchStatusScheduled},
	}

	view, err := svc.GetBracketView(context.Background(), tournamentID)
	require.NoError(t, err)

	require.Len(t, view.Rounds, 2)
	assert.Equal(t, "Semi-Finals", view.Rounds[0].Name)
	assert.Equal(t, "Finals", view.Rounds[1].Name)
	assert.Len(t, view.Rounds[0].Matches, 2)
	assert.Len(t, view.Rounds[1].Matches, 1)
	assert.Len(t, view.Participants, 2)
}

func TestGetBracketViewTournamentNotFound(t *testing.T) {
	svc, _, _, _ := setupTournamentService(t)

	_, err := svc.GetBracketView(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestUploadBannerWithoutStorage(t *testing.T) {
	svc, _, _, _ := setupTournamentService(t)

	_, err := svc.UploadBanner(context.Background(), uuid.New(), "image/png", nil)
	assert.ErrorIs(t, err, ErrBannerStorageDisabled)
}
