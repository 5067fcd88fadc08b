package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metrix-gg/metrix-server/brackets"
	"github.com/metrix-gg/metrix-server/models"
	"github.com/metrix-gg/metrix-server/services"
)

type fakeBracketService struct {
	session *brackets.EditSession
	saved   []models.Match

	startErr error
	saveErr  error
	swapErr  error
}

func (f *fakeBracketService) StartSession(ctx context.Context, tournamentID uuid.UUID) (*brackets.EditSession, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.session, nil
}

func (f *fakeBracketService) GetSession(sessionID uuid.UUID) (*brackets.EditSession, error) {
	if f.session == nil || f.session.ID != sessionID {
		return nil, services.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeBracketService) UpdateMatch(sessionID uuid.UUID, index int, upd brackets.MatchUpdate) (*brackets.EditSession, error) {
	if f.session == nil || f.session.ID != sessionID {
		return nil, services.ErrSessionNotFound
	}
	if err := f.session.UpdateMatch(index, upd); err != nil {
		return nil, err
	}
	return f.session, nil
}

func (f *fakeBracketService) SwapPlayer(sessionID uuid.UUID, index int, slot brackets.Slot, playerID *uuid.UUID) (*brackets.EditSession, error) {
	if f.swapErr != nil {
		return nil, f.swapErr
	}
	return f.session, nil
}

func (f *fakeBracketService) DeleteMatch(sessionID uuid.UUID, index int) (*brackets.EditSession, error) {
	if f.session == nil || f.session.ID != sessionID {
		return nil, services.ErrSessionNotFound
	}
	if err := f.session.DeleteMatch(index); err != nil {
		return nil, err
	}
	return f.session, nil
}

func (f *fakeBracketService) AvailableParticipants(sessionID uuid.UUID, index int, slot brackets.Slot) ([]models.Participant, error) {
	if f.session == nil || f.session.ID != sessionID {
		return nil, services.ErrSessionNotFound
	}
	return f.session.AvailableParticipants(index, slot)
}

func (f *fakeBracketService) Validate(sessionID uuid.UUID) ([]brackets.Violation, error) {
	if f.session == nil || f.session.ID != sessionID {
		return nil, services.ErrSessionNotFound
	}
	return brackets.Validate(f.session.Matches), nil
}

func (f *fakeBracketService) Save(ctx context.Context, sessionID uuid.UUID) ([]models.Match, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.saved, nil
}

func (f *fakeBracketService) DiscardSession(sessionID uuid.UUID) error {
	if f.session == nil || f.session.ID != sessionID {
		return services.ErrSessionNotFound
	}
	f.session = nil
	return nil
}

func newBracketRouter(svc services.BracketService) *chi.Mux {
	h := NewBracketHandler(svc)
	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/bracket/sessions", h.StartSessionHandler)
	router.Route("/bracket/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSessionHandler)
		r.Delete("/", h.DiscardSessionHandler)
		r.Post("/validate", h.ValidateHandler)
		r.Post("/save", h.SaveHandler)
		r.Route("/matches/{matchIndex}", func(r chi.Router) {
			r.Patch("/", h.UpdateMatchHandler)
			r.Delete("/", h.DeleteMatchHandler)
			r.Put("/players", h.SwapPlayerHandler)
			r.Get("/available", h.AvailableParticipantsHandler)
		})
	})
	return router
}

func newSessionFixture(t *testing.T) *brackets.EditSession {
	t.Helper()

	tid := uuid.New()
	participants := []models.Participant{
		{ID: uuid.New(), TournamentID: tid, DisplayName: "NightShade"},
		{ID: uuid.New(), TournamentID: tid, DisplayName: "PixelFury"},
	}
	gen := brackets.NewSingleEliminationGenerator(nil)
	matches, err := gen.Generate(context.Background(), brackets.GenerateParams{
		TournamentID: tid,
		Participants: participants,
	})
	require.NoError(t, err)

	return brackets.NewEditSession(tid, participants, matches)
}

func TestStartSessionHandler(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{session: session})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/"+session.TournamentID.String()+"/bracket/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Session brackets.EditSession `json:"session"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, session.ID, body.Session.ID)
	assert.Len(t, body.Session.Matches, 1)
}

func TestStartSessionHandlerTournamentMissing(t *testing.T) {
	router := newBracketRouter(&fakeBracketService{startErr: services.ErrTournamentNotFound})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/"+uuid.NewString()+"/bracket/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSessionHandlerRejectsBadUUID(t *testing.T) {
	router := newBracketRouter(&fakeBracketService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/not-a-uuid/bracket/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMatchHandlerPartialBody(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{session: session})

	payload := []byte(`{"status":"live"}`)
	req := httptest.NewRequest(http.MethodPatch, "/bracket/sessions/"+session.ID.String()+"/matches/0", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MatchStatusLive, session.Matches[0].Status)
}

func TestUpdateMatchHandlerIndexOutOfRange(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{session: session})

	req := httptest.NewRequest(http.MethodPatch, "/bracket/sessions/"+session.ID.String()+"/matches/99", bytes.NewReader([]byte(`{"status":"live"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwapPlayerHandlerRejectsUnknownSlot(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{session: session})

	payload := []byte(`{"slot":"coach","player_id":null}`)
	req := httptest.NewRequest(http.MethodPut, "/bracket/sessions/"+session.ID.String()+"/matches/0/players", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailableParticipantsHandlerRequiresSlot(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{session: session})

	req := httptest.NewRequest(http.MethodGet, "/bracket/sessions/"+session.ID.String()+"/matches/0/available", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateHandlerReturnsEmptyArray(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{session: session})

	req := httptest.NewRequest(http.MethodPost, "/bracket/sessions/"+session.ID.String()+"/validate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"violations":[]}`, rec.Body.String())
}

func TestSaveHandlerReportsPersistencePhase(t *testing.T) {
	session := newSessionFixture(t)
	router := newBracketRouter(&fakeBracketService{
		session: session,
		saveErr: &services.PersistenceError{Phase: services.PhaseInsert, Err: assert.AnError},
	})

	req := httptest.NewRequest(http.MethodPost, "/bracket/sessions/"+session.ID.String()+"/save", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		Error struct {
			Phase string `json:"phase"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, string(services.PhaseInsert), body.Error.Phase)
}

func TestDiscardSessionHandler(t *testing.T) {
	session := newSessionFixture(t)
	svc := &fakeBracketService{session: session}
	router := newBracketRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/bracket/sessions/"+session.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, svc.session)
}
