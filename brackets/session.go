package brackets

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
)

var (
	ErrMatchIndexOutOfRange = errors.New("match index out of range")
	ErrUnknownSlot          = errors.New("unknown player slot")
)

// Slot names one of the two player positions of a match.
type Slot string

const (
	SlotPlayer1 Slot = "player1"
	SlotPlayer2 Slot = "player2"
)

func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotPlayer1, SlotPlayer2:
		return Slot(s), nil
	default:
		return "", ErrUnknownSlot
	}
}

// MatchUpdate carries a partial edit of a match. Nil fields are left
// unchanged; vacating a player slot goes through SwapPlayer instead.
type MatchUpdate struct {
	Player1ID     *uuid.UUID          `json:"player1_id,omitempty"`
	Player2ID     *uuid.UUID          `json:"player2_id,omitempty"`
	ScheduledTime *time.Time          `json:"scheduled_time,omitempty"`
	SpectatorID   *uuid.UUID          `json:"spectator_id,omitempty"`
	Status        *models.MatchStatus `json:"status,omitempty"`
}

// EditSession owns the mutable match list for one admin editing pass: the
// entrants loaded at session start plus the generated (and since edited)
// matches. One session belongs to one editor; it carries no locking of its
// own and no hidden global state.
type EditSession struct {
	ID           uuid.UUID            `json:"id"`
	TournamentID uuid.UUID            `json:"tournament_id"`
	Participants []models.Participant `json:"participants"`
	Matches      []models.Match       `json:"matches"`
	CreatedAt    time.Time            `json:"created_at"`
}

func NewEditSession(tournamentID uuid.UUID, participants []models.Participant, matches []models.Match) *EditSession {
	return &EditSession{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Participants: participants,
		Matches:      matches,
		CreatedAt:    time.Now(),
	}
}

// UpdateMatch merges the non-nil fields of upd into the match at index.
// It performs no cross-match validation; the UI constrains player choices
// through AvailableParticipants, and Validate exists for callers that want
// an explicit check before saving.
func (s *EditSession) UpdateMatch(index int, upd MatchUpdate) error {
	if index < 0 || index >= len(s.Matches) {
		return ErrMatchIndexOutOfRange
	}
	m := &s.Matches[index]
	if upd.Player1ID != nil {
		id := *upd.Player1ID
		m.Player1ID = &id
	}
	if upd.Player2ID != nil {
		id := *upd.Player2ID
		m.Player2ID = &id
	}
	if upd.ScheduledTime != nil {
		t := *upd.ScheduledTime
		m.ScheduledTime = &t
	}
	if upd.SpectatorID != nil {
		id := *upd.SpectatorID
		m.SpectatorID = &id
	}
	if upd.Status != nil {
		m.Status = *upd.Status
	}
	return nil
}

// SwapPlayer assigns playerID to the given slot of the match at index.
// A nil playerID vacates the slot.
func (s *EditSession) SwapPlayer(index int, slot Slot, playerID *uuid.UUID) error {
	if index < 0 || index >= len(s.Matches) {
		return ErrMatchIndexOutOfRange
	}
	var assigned *uuid.UUID
	if playerID != nil {
		id := *playerID
		assigned = &id
	}
	switch slot {
	case SlotPlayer1:
		s.Matches[index].Player1ID = assigned
	case SlotPlayer2:
		s.Matches[index].Player2ID = assigned
	default:
		return ErrUnknownSlot
	}
	return nil
}

// DeleteMatch removes the match at index from the session. Surviving matches
// keep their original match numbers; the list is not renumbered and the round
// structure is not rebalanced.
func (s *EditSession) DeleteMatch(index int) error {
	if index < 0 || index >= len(s.Matches) {
		return ErrMatchIndexOutOfRange
	}
	s.Matches = append(s.Matches[:index], s.Matches[index+1:]...)
	return nil
}

// AvailableParticipants returns the entrants that may be placed into the
// given slot of the match at index: everyone not already assigned to a player
// slot anywhere in the session, except that the slot's current occupant stays
// in the pool so the UI can keep showing the existing selection.
func (s *EditSession) AvailableParticipants(index int, slot Slot) ([]models.Participant, error) {
	if index < 0 || index >= len(s.Matches) {
		return nil, ErrMatchIndexOutOfRange
	}
	if slot != SlotPlayer1 && slot != SlotPlayer2 {
		return nil, ErrUnknownSlot
	}

	taken := make(map[uuid.UUID]bool, len(s.Matches)*2)
	for i, m := range s.Matches {
		if m.Player1ID != nil && !(i == index && slot == SlotPlayer1) {
			taken[*m.Player1ID] = true
		}
		if m.Player2ID != nil && !(i == index && slot == SlotPlayer2) {
			taken[*m.Player2ID] = true
		}
	}

	available := make([]models.Participant, 0, len(s.Participants))
	for _, p := range s.Participants {
		if !taken[p.ID] {
			available = append(available, p)
		}
	}
	return available, nil
}
