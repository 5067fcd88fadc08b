package brackets

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
)

type ViolationCode string

const (
	ViolationDuplicatePlayer      ViolationCode = "duplicate_player"
	ViolationDuplicateMatchNumber ViolationCode = "duplicate_match_number"
	ViolationSelfPairing          ViolationCode = "self_pairing"
)

type Violation struct {
	Code        ViolationCode `json:"code"`
	Round       int           `json:"round"`
	MatchNumber int           `json:"match_number"`
	Message     string        `json:"message"`
}

// Validate reports latent bracket defects: a player appearing in more than
// one match of the same round, duplicate match numbers, and a match paired
// against itself. It is opt-in; neither the edit session nor the save path
// calls it implicitly, since manual edits that pass through these states are
// allowed.
func Validate(matches []models.Match) []Violation {
	var violations []Violation

	seenNumbers := make(map[int]bool, len(matches))
	playersByRound := make(map[int]map[uuid.UUID]int)

	for _, m := range matches {
		if seenNumbers[m.MatchNumber] {
			violations = append(violations, Violation{
				Code:        ViolationDuplicateMatchNumber,
				Round:       m.Round,
				MatchNumber: m.MatchNumber,
				Message:     fmt.Sprintf("match number %d is assigned more than once", m.MatchNumber),
			})
		}
		seenNumbers[m.MatchNumber] = true

		if m.Player1ID != nil && m.Player2ID != nil && *m.Player1ID == *m.Player2ID {
			violations = append(violations, Violation{
				Code:        ViolationSelfPairing,
				Round:       m.Round,
				MatchNumber: m.MatchNumber,
				Message:     fmt.Sprintf("match %d pairs participant %s against themselves", m.MatchNumber, m.Player1ID),
			})
		}

		round := playersByRound[m.Round]
		if round == nil {
			round = make(map[uuid.UUID]int)
			playersByRound[m.Round] = round
		}
		for _, playerID := range []*uuid.UUID{m.Player1ID, m.Player2ID} {
			if playerID == nil {
				continue
			}
			if firstMatch, ok := round[*playerID]; ok && firstMatch != m.MatchNumber {
				violations = append(violations, Violation{
					Code:        ViolationDuplicatePlayer,
					Round:       m.Round,
					MatchNumber: m.MatchNumber,
					Message:     fmt.Sprintf("participant %s appears in matches %d and %d of round %d", playerID, firstMatch, m.MatchNumber, m.Round),
				})
			} else if !ok {
				round[*playerID] = m.MatchNumber
			}
		}
	}

	return violations
}
