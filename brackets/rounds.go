package brackets

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/models"
)

// GroupByRound buckets matches by round, preserving their relative order
// within each round.
func GroupByRound(matches []models.Match) map[int][]models.Match {
	grouped := make(map[int][]models.Match)
	for _, m := range matches {
		grouped[m.Round] = append(grouped[m.Round], m)
	}
	return grouped
}

// Rounds returns the distinct round numbers in ascending order.
func Rounds(matches []models.Match) []int {
	seen := make(map[int]bool)
	var rounds []int
	for _, m := range matches {
		if !seen[m.Round] {
			seen[m.Round] = true
			rounds = append(rounds, m.Round)
		}
	}
	sort.Ints(rounds)
	return rounds
}

// MaxRound returns the highest round number present, or 0 for an empty list.
func MaxRound(matches []models.Match) int {
	max := 0
	for _, m := range matches {
		if m.Round > max {
			max = m.Round
		}
	}
	return max
}

// RoundName labels a round counting backward from the final: Finals,
// Semi-Finals, Quarter-Finals, then Round of 16/32/64. Earlier rounds fall
// back to "Round {n}".
func RoundName(round, maxRound int) string {
	switch maxRound - round {
	case 0:
		return "Finals"
	case 1:
		return "Semi-Finals"
	case 2:
		return "Quarter-Finals"
	case 3:
		return "Round of 16"
	case 4:
		return "Round of 32"
	case 5:
		return "Round of 64"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

// MatchCode derives the display code persisted with each match:
// the first 8 characters of the tournament id, then round and match number.
func MatchCode(tournamentID uuid.UUID, round, matchNumber int) string {
	return fmt.Sprintf("%s-R%d-M%d", tournamentID.String()[:8], round, matchNumber)
}
