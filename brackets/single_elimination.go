package brackets

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/metrix-gg/metrix-server/models"
)

// SingleEliminationGenerator seeds a randomized single-elimination bracket.
// The RNG is injectable so tests can pin the seeding; production callers pass
// nil and get a time-seeded source.
type SingleEliminationGenerator struct {
	rng *rand.Rand
}

func NewSingleEliminationGenerator(rng *rand.Rand) *SingleEliminationGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SingleEliminationGenerator{rng: rng}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate produces the flat, round-major match list for the given entrants:
// ceil(log2(n)) rounds, 2^rounds round-1 slots (missing opponents are byes),
// and match numbers assigned densely from 1 in generation order. Rounds past
// the first are created empty; winner advancement is a separate workflow.
func (g *SingleEliminationGenerator) Generate(ctx context.Context, params GenerateParams) ([]models.Match, error) {
	n := len(params.Participants)
	if n < 2 {
		return nil, ErrInsufficientParticipants
	}

	rounds := int(math.Ceil(math.Log2(float64(n))))
	totalSlots := 1 << uint(rounds)

	shuffled := make([]models.Participant, n)
	copy(shuffled, params.Participants)
	g.rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	matches := make([]models.Match, 0, totalSlots-1)
	matchNumber := 0

	for slot := 0; slot < totalSlots; slot += 2 {
		matchNumber++
		m := models.Match{
			TournamentID: params.TournamentID,
			Round:        1,
			MatchNumber:  matchNumber,
			Status:       models.MatchStatusScheduled,
		}
		if slot < n {
			id := shuffled[slot].ID
			m.Player1ID = &id
		}
		if slot+1 < n {
			id := shuffled[slot+1].ID
			m.Player2ID = &id
		}
		matches = append(matches, m)
	}

	previousRoundMatches := totalSlots / 2
	for r := 2; r <= rounds; r++ {
		count := (previousRoundMatches + 1) / 2
		for i := 0; i < count; i++ {
			matchNumber++
			matches = append(matches, models.Match{
				TournamentID: params.TournamentID,
				Round:        r,
				MatchNumber:  matchNumber,
				Status:       models.MatchStatusScheduled,
			})
		}
		previousRoundMatches = count
	}

	return matches, nil
}
