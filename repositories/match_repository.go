package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/metrix-gg/metrix-server/models"
)

var (
	ErrMatchTournamentInvalid  = errors.New("match references an unknown tournament")
	ErrMatchParticipantInvalid = errors.New("match references an unknown participant")
	ErrMatchNumberConflict     = errors.New("match number already used within this tournament")
)

// MatchRepository is the persistence boundary of the bracket subsystem.
// Saving a bracket is replace-all: DeleteByTournament followed by InsertAll.
// The two calls are not atomic as a pair; the caller owns that contract.
type MatchRepository interface {
	DeleteByTournament(ctx context.Context, tournamentID uuid.UUID) (int64, error)
	InsertAll(ctx context.Context, matches []models.Match) ([]models.Match, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, tournamentID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches for tournament %s: %w", tournamentID, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted match rows: %w", err)
	}
	return deleted, nil
}

const matchInsertColumns = 9

// InsertAll bulk-inserts the full match list in a single statement and
// returns copies carrying the generated ids.
func (r *postgresMatchRepository) InsertAll(ctx context.Context, matches []models.Match) ([]models.Match, error) {
	if len(matches) == 0 {
		return []models.Match{}, nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		INSERT INTO matches
			(tournament_id, round, match_number, player1_id, player2_id,
			 scheduled_time, spectator_id, status, match_code)
		VALUES `)

	args := make([]interface{}, 0, len(matches)*matchInsertColumns)
	for i, m := range matches {
		if i > 0 {
			queryBuilder.WriteString(", ")
		}
		queryBuilder.WriteString("(")
		for c := 1; c <= matchInsertColumns; c++ {
			if c > 1 {
				queryBuilder.WriteString(", ")
			}
			queryBuilder.WriteString("$")
			queryBuilder.WriteString(strconv.Itoa(i*matchInsertColumns + c))
		}
		queryBuilder.WriteString(")")
		args = append(args,
			m.TournamentID,
			m.Round,
			m.MatchNumber,
			m.Player1ID,
			m.Player2ID,
			m.ScheduledTime,
			m.SpectatorID,
			m.Status,
			m.MatchCode,
		)
	}
	queryBuilder.WriteString(" RETURNING id, created_at")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, r.handleMatchError(err)
	}
	defer rows.Close()

	inserted := make([]models.Match, len(matches))
	copy(inserted, matches)

	scanned := 0
	for rows.Next() {
		if scanned >= len(inserted) {
			return nil, fmt.Errorf("bulk insert returned more rows than the %d inserted matches", len(inserted))
		}
		if err := rows.Scan(&inserted[scanned].ID, &inserted[scanned].CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inserted match row: %w", err)
		}
		scanned++
	}
	if err := rows.Err(); err != nil {
		return nil, r.handleMatchError(err)
	}
	if scanned != len(inserted) {
		return nil, fmt.Errorf("bulk insert returned %d rows, expected %d", scanned, len(inserted))
	}
	return inserted, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Match, error) {
	query := `
		SELECT id, tournament_id, round, match_number, player1_id, player2_id,
		       scheduled_time, spectator_id, status, match_code, created_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY round ASC, match_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID,
			&m.TournamentID,
			&m.Round,
			&m.MatchNumber,
			&m.Player1ID,
			&m.Player2ID,
			&m.ScheduledTime,
			&m.SpectatorID,
			&m.Status,
			&m.MatchCode,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_player1_id_fkey", "matches_player2_id_fkey", "matches_spectator_id_fkey":
			return ErrMatchParticipantInvalid
		case "matches_tournament_id_match_number_key":
			return ErrMatchNumberConflict
		}
	}
	return err
}
