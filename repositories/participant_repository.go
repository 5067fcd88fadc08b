package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/metrix-gg/metrix-server/models"
)

var (
	ErrParticipantNotFound          = errors.New("participant not found")
	ErrParticipantConflict          = errors.New("user is already registered for this tournament")
	ErrParticipantUserInvalid       = errors.New("participant references an unknown user")
	ErrParticipantTournamentInvalid = errors.New("participant references an unknown tournament")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Participant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (id, user_id, tournament_id, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		p.ID,
		p.UserID,
		p.TournamentID,
		p.DisplayName,
	).Scan(&p.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "participants_user_id_tournament_id_key":
				return ErrParticipantConflict
			case "participants_user_id_fkey":
				return ErrParticipantUserInvalid
			case "participants_tournament_id_fkey":
				return ErrParticipantTournamentInvalid
			}
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Participant, error) {
	query := `
		SELECT id, user_id, tournament_id, display_name, created_at
		FROM participants
		WHERE tournament_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.UserID, &p.TournamentID, &p.DisplayName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during participant rows iteration: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
