package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/metrix-gg/metrix-server/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListActiveSpectators(ctx context.Context) ([]models.User, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, nickname, role, is_active, created_at
		FROM users
		WHERE email = $1`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Nickname,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user by email: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepository) ListActiveSpectators(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, password_hash, nickname, role, is_active, created_at
		FROM users
		WHERE role = $1 AND is_active = TRUE
		ORDER BY nickname ASC`

	rows, err := r.db.QueryContext(ctx, query, models.RoleSpectator)
	if err != nil {
		return nil, fmt.Errorf("failed to query active spectators: %w", err)
	}
	defer rows.Close()

	spectators := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nickname, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan spectator row: %w", err)
		}
		spectators = append(spectators, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during spectator rows iteration: %w", err)
	}
	return spectators, nil
}
