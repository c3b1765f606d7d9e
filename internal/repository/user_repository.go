package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marinai/marinai-backend/internal/model"
)

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByUsername retrieves a user by their unique email address.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, indivname, hashed_password, profile_img_url, disabled, created_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.IndivName, &u.PasswordHash, &u.ProfileImgURL, &u.Disabled, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (username, indivname, hashed_password, profile_img_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Username, u.IndivName, u.PasswordHash, u.ProfileImgURL,
	).Scan(&u.ID, &u.CreatedAt)
}

// SetDisabled toggles the soft-delete flag of a user.
func (r *UserRepository) SetDisabled(ctx context.Context, id int, disabled bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET disabled = $1 WHERE id = $2`, disabled, id,
	)
	return err
}
