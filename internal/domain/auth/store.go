package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

var ErrUserNotFound = errors.New("user not found")

type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	Status       string
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, first_name, last_name, role, status
    FROM users
    WHERE lower(email) = lower($1) AND status = 'active'
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Role, &user.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return AuthUser{}, ErrUserNotFound
	}
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", at, userID)
	return err
}
