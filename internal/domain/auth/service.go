package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type StoreAPI interface {
	FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

type Service struct {
	Store     StoreAPI
	JWTSecret string
	TokenTTL  time.Duration
}

func NewService(store StoreAPI, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{Store: store, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

// Login verifies credentials and issues a signed token. A missing user and a
// wrong password return the same error so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, AuthUser, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", AuthUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", AuthUser{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", AuthUser{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.JWTSecret, Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, s.TokenTTL)
	if err != nil {
		return "", AuthUser{}, err
	}

	_ = s.Store.UpdateLastLogin(ctx, user.ID, time.Now().UTC())

	return token, user, nil
}
