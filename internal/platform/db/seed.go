package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/config"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	role      string
}

var demoEmployees = []seedUser{
	{"Maya", "Lindqvist", "maya.lindqvist@example.com", auth.RoleHR},
	{"Jonas", "Berg", "jonas.berg@example.com", auth.RoleManager},
	{"Priya", "Nair", "priya.nair@example.com", auth.RoleEmployee},
	{"Tomas", "Keller", "tomas.keller@example.com", auth.RoleEmployee},
}

// Seed inserts the bootstrap admin account and, when enabled, a small set of
// demo employees. Existing rows are left untouched so the seed can run on
// every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	adminEmail := strings.TrimSpace(cfg.SeedAdminEmail)
	adminPassword := cfg.SeedAdminPassword
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	if err := insertUser(ctx, pool, seedUser{"System", "Admin", adminEmail, auth.RoleAdmin}, adminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seed admin ensured", "email", adminEmail)

	if !cfg.SeedDemoEmployees {
		return nil
	}
	for _, user := range demoEmployees {
		if err := insertUser(ctx, pool, user, "password123"); err != nil {
			return fmt.Errorf("seed %s: %w", user.email, err)
		}
	}
	slog.Info("seed demo employees ensured", "count", len(demoEmployees))
	return nil
}

func insertUser(ctx context.Context, pool *pgxpool.Pool, user seedUser, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (first_name, last_name, email, password_hash, role, status)
    VALUES ($1, $2, $3, $4, $5, 'active')
    ON CONFLICT (email) DO NOTHING
  `, user.firstName, user.lastName, user.email, hash, user.role)
	return err
}
