package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, email, role, status, created_at
    FROM users
    WHERE status = 'active'
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Role, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, role, status, created_at
    FROM users
    WHERE id = $1
  `, userID).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Role, &e.Status, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}
