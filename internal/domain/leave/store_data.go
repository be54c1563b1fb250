package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("leave request not found")

const requestColumns = `
    id, user_id, type, start_date, end_date, status,
    COALESCE(reason, ''), COALESCE(approved_by::text, ''), created_at, updated_at
`

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var req LeaveRequest
	err := row.Scan(&req.ID, &req.UserID, &req.Type, &req.StartDate, &req.EndDate,
		&req.Status, &req.Reason, &req.ApprovedByID, &req.CreatedAt, &req.UpdatedAt)
	return req, err
}

func (s *Store) ListRequests(ctx context.Context, userID, status string) ([]LeaveRequest, error) {
	query := "SELECT " + requestColumns + " FROM leave_requests WHERE 1=1"
	args := []any{}

	if userID != "" {
		args = append(args, userID)
		query += " AND user_id = $1"
	}
	if status != "" {
		args = append(args, status)
		if len(args) == 1 {
			query += " AND status = $1"
		} else {
			query += " AND status = $2"
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (LeaveRequest, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE id = $1", requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrNotFound
	}
	return req, err
}

func (s *Store) CreateRequest(ctx context.Context, req LeaveRequest) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (user_id, type, start_date, end_date, status, reason)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6,''))
    RETURNING id
  `, req.UserID, req.Type, req.StartDate, req.EndDate, req.Status, req.Reason).Scan(&id)
	return id, err
}

func (s *Store) SetDecision(ctx context.Context, requestID, status, approverID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, approved_by = $2, updated_at = now()
    WHERE id = $3
  `, status, approverID, requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRequest(ctx context.Context, requestID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListApprovedByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE user_id = $1 AND status = $2",
		userID, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) ListApprovedCovering(ctx context.Context, day time.Time) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE status = $1 AND start_date <= $2::date AND end_date >= $2::date
  `, StatusApproved, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
