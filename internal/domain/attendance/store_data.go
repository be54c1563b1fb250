package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("attendance record not found")

const attendanceColumns = `
    id, user_id, date, check_in_time, check_out_time, status,
    COALESCE(notes, ''), created_at, updated_at
`

func scanAttendance(row pgx.Row) (Attendance, error) {
	var rec Attendance
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func (s *Store) Get(ctx context.Context, recordID string) (Attendance, error) {
	rec, err := scanAttendance(s.DB.QueryRow(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE id = $1", recordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Attendance{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) FindByUserAndDate(ctx context.Context, userID string, day time.Time) (Attendance, error) {
	rec, err := scanAttendance(s.DB.QueryRow(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE user_id = $1 AND date = $2::date",
		userID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return Attendance{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) List(ctx context.Context, userID string, day *time.Time) ([]Attendance, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance WHERE 1=1"
	args := []any{}

	if userID != "" {
		args = append(args, userID)
		query += " AND user_id = $1"
	}
	if day != nil {
		args = append(args, *day)
		if len(args) == 1 {
			query += " AND date = $1::date"
		} else {
			query += " AND date = $2::date"
		}
	}
	query += " ORDER BY date DESC, user_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) ListByDate(ctx context.Context, day time.Time) ([]Attendance, error) {
	return s.List(ctx, "", &day)
}

func (s *Store) Create(ctx context.Context, record Attendance) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (user_id, date, check_in_time, check_out_time, status, notes)
    VALUES ($1,$2::date,$3,$4,$5,NULLIF($6,''))
    RETURNING id
  `, record.UserID, record.Date, record.CheckInTime, record.CheckOutTime,
		record.Status, record.Notes).Scan(&id)
	return id, err
}

func (s *Store) SetCheckOut(ctx context.Context, recordID string, at time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance SET check_out_time = $1, updated_at = now() WHERE id = $2
  `, at, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTimes writes only the provided fields; nil means keep the stored value.
func (s *Store) UpdateTimes(ctx context.Context, recordID string, checkIn, checkOut *time.Time, notes *string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance
    SET check_in_time = COALESCE($1, check_in_time),
        check_out_time = COALESCE($2, check_out_time),
        notes = COALESCE($3, notes),
        updated_at = now()
    WHERE id = $4
  `, checkIn, checkOut, notes, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
