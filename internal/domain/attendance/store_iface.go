package attendance

import (
	"context"
	"time"
)

type StoreAPI interface {
	Get(ctx context.Context, recordID string) (Attendance, error)
	FindByUserAndDate(ctx context.Context, userID string, day time.Time) (Attendance, error)
	List(ctx context.Context, userID string, day *time.Time) ([]Attendance, error)
	ListByDate(ctx context.Context, day time.Time) ([]Attendance, error)
	Create(ctx context.Context, record Attendance) (string, error)
	SetCheckOut(ctx context.Context, recordID string, at time.Time) error
	UpdateTimes(ctx context.Context, recordID string, checkIn, checkOut *time.Time, notes *string) error
}
