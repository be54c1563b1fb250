package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store        StoreAPI
	Mailer       Mailer
	EmailEnabled bool
	EmailFrom    string
}

func New(store StoreAPI, mailer Mailer, emailEnabled bool, emailFrom string) *Service {
	return &Service{store: store, Mailer: mailer, EmailEnabled: emailEnabled, EmailFrom: emailFrom}
}

// Create records an in-app notification and, when mail-out is enabled,
// mirrors it to the user's inbox. Mail failures are logged and swallowed so
// the triggering mutation still succeeds.
func (s *Service) Create(ctx context.Context, userID, ntype, title, body string) error {
	if err := s.store.CreateNotification(ctx, userID, ntype, title, body); err != nil {
		return err
	}

	if !s.EmailEnabled || s.Mailer == nil {
		return nil
	}

	email, err := s.store.UserEmail(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.EmailFrom, email, title, body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]map[string]any, error) {
	return s.store.ListNotifications(ctx, userID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}
