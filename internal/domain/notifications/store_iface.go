package notifications

import "context"

type StoreAPI interface {
	CreateNotification(ctx context.Context, userID, ntype, title, body string) error
	ListNotifications(ctx context.Context, userID string, limit, offset int) ([]map[string]any, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	UserEmail(ctx context.Context, userID string) (string, error)
}
