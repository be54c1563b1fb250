package notifications

import "context"

func (s *Store) CreateNotification(ctx context.Context, userID, ntype, title, body string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body)
    VALUES ($1,$2,$3,$4)
  `, userID, ntype, title, body)
	return err
}

func (s *Store) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]map[string]any, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, type, title, body, read_at, created_at
    FROM notifications
    WHERE user_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		var id, ntype, title, body string
		var readAt, createdAt any
		if err := rows.Scan(&id, &ntype, &title, &body, &readAt, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]any{
			"id":        id,
			"type":      ntype,
			"title":     title,
			"body":      body,
			"readAt":    readAt,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

func (s *Store) CountUnread(ctx context.Context, userID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND read_at IS NULL",
		userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = now()
    WHERE user_id = $1 AND id = $2
  `, userID, notificationID)
	return err
}

func (s *Store) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", userID).Scan(&email); err != nil {
		return "", err
	}
	return email, nil
}
