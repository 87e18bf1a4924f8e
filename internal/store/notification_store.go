package store

import (
	"context"
	"fmt"

	"github.com/ndtran/shoutbox/internal/model"
)

// SaveNotifications replaces the notification mirror with the given set.
func (s *SQLiteStore) SaveNotifications(
	ctx context.Context,
	notifications []model.Notification,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	const query = `
		INSERT INTO notifications (
			id, kind, message, shoutout_id, comment_id, read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing notification insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range notifications {
		_, err := stmt.ExecContext(ctx,
			n.ID, string(n.Kind), n.Message,
			n.ShoutoutID, n.CommentID, n.Read, n.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("saving notification %d: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// LoadNotifications returns the mirrored notification set, newest first.
func (s *SQLiteStore) LoadNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, kind, message, shoutout_id, comment_id, read, created_at
		FROM notifications
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var kind string
		err := rows.Scan(
			&n.ID, &kind, &n.Message,
			&n.ShoutoutID, &n.CommentID, &n.Read, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		n.Kind = model.NotificationKind(kind)
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
