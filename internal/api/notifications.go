package api

import (
	"context"
	"fmt"

	"github.com/ndtran/shoutbox/internal/model"
)

// ListNotifications retrieves the current user's full notification set.
// The backend returns the complete set; there is no pagination.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.Get(ctx, "/notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read server-side.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.Post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

// MarkAllNotificationsRead marks every notification as read server-side.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.Post(ctx, "/notifications/mark-all-read", nil, nil)
}
