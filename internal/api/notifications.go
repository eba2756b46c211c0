package api

import (
	"context"

	"github.com/htran/lms-console/internal/model"
)

// ListNotifications returns the current user's notification history,
// newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var wrapper struct {
		Notifications []model.Notification `json:"notifications"`
	}
	if err := c.get(ctx, "/notifications", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Notifications, nil
}

// MarkNotificationRead records a notification as read server-side.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.patch(ctx, "/notifications/"+id+"/read", nil, nil)
}
