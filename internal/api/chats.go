package api

import (
	"context"

	"github.com/htran/lms-console/internal/model"
)

// ListChatPartners returns the accounts the current user can message.
func (c *Client) ListChatPartners(ctx context.Context) ([]model.User, error) {
	var wrapper struct {
		Users []model.User `json:"users"`
	}
	if err := c.get(ctx, "/chats/users", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Users, nil
}

// GetConversation returns the message history with one user, oldest
// first.
func (c *Client) GetConversation(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	var wrapper struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	if err := c.get(ctx, "/chats/"+userID, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Messages, nil
}
