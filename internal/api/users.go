package api

import (
	"context"

	"github.com/htran/lms-console/internal/model"
)

// CreateUserInput is the payload for admin user creation.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`
}

// UpdateUserInput is the payload for admin edits to another account.
// Zero-valued fields are omitted and left unchanged.
type UpdateUserInput struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=admin teacher student"`
	Active *bool  `json:"active,omitempty"`
}

// UpdateProfileInput is the payload for the current user's own profile.
type UpdateProfileInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,alphanum"`
}

// UpdatePasswordInput changes the current user's password. The
// confirmation is checked client-side and never sent.
type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=NewPassword"`
}

// ListUsers returns every platform account.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var wrapper struct {
		Users []model.User `json:"users"`
	}
	if err := c.get(ctx, "/users", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Users, nil
}

// GetUser returns a single account by id.
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var wrapper struct {
		User model.User `json:"user"`
	}
	if err := c.get(ctx, "/users/"+id, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.User, nil
}

// CreateUser creates an account on behalf of an admin.
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		User model.User `json:"user"`
	}
	if err := c.post(ctx, "/users", in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.User, nil
}

// UpdateUser patches another account.
func (c *Client) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		User model.User `json:"user"`
	}
	if err := c.patch(ctx, "/users/"+id, in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.User, nil
}

// UpdateMe patches the current user's profile.
func (c *Client) UpdateMe(ctx context.Context, in UpdateProfileInput) (*model.User, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		User model.User `json:"user"`
	}
	if err := c.patch(ctx, "/users/updateMe", in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.User, nil
}

// UpdateMyPassword changes the current user's password.
func (c *Client) UpdateMyPassword(ctx context.Context, in UpdatePasswordInput) error {
	if err := c.validateInput(in); err != nil {
		return err
	}
	return c.patch(ctx, "/users/updateMyPassword", in, nil)
}
