package model

import "time"

// Role identifies the authorization level of a platform account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User is a platform account as returned by the backend.
type User struct {
	// ID is the server-issued identifier for this account.
	ID string `json:"_id"`

	// Name is the display name shown across the dashboard.
	Name string `json:"name"`

	// Username is the unique handle used for credential login.
	Username string `json:"username,omitempty"`

	// Email is the account's contact address.
	Email string `json:"email"`

	// Role controls which screens and operations are available.
	Role Role `json:"role"`

	// Avatar is an optional URL to the account's profile image.
	Avatar string `json:"avatar,omitempty"`

	// Active reports whether the account is enabled.
	Active bool `json:"active,omitempty"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Session is the authenticated identity driving authorization and
// realtime registration. It is created on login and destroyed on
// logout; the session holder owns the only mutable reference.
type Session struct {
	// UserID is the identity announced on the realtime channel.
	UserID string

	// Name is the display name of the authenticated user.
	Name string

	// Role is the authorization level of the authenticated user.
	Role Role

	// Token is the bearer token attached to every REST call.
	Token string
}
