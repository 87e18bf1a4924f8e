package model

import "time"

// Role identifies a user's permission level.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// User is a member of the organization as returned by the backend.
type User struct {
	// ID is the unique identifier for this user.
	ID int `json:"id"`

	// Email is the user's login identity.
	Email string `json:"email"`

	// Name is the display name shown in shout-outs and mentions.
	Name string `json:"name"`

	// Department the user belongs to; used for feed filters and stats.
	Department string `json:"department"`

	// Role controls access to the admin views.
	Role Role `json:"role"`

	// ProfilePictureURL is the path to the user's avatar, if set.
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`

	// JoinedAt is when the account was created.
	JoinedAt time.Time `json:"joined_at"`
}

// IsAdmin reports whether the user may access moderation and stats views.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserUpdate carries the editable profile fields for PATCH /users/me.
// Nil fields are left unchanged by the backend.
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
