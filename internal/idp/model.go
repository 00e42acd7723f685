package idp

import "time"

// Role is the identity provider's role record. Description may carry an
// embedded permission map as a suffix; see internal/permission.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Identity is one federated identity attached to a user.
type Identity struct {
	Connection string `json:"connection"`
	Provider   string `json:"provider"`
	UserID     string `json:"user_id"`
	IsSocial   bool   `json:"isSocial"`
}

// User is the identity provider's user record, snake_case on the wire.
type User struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Nickname      string     `json:"nickname,omitempty"`
	Picture       string     `json:"picture,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	Blocked       bool       `json:"blocked,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	LastIP        string     `json:"last_ip,omitempty"`
	LoginsCount   int64      `json:"logins_count"`
	Identities    []Identity `json:"identities,omitempty"`

	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// CreateUserRequest is the payload for creating a user at the provider.
type CreateUserRequest struct {
	Connection    string         `json:"connection"`
	Email         string         `json:"email"`
	Password      string         `json:"password,omitempty"`
	Name          string         `json:"name,omitempty"`
	Nickname      string         `json:"nickname,omitempty"`
	Picture       string         `json:"picture,omitempty"`
	EmailVerified bool           `json:"email_verified"`
	PhoneNumber   string         `json:"phone_number,omitempty"`
	UserMetadata  map[string]any `json:"user_metadata,omitempty"`
	AppMetadata   map[string]any `json:"app_metadata,omitempty"`
}

// UpdateUserRequest carries the fields the provider allows to be patched.
// Nil pointers are omitted from the request body.
type UpdateUserRequest struct {
	Name          *string        `json:"name,omitempty"`
	Nickname      *string        `json:"nickname,omitempty"`
	Picture       *string        `json:"picture,omitempty"`
	EmailVerified *bool          `json:"email_verified,omitempty"`
	PhoneNumber   *string        `json:"phone_number,omitempty"`
	Blocked       *bool          `json:"blocked,omitempty"`
	UserMetadata  map[string]any `json:"user_metadata,omitempty"`
	AppMetadata   map[string]any `json:"app_metadata,omitempty"`
}
