package types

import "time"

const (
	// UserTypeNormal is the role assigned when a registration omits one.
	UserTypeNormal = "NORMAL"
	// UserTypeAdmin marks administrators.
	UserTypeAdmin = "ADMINISTRADOR"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"nome" db:"name"`

	// Email is the user's email address. It is unique across accounts
	// and is used as the login identifier.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Photo is an optional URL pointing at the user's picture.
	Photo string `json:"foto,omitempty" db:"photo"`

	// Type indicates the user's authorization level
	// (e.g., "NORMAL", "ADMINISTRADOR").
	Type string `json:"tipo" db:"user_type"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}
