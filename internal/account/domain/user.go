package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so a caller cannot enumerate registered users.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRegistration is returned when registration input fails
	// validation (malformed email, password too short).
	ErrInvalidRegistration = errors.New("invalid registration details")

	ErrUserNotFound = errors.New("user not found")
)

// User represents a storefront account. The email doubles as the login
// name and is unique across all users.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
