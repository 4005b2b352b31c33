package domain

import (
	"context"
	"time"
)

// User represents a domain user object. It is the identity anchor for all
// exam results and lesson completions.
type User struct {
	ID             int64
	Username       string
	Email          string
	FullName       string
	HashedPassword string
	CreatedAt      time.Time
	IsActive       bool
}

// NewUser creates a new User instance
func NewUser(username, email, hashedPassword string) *User {
	return &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
		IsActive:       true,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Username == "" {
		return NewInvalidInputError("username is required")
	}
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	if u.HashedPassword == "" {
		return NewInvalidInputError("password hash is required")
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
