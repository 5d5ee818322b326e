package domain

import "time"

// User represents a registered bot user
type User struct {
	ID        int64
	UserUID   int64 // telegram user id, unique
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(user *User) error
	GetByUID(userUID int64) (*User, error)
}
