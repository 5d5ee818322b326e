package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite
type UserRepository struct {
	db *Database
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (user_uid, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now()

	res, err := r.db.GetDB().Exec(query,
		user.UserUID,
		user.FirstName,
		user.LastName,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

// GetByUID retrieves a user by their telegram id
func (r *UserRepository) GetByUID(userUID int64) (*domain.User, error) {
	query := `
		SELECT id, user_uid, first_name, last_name, created_at, updated_at
		FROM users
		WHERE user_uid = ?
	`

	user := &domain.User{}

	err := r.db.GetDB().QueryRow(query, userUID).Scan(
		&user.ID,
		&user.UserUID,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
