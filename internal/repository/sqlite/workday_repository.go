package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

// WorkDayRepository implements domain.WorkDayRepository using SQLite
type WorkDayRepository struct {
	db *Database
}

// NewWorkDayRepository creates a new WorkDayRepository
func NewWorkDayRepository(db *Database) *WorkDayRepository {
	return &WorkDayRepository{db: db}
}

// Create creates a new work day record
func (r *WorkDayRepository) Create(day *domain.WorkDay) error {
	query := `
		INSERT INTO work_days (user_id, date, start_time, end_time, total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()

	res, err := r.db.GetDB().Exec(query,
		day.UserID,
		day.Date,
		day.StartTime,
		day.EndTime,
		day.Total,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create work day: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get work day id: %w", err)
	}

	day.ID = id
	day.CreatedAt = now
	day.UpdatedAt = now

	return nil
}

// GetByID retrieves a work day by its id
func (r *WorkDayRepository) GetByID(id int64) (*domain.WorkDay, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, total, created_at, updated_at
		FROM work_days
		WHERE id = ?
	`

	return r.scanOne(r.db.GetDB().QueryRow(query, id))
}

// GetByUserAndDate retrieves the single record of a user for a date
func (r *WorkDayRepository) GetByUserAndDate(userID int64, date string) (*domain.WorkDay, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, total, created_at, updated_at
		FROM work_days
		WHERE user_id = ? AND date = ?
	`

	return r.scanOne(r.db.GetDB().QueryRow(query, userID, date))
}

// ListByMonth retrieves all records of a user whose date falls in the
// given month and year, ordered by date.
func (r *WorkDayRepository) ListByMonth(userID int64, month int, year int) ([]*domain.WorkDay, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, total, created_at, updated_at
		FROM work_days
		WHERE user_id = ? AND date LIKE ?
		ORDER BY date
	`

	// dates are stored DD-MM-YYYY
	pattern := fmt.Sprintf("%%-%02d-%d", month, year)

	rows, err := r.db.GetDB().Query(query, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list work days: %w", err)
	}
	defer rows.Close()

	var days []*domain.WorkDay

	for rows.Next() {
		day := &domain.WorkDay{}
		err := rows.Scan(
			&day.ID,
			&day.UserID,
			&day.Date,
			&day.StartTime,
			&day.EndTime,
			&day.Total,
			&day.CreatedAt,
			&day.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work day: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// Update overwrites the times and total of an existing record,
// returning false when the record no longer exists.
func (r *WorkDayRepository) Update(id int64, startTime, endTime, total string) (bool, error) {
	query := `
		UPDATE work_days
		SET start_time = ?, end_time = ?, total = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.GetDB().Exec(query, startTime, endTime, total, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update work day: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update work day: %w", err)
	}

	return affected > 0, nil
}

// Delete removes a record, returning false when it no longer exists
func (r *WorkDayRepository) Delete(id int64) (bool, error) {
	res, err := r.db.GetDB().Exec(`DELETE FROM work_days WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete work day: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete work day: %w", err)
	}

	return affected > 0, nil
}

func (r *WorkDayRepository) scanOne(row *sql.Row) (*domain.WorkDay, error) {
	day := &domain.WorkDay{}

	err := row.Scan(
		&day.ID,
		&day.UserID,
		&day.Date,
		&day.StartTime,
		&day.EndTime,
		&day.Total,
		&day.CreatedAt,
		&day.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work day: %w", err)
	}

	return day, nil
}
