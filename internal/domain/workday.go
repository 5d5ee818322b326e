package domain

import "time"

// WorkDay represents one logged work day of a user.
// Date is stored as DD-MM-YYYY, times as HH:MM, Total in the
// "hours.minutes" format produced by the worktime package.
type WorkDay struct {
	ID        int64
	UserID    int64
	Date      string
	StartTime string
	EndTime   string
	Total     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkDayRepository defines the interface for work day storage
type WorkDayRepository interface {
	Create(day *WorkDay) error
	GetByID(id int64) (*WorkDay, error)
	GetByUserAndDate(userID int64, date string) (*WorkDay, error)
	ListByMonth(userID int64, month int, year int) ([]*WorkDay, error)
	Update(id int64, startTime, endTime, total string) (bool, error)
	Delete(id int64) (bool, error)
}
