package domain

import "context"

// MonthNorm is the official production-calendar norm for one month.
// It is fetched on demand and never persisted.
type MonthNorm struct {
	CalendarDays int `json:"calendar_days"`
	WorkDays     int `json:"work_days"`
	Weekends     int `json:"weekends"`
	Holidays     int `json:"holidays"`
	WorkingHours int `json:"working_hours"`
}

// CalendarClient defines the interface to the production calendar service
type CalendarClient interface {
	MonthNorm(ctx context.Context, month, year int) (*MonthNorm, error)
}
