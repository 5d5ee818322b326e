package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
	"github.com/avzhuravlev/worktime-bot/internal/worktime"
)

// Sentinel errors reported back to the conversation layer. Anything
// else escaping the service is a real storage or network failure.
var (
	ErrAlreadyRegistered  = errors.New("user is already registered")
	ErrNotRegistered      = errors.New("user is not registered")
	ErrDayAlreadyRecorded = errors.New("work day is already recorded")
	ErrRecordNotFound     = errors.New("work day record not found")
)

// MonthSummary aggregates one user's records for a month together
// with the official norm for that month.
type MonthSummary struct {
	Days  []*domain.WorkDay
	Total string
	Norm  *domain.MonthNorm
}

// TrackerService handles business logic for work time tracking
type TrackerService struct {
	userRepo domain.UserRepository
	dayRepo  domain.WorkDayRepository
	calendar domain.CalendarClient
}

// NewTrackerService creates a new TrackerService
func NewTrackerService(userRepo domain.UserRepository, dayRepo domain.WorkDayRepository, calendar domain.CalendarClient) *TrackerService {
	return &TrackerService{
		userRepo: userRepo,
		dayRepo:  dayRepo,
		calendar: calendar,
	}
}

// RegisterUser creates a user for a telegram id. Registration is
// idempotent: a second attempt returns ErrAlreadyRegistered and the
// stored user is left untouched.
func (s *TrackerService) RegisterUser(userUID int64, firstName, lastName string) (*domain.User, error) {
	existing, err := s.userRepo.GetByUID(userUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if existing != nil {
		return existing, ErrAlreadyRegistered
	}

	user := &domain.User{
		UserUID:   userUID,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser returns the registered user for a telegram id, or
// ErrNotRegistered when there is none.
func (s *TrackerService) GetUser(userUID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByUID(userUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotRegistered
	}
	return user, nil
}

// DayRecorded reports whether the user already has a record for a date
func (s *TrackerService) DayRecorded(userID int64, date string) (bool, error) {
	day, err := s.dayRepo.GetByUserAndDate(userID, date)
	if err != nil {
		return false, err
	}
	return day != nil, nil
}

// RecordWorkDay computes the total for a start/end pair and stores a
// new record. An existing record for the same (user, date) aborts the
// write with ErrDayAlreadyRecorded without touching stored data.
func (s *TrackerService) RecordWorkDay(userID int64, date, startTime, endTime string) (*domain.WorkDay, error) {
	existing, err := s.dayRepo.GetByUserAndDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check work day: %w", err)
	}
	if existing != nil {
		return nil, ErrDayAlreadyRecorded
	}

	day := &domain.WorkDay{
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Total:     worktime.FormatTotal(worktime.Elapsed(startTime, endTime)),
	}
	if err := s.dayRepo.Create(day); err != nil {
		return nil, err
	}

	return day, nil
}

// GetWorkDay returns a record by id, or ErrRecordNotFound
func (s *TrackerService) GetWorkDay(id int64) (*domain.WorkDay, error) {
	day, err := s.dayRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrRecordNotFound
	}
	return day, nil
}

// UpdateWorkDay overwrites the times of an existing record, keeping
// its identity. The total is recomputed so it can never disagree with
// the stored start/end pair.
func (s *TrackerService) UpdateWorkDay(id int64, startTime, endTime string) (*domain.WorkDay, error) {
	total := worktime.FormatTotal(worktime.Elapsed(startTime, endTime))

	ok, err := s.dayRepo.Update(id, startTime, endTime, total)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRecordNotFound
	}

	return s.GetWorkDay(id)
}

// DeleteWorkDay removes a record by id. A missing target is reported
// as ErrRecordNotFound, never as silent success.
func (s *TrackerService) DeleteWorkDay(id int64) error {
	ok, err := s.dayRepo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}

// MonthSummary lists the user's records for a month with their sum
// and the external norm. A calendar service failure fails the whole
// summary; there is no fallback norm.
func (s *TrackerService) MonthSummary(ctx context.Context, userID int64, month, year int) (*MonthSummary, error) {
	days, err := s.dayRepo.ListByMonth(userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list work days: %w", err)
	}

	norm, err := s.calendar.MonthNorm(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get month norm: %w", err)
	}

	totals := make([]string, 0, len(days))
	for _, day := range days {
		totals = append(totals, day.Total)
	}

	return &MonthSummary{
		Days:  days,
		Total: worktime.SumTotals(totals),
		Norm:  norm,
	}, nil
}
