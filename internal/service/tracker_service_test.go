package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

// ---- in-memory fakes -------------------------------------------------------

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.UserUID] = user
	return nil
}

func (r *fakeUserRepo) GetByUID(userUID int64) (*domain.User, error) {
	return r.users[userUID], nil
}

type fakeDayRepo struct {
	days   map[int64]*domain.WorkDay
	nextID int64
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[int64]*domain.WorkDay)}
}

func (r *fakeDayRepo) Create(day *domain.WorkDay) error {
	r.nextID++
	day.ID = r.nextID
	r.days[day.ID] = day
	return nil
}

func (r *fakeDayRepo) GetByID(id int64) (*domain.WorkDay, error) {
	return r.days[id], nil
}

func (r *fakeDayRepo) GetByUserAndDate(userID int64, date string) (*domain.WorkDay, error) {
	for _, day := range r.days {
		if day.UserID == userID && day.Date == date {
			return day, nil
		}
	}
	return nil, nil
}

func (r *fakeDayRepo) ListByMonth(userID int64, month, year int) ([]*domain.WorkDay, error) {
	var res []*domain.WorkDay
	for _, day := range r.days {
		t, err := time.Parse("02-01-2006", day.Date)
		if err != nil {
			continue
		}
		if day.UserID == userID && int(t.Month()) == month && t.Year() == year {
			res = append(res, day)
		}
	}
	return res, nil
}

func (r *fakeDayRepo) Update(id int64, startTime, endTime, total string) (bool, error) {
	day, ok := r.days[id]
	if !ok {
		return false, nil
	}
	day.StartTime = startTime
	day.EndTime = endTime
	day.Total = total
	return true, nil
}

func (r *fakeDayRepo) Delete(id int64) (bool, error) {
	if _, ok := r.days[id]; !ok {
		return false, nil
	}
	delete(r.days, id)
	return true, nil
}

type fakeCalendar struct {
	norm *domain.MonthNorm
	err  error
}

func (c *fakeCalendar) MonthNorm(ctx context.Context, month, year int) (*domain.MonthNorm, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.norm, nil
}

func newService(cal *fakeCalendar) *TrackerService {
	if cal == nil {
		cal = &fakeCalendar{norm: &domain.MonthNorm{WorkDays: 21, WorkingHours: 168}}
	}
	return NewTrackerService(newFakeUserRepo(), newFakeDayRepo(), cal)
}

// ---- tests -----------------------------------------------------------------

func TestRegisterUserIsIdempotent(t *testing.T) {
	svc := newService(nil)

	first, err := svc.RegisterUser(7, "Ivan", "Petrov")
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}

	second, err := svc.RegisterUser(7, "Other", "Name")
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second registration err = %v, want ErrAlreadyRegistered", err)
	}
	if second.ID != first.ID || second.FirstName != "Ivan" {
		t.Fatalf("second registration mutated the user: %+v", second)
	}
}

func TestRecordWorkDayConflict(t *testing.T) {
	svc := newService(nil)

	if _, err := svc.RecordWorkDay(1, "05-08-2025", "09:00", "17:00"); err != nil {
		t.Fatalf("first record: %v", err)
	}

	_, err := svc.RecordWorkDay(1, "05-08-2025", "10:00", "18:00")
	if !errors.Is(err, ErrDayAlreadyRecorded) {
		t.Fatalf("err = %v, want ErrDayAlreadyRecorded", err)
	}

	// the original record is untouched
	recorded, err := svc.DayRecorded(1, "05-08-2025")
	if err != nil || !recorded {
		t.Fatalf("DayRecorded = %v, %v", recorded, err)
	}
	day, _ := svc.GetWorkDay(1)
	if day.StartTime != "09:00" {
		t.Fatalf("conflict mutated existing record: %+v", day)
	}
}

func TestRecordWorkDayDerivesTotal(t *testing.T) {
	svc := newService(nil)

	day, err := svc.RecordWorkDay(1, "05-08-2025", "09:15", "18:00")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if day.Total != "7.45" {
		t.Fatalf("total = %q, want 7.45 (8h45m minus lunch)", day.Total)
	}
}

func TestUpdateWorkDayRecomputesTotalAndKeepsIdentity(t *testing.T) {
	svc := newService(nil)

	day, err := svc.RecordWorkDay(1, "05-08-2025", "09:00", "17:00")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	updated, err := svc.UpdateWorkDay(day.ID, "09:00", "12:30")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != day.ID {
		t.Fatal("update changed the record identity")
	}
	if updated.Total != "3.30" {
		t.Fatalf("total = %q, want 3.30", updated.Total)
	}

	if _, err := svc.UpdateWorkDay(999, "09:00", "17:00"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("update of missing record err = %v, want ErrRecordNotFound", err)
	}
}

func TestDeleteWorkDayTwice(t *testing.T) {
	svc := newService(nil)

	day, err := svc.RecordWorkDay(1, "05-08-2025", "09:00", "17:00")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := svc.DeleteWorkDay(day.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.DeleteWorkDay(day.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestMonthSummaryEndToEnd(t *testing.T) {
	svc := newService(nil)

	user, err := svc.RegisterUser(7, "Ivan", "Petrov")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.FirstName != "Ivan" || user.LastName != "Petrov" {
		t.Fatalf("user = %+v, want Ivan Petrov", user)
	}

	day, err := svc.RecordWorkDay(user.ID, "05-08-2025", "09:15", "18:00")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	summary, err := svc.MonthSummary(context.Background(), user.ID, 8, 2025)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.Days) != 1 {
		t.Fatalf("summary days = %d, want 1", len(summary.Days))
	}
	if summary.Total != day.Total {
		t.Fatalf("summary total = %q, want %q", summary.Total, day.Total)
	}
	if summary.Norm == nil || summary.Norm.WorkingHours != 168 {
		t.Fatalf("summary norm = %+v, want working hours 168", summary.Norm)
	}
}

func TestMonthSummaryCalendarFailureIsHard(t *testing.T) {
	svc := newService(&fakeCalendar{err: errors.New("service down")})

	if _, err := svc.MonthSummary(context.Background(), 1, 8, 2025); err == nil {
		t.Fatal("expected hard failure when the calendar service is down")
	}
}
