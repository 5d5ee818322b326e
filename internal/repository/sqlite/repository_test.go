package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user := &domain.User{UserUID: 100500, FirstName: "Ivan", LastName: "Petrov"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("create did not assign an id")
	}

	got, err := repo.GetByUID(100500)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got == nil || got.FirstName != "Ivan" || got.LastName != "Petrov" {
		t.Fatalf("got %+v, want Ivan Petrov", got)
	}

	missing, err := repo.GetByUID(999)
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if missing != nil {
		t.Fatal("missing user should be nil, not an error")
	}
}

func TestWorkDayRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	days := NewWorkDayRepository(db)

	user := &domain.User{UserUID: 1, FirstName: "Ivan", LastName: "Petrov"}
	if err := users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	day := &domain.WorkDay{
		UserID:    user.ID,
		Date:      "05-08-2025",
		StartTime: "09:00",
		EndTime:   "17:00",
		Total:     "7.0",
	}
	if err := days.Create(day); err != nil {
		t.Fatalf("create work day: %v", err)
	}

	byDate, err := days.GetByUserAndDate(user.ID, "05-08-2025")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if byDate == nil || byDate.ID != day.ID {
		t.Fatalf("get by date = %+v, want record %d", byDate, day.ID)
	}

	ok, err := days.Update(day.ID, "10:00", "18:30", "7.30")
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	updated, err := days.GetByID(day.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if updated.StartTime != "10:00" || updated.Total != "7.30" {
		t.Fatalf("update not applied: %+v", updated)
	}

	ok, err = days.Delete(day.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	// second delete reports a missing target, not silent success
	ok, err = days.Delete(day.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Fatal("second delete reported success for a missing record")
	}
}

func TestWorkDayRepositoryListByMonth(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	days := NewWorkDayRepository(db)

	user := &domain.User{UserUID: 1, FirstName: "Ivan", LastName: "Petrov"}
	if err := users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, d := range []string{"01-08-2025", "15-08-2025", "01-09-2025"} {
		day := &domain.WorkDay{
			UserID: user.ID, Date: d,
			StartTime: "09:00", EndTime: "17:00", Total: "7.0",
		}
		if err := days.Create(day); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}

	august, err := days.ListByMonth(user.ID, 8, 2025)
	if err != nil {
		t.Fatalf("list month: %v", err)
	}
	if len(august) != 2 {
		t.Fatalf("august records = %d, want 2", len(august))
	}
	for _, day := range august {
		if day.Date == "01-09-2025" {
			t.Fatal("september record leaked into august listing")
		}
	}

	empty, err := days.ListByMonth(user.ID, 7, 2025)
	if err != nil {
		t.Fatalf("list empty month: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("july records = %d, want 0", len(empty))
	}
}
