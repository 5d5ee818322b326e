package session

import (
	"testing"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

func TestBeginSupersedesPreviousConversation(t *testing.T) {
	s := NewStore()

	first := s.Begin(1, domain.StepAwaitingName)
	first.Date = "01-08-2025"

	second := s.Begin(1, domain.StepAwaitingStartTime)
	if got := s.Get(1); got != second {
		t.Fatal("Begin did not replace the previous conversation")
	}
	if s.Get(1).Date != "" {
		t.Fatal("superseding conversation kept stale data")
	}
}

func TestGetReturnsNilForIdleChat(t *testing.T) {
	s := NewStore()
	if s.Get(42) != nil {
		t.Fatal("Get on idle chat should be nil")
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Begin(1, domain.StepAwaitingName)
	s.Clear(1)
	if s.Get(1) != nil {
		t.Fatal("conversation survived Clear")
	}
}

func TestSweepDropsOnlyStaleConversations(t *testing.T) {
	s := NewStore()

	stale := s.Begin(1, domain.StepAwaitingStartTime)
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	s.Begin(2, domain.StepAwaitingStartTime)

	if removed := s.Sweep(time.Hour); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if s.Get(1) != nil {
		t.Fatal("stale conversation survived sweep")
	}
	if s.Get(2) == nil {
		t.Fatal("fresh conversation was swept")
	}
}
