package session

import (
	"testing"
	"time"

	"bollwerkBot/internal/domain/models"
)

func TestGetReturnsIdleForNewUser(t *testing.T) {
	store := NewStore()

	sess := store.Get(42)
	if sess.State != models.StateIdle {
		t.Errorf("state = %s, want %s", sess.State, models.StateIdle)
	}
}

func TestResetClearsPendingFields(t *testing.T) {
	store := NewStore()

	store.Put(1, Session{
		State:            models.StateAwaitingStartLocation,
		PendingTask:      "Garten",
		PendingFirstName: "Max",
	})

	store.Reset(1)

	sess := store.Get(1)
	if sess.State != models.StateIdle {
		t.Errorf("state = %s, want %s", sess.State, models.StateIdle)
	}
	if sess.PendingTask != "" || sess.PendingFirstName != "" {
		t.Errorf("pending fields not cleared: %+v", sess)
	}
}

func TestAtMostOneActiveShiftPerUser(t *testing.T) {
	store := NewStore()

	store.SetActive(models.ActiveShift{TgUserID: 1, Task: "Garten", StartedAt: time.Now()})
	store.SetActive(models.ActiveShift{TgUserID: 1, Task: "Reinigung", StartedAt: time.Now()})

	shifts := store.ActiveShifts()
	if len(shifts) != 1 {
		t.Fatalf("got %d shifts, want 1", len(shifts))
	}
	if shifts[0].Task != "Reinigung" {
		t.Errorf("task = %q, want Reinigung", shifts[0].Task)
	}
}

func TestActiveShiftsSortedByStart(t *testing.T) {
	store := NewStore()
	base := time.Now()

	store.SetActive(models.ActiveShift{TgUserID: 2, StartedAt: base.Add(time.Hour)})
	store.SetActive(models.ActiveShift{TgUserID: 1, StartedAt: base})

	shifts := store.ActiveShifts()
	if len(shifts) != 2 {
		t.Fatalf("got %d shifts, want 2", len(shifts))
	}
	if shifts[0].TgUserID != 1 || shifts[1].TgUserID != 2 {
		t.Errorf("shifts not sorted by start time: %+v", shifts)
	}
}

func TestClearActive(t *testing.T) {
	store := NewStore()

	store.SetActive(models.ActiveShift{TgUserID: 1, StartedAt: time.Now()})
	store.ClearActive(1)

	if _, ok := store.Active(1); ok {
		t.Error("active shift should be removed")
	}
}
