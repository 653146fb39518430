package shiftservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"bollwerkBot/internal/domain/models"
	"bollwerkBot/internal/repository"
	"bollwerkBot/internal/session"
)

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Broadcast(text string) {
	n.messages = append(n.messages, text)
}

func newTestShift(t *testing.T) (*Shift, *repository.MemoryRepository, *session.Store, *stubNotifier) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	sessions := session.NewStore()
	notifier := &stubNotifier{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := New(log, repo, sessions, notifier)

	if err := repo.AddUser(context.Background(), models.User{
		TgUserID:     1,
		FirstName:    "Max",
		LastName:     "Mustermann",
		Language:     models.LanguageDE,
		RegisteredAt: time.Now(),
	}); err != nil {
		t.Fatalf("AddUser() error: %v", err)
	}

	return svc, repo, sessions, notifier
}

func TestCheckInFlow(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessions, notifier := newTestShift(t)

	if err := svc.Begin(1); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}

	if got := sessions.Get(1).State; got != models.StateAwaitingTask {
		t.Fatalf("state = %s, want %s", got, models.StateAwaitingTask)
	}

	if err := svc.ChooseTask(1, "Garten"); err != nil {
		t.Fatalf("ChooseTask() error: %v", err)
	}

	if got := sessions.Get(1).State; got != models.StateAwaitingStartLocation {
		t.Fatalf("state = %s, want %s", got, models.StateAwaitingStartLocation)
	}

	kind, err := svc.HandleLocation(ctx, 1, models.Location{Latitude: 52.1, Longitude: 13.2})
	if err != nil {
		t.Fatalf("HandleLocation() error: %v", err)
	}
	if kind != models.KindCheckIn {
		t.Errorf("kind = %s, want %s", kind, models.KindCheckIn)
	}

	// диалог вернулся в Idle
	if got := sessions.Get(1).State; got != models.StateIdle {
		t.Errorf("state = %s, want %s", got, models.StateIdle)
	}

	// открытая смена создана
	active, ok := sessions.Active(1)
	if !ok {
		t.Fatal("expected active shift")
	}
	if active.Task != "Garten" {
		t.Errorf("task = %q, want Garten", active.Task)
	}
	if active.DisplayName != "Max Mustermann" {
		t.Errorf("display name = %q", active.DisplayName)
	}

	// событие в журнале
	events, err := repo.UserEvents(ctx, 1, nil)
	if err != nil {
		t.Fatalf("UserEvents() error: %v", err)
	}
	if len(events) != 1 || events[0].Kind != models.KindCheckIn {
		t.Fatalf("events = %+v, want one check-in", events)
	}

	// админы уведомлены
	if len(notifier.messages) != 1 {
		t.Errorf("got %d notifications, want 1", len(notifier.messages))
	}
}

func TestCheckOutReusesCheckInTask(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessions, _ := newTestShift(t)

	mustCheckIn(t, svc, 1, "Garten")

	if err := svc.End(1); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	kind, err := svc.HandleLocation(ctx, 1, models.Location{Latitude: 52.1, Longitude: 13.3})
	if err != nil {
		t.Fatalf("HandleLocation() error: %v", err)
	}
	if kind != models.KindCheckOut {
		t.Errorf("kind = %s, want %s", kind, models.KindCheckOut)
	}

	// открытая смена закрыта
	if _, ok := sessions.Active(1); ok {
		t.Error("active shift should be removed after check-out")
	}

	events, err := repo.UserEvents(ctx, 1, nil)
	if err != nil {
		t.Fatalf("UserEvents() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	// Abmeldung наследует задачу от Anmeldung
	if events[1].Task != "Garten" {
		t.Errorf("check-out task = %q, want Garten", events[1].Task)
	}
}

func TestBeginRejectsSecondShift(t *testing.T) {
	svc, _, sessions, _ := newTestShift(t)

	mustCheckIn(t, svc, 1, "Garten")

	err := svc.Begin(1)
	if !errors.Is(err, models.ErrAlreadyActive) {
		t.Fatalf("Begin() error = %v, want ErrAlreadyActive", err)
	}

	// состояние не изменилось
	if got := sessions.Get(1).State; got != models.StateIdle {
		t.Errorf("state = %s, want %s", got, models.StateIdle)
	}

	// инвариант: не более одной активной смены
	if got := len(sessions.ActiveShifts()); got != 1 {
		t.Errorf("active shifts = %d, want 1", got)
	}
}

func TestEndWithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessions, _ := newTestShift(t)

	err := svc.End(1)
	if !errors.Is(err, models.ErrNoActiveShift) {
		t.Fatalf("End() error = %v, want ErrNoActiveShift", err)
	}

	// журнал не изменился, состояние осталось Idle
	events, _ := repo.UserEvents(ctx, 1, nil)
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
	if got := sessions.Get(1).State; got != models.StateIdle {
		t.Errorf("state = %s, want %s", got, models.StateIdle)
	}
}

func TestUnexpectedLocation(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestShift(t)

	_, err := svc.HandleLocation(ctx, 1, models.Location{Latitude: 52.1, Longitude: 13.2})
	if !errors.Is(err, models.ErrUnexpectedLocation) {
		t.Fatalf("HandleLocation() error = %v, want ErrUnexpectedLocation", err)
	}

	events, _ := repo.UserEvents(ctx, 1, nil)
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestChooseTaskRequiresBegin(t *testing.T) {
	svc, _, sessions, _ := newTestShift(t)

	// выбор задачи без начатого потока отклоняется state machine
	if err := svc.ChooseTask(1, "Garten"); err == nil {
		t.Fatal("ChooseTask() without Begin should fail")
	}

	if got := sessions.Get(1).State; got != models.StateIdle {
		t.Errorf("state = %s, want %s", got, models.StateIdle)
	}
}

func TestRestartResetsDialog(t *testing.T) {
	svc, _, sessions, _ := newTestShift(t)

	if err := svc.Begin(1); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if err := svc.ChooseTask(1, "Garten"); err != nil {
		t.Fatalf("ChooseTask() error: %v", err)
	}

	svc.Restart(1)

	if got := sessions.Get(1).State; got != models.StateIdle {
		t.Errorf("state = %s, want %s", got, models.StateIdle)
	}
}

func mustCheckIn(t *testing.T, svc *Shift, tgUserID int64, task string) {
	t.Helper()

	if err := svc.Begin(tgUserID); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if err := svc.ChooseTask(tgUserID, task); err != nil {
		t.Fatalf("ChooseTask() error: %v", err)
	}
	if _, err := svc.HandleLocation(context.Background(), tgUserID, models.Location{Latitude: 52.1, Longitude: 13.2}); err != nil {
		t.Fatalf("HandleLocation() error: %v", err)
	}
}
