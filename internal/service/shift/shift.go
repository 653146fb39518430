package shiftservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bollwerkBot/internal/domain/models"
	"bollwerkBot/internal/pkg/logger/sl"
	"bollwerkBot/internal/session"
	"bollwerkBot/internal/statemachine"
)

// ShiftStore операции хранилища, нужные учету смен
type ShiftStore interface {
	GetUser(ctx context.Context, tgUserID int64) (*models.User, error)
	LogEvent(ctx context.Context, event models.ShiftEvent) (uuid.UUID, error)
}

// AdminNotifier рассылает уведомления администраторам.
// Доставка best-effort: сбои логируются реализацией и не откатывают
// уже зафиксированное событие журнала.
type AdminNotifier interface {
	Broadcast(text string)
}

// Shift ведет пользователя через потоки Anmeldung и Abmeldung,
// поддерживает инвариант "не более одной активной смены на пользователя"
// и пишет неизменяемые события в журнал.
type Shift struct {
	log      *slog.Logger
	store    ShiftStore
	sessions *session.Store
	sm       *statemachine.StateMachine
	notifier AdminNotifier
	now      func() time.Time
}

func New(
	log *slog.Logger,
	store ShiftStore,
	sessions *session.Store,
	notifier AdminNotifier,
) *Shift {
	return &Shift{
		log:      log,
		store:    store,
		sessions: sessions,
		sm:       statemachine.NewStateMachine(),
		notifier: notifier,
		now:      time.Now,
	}
}

// apply продвигает диалог по событию через state machine
func (s *Shift) apply(tgUserID int64, sess session.Session, event statemachine.Event) error {
	next, err := s.sm.HandleEvent(sess.State, event)
	if err != nil {
		return err
	}

	sess.State = next
	s.sessions.Put(tgUserID, sess)

	return nil
}

// Begin начинает поток Anmeldung. Отклоняется с ErrAlreadyActive,
// если у пользователя уже есть открытая смена; состояние не меняется.
func (s *Shift) Begin(tgUserID int64) error {
	if _, ok := s.sessions.Active(tgUserID); ok {
		return models.ErrAlreadyActive
	}

	return s.apply(tgUserID, s.sessions.Get(tgUserID), statemachine.EventBeginShift)
}

// ChooseTask фиксирует задачу (кнопка или свободный текст)
// и переводит диалог к запросу геолокации
func (s *Shift) ChooseTask(tgUserID int64, task string) error {
	sess := s.sessions.Get(tgUserID)
	sess.PendingTask = task

	return s.apply(tgUserID, sess, statemachine.EventTaskChosen)
}

// End начинает поток Abmeldung. Отклоняется с ErrNoActiveShift,
// если открытой смены нет; состояние не меняется. Задача не
// переспрашивается: при фиксации берется задача открытой смены.
func (s *Shift) End(tgUserID int64) error {
	if _, ok := s.sessions.Active(tgUserID); !ok {
		return models.ErrNoActiveShift
	}

	return s.apply(tgUserID, s.sessions.Get(tgUserID), statemachine.EventEndShift)
}

// HandleLocation обрабатывает присланную геолокацию в зависимости от
// состояния диалога. Геолокация без ожидающего запроса - ErrUnexpectedLocation.
func (s *Shift) HandleLocation(ctx context.Context, tgUserID int64, loc models.Location) (models.EventKind, error) {
	sess := s.sessions.Get(tgUserID)

	switch sess.State {
	case models.StateAwaitingStartLocation:
		return models.KindCheckIn, s.commitCheckIn(ctx, tgUserID, sess.PendingTask, loc)
	case models.StateAwaitingEndLocation:
		return models.KindCheckOut, s.commitCheckOut(ctx, tgUserID, loc)
	default:
		return "", models.ErrUnexpectedLocation
	}
}

func (s *Shift) commitCheckIn(ctx context.Context, tgUserID int64, task string, loc models.Location) error {
	const op = "Shift.commitCheckIn"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("tgUserID", tgUserID),
	)

	user, err := s.store.GetUser(ctx, tgUserID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))

		return fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	occurredAt := s.now()
	event := models.ShiftEvent{
		TgUserID:    tgUserID,
		DisplayName: user.DisplayName(),
		Task:        task,
		Kind:        models.KindCheckIn,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		OccurredAt:  occurredAt,
	}

	if _, err := s.store.LogEvent(ctx, event); err != nil {
		log.Error("failed to log check-in", sl.Err(err))

		return fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	s.sessions.SetActive(models.ActiveShift{
		TgUserID:    tgUserID,
		DisplayName: user.DisplayName(),
		Task:        task,
		StartedAt:   occurredAt,
		Start:       loc,
	})
	s.sessions.Reset(tgUserID)

	log.Info("check-in committed", slog.String("task", task))

	// уведомление не транзакционно с записью журнала
	s.notifier.Broadcast(fmt.Sprintf(
		"🟢 Anmeldung: %s | %s | %s | %.4f, %.4f",
		user.DisplayName(), task, occurredAt.Format("2006-01-02 15:04"), loc.Latitude, loc.Longitude,
	))

	return nil
}

func (s *Shift) commitCheckOut(ctx context.Context, tgUserID int64, loc models.Location) error {
	const op = "Shift.commitCheckOut"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("tgUserID", tgUserID),
	)

	active, ok := s.sessions.Active(tgUserID)
	if !ok {
		return models.ErrNoActiveShift
	}

	occurredAt := s.now()
	event := models.ShiftEvent{
		TgUserID:    tgUserID,
		DisplayName: active.DisplayName,
		Task:        active.Task, // задача берется из открытой смены
		Kind:        models.KindCheckOut,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		OccurredAt:  occurredAt,
	}

	if _, err := s.store.LogEvent(ctx, event); err != nil {
		log.Error("failed to log check-out", sl.Err(err))

		return fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	s.sessions.ClearActive(tgUserID)
	s.sessions.Reset(tgUserID)

	log.Info("check-out committed", slog.String("task", active.Task))

	s.notifier.Broadcast(fmt.Sprintf(
		"🔴 Abmeldung: %s | %s | %s | %.4f, %.4f",
		active.DisplayName, active.Task, occurredAt.Format("2006-01-02 15:04"), loc.Latitude, loc.Longitude,
	))

	return nil
}

// ActiveShifts возвращает все открытые смены для /status
func (s *Shift) ActiveShifts() []models.ActiveShift {
	return s.sessions.ActiveShifts()
}

// Restart безусловно сбрасывает диалог пользователя в Idle.
// Открытая смена при этом не закрывается.
func (s *Shift) Restart(tgUserID int64) {
	s.sessions.Reset(tgUserID)
}
