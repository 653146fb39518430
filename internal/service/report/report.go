package reportservice

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"bollwerkBot/internal/domain/models"
	"bollwerkBot/internal/pkg/logger/sl"
)

// EventProvider читающие операции хранилища, нужные отчетам
type EventProvider interface {
	UserEvents(ctx context.Context, tgUserID int64, since *time.Time) ([]models.ShiftEvent, error)
	History(ctx context.Context, limit int) ([]models.ShiftEvent, error)
	AllUsers(ctx context.Context) ([]models.User, error)
}

// Report считает отработанные часы по журналу смен.
// Чистая функция от сохраненных событий: открытая, но еще не закрытая
// смена в сумму не входит.
type Report struct {
	log       *slog.Logger
	events    EventProvider
	weekStart time.Weekday
}

func New(log *slog.Logger, events EventProvider, weekStart time.Weekday) *Report {
	return &Report{
		log:       log,
		events:    events,
		weekStart: weekStart,
	}
}

// Hours суммирует длительность закрытых пар (Anmeldung, Abmeldung)
// пользователя начиная с since (nil - за все время), в часах с точностью
// до двух знаков.
//
// Журнал append-only и может содержать осиротевшие записи от оборванных
// сессий, поэтому аномалии не считаются ошибкой: при двух Anmeldung подряд
// устаревшая отбрасывается и берется более новая, Abmeldung без открытой
// Anmeldung пропускается.
func (r *Report) Hours(ctx context.Context, tgUserID int64, since *time.Time) (float64, error) {
	const op = "Report.Hours"

	events, err := r.events.UserEvents(ctx, tgUserID, since)
	if err != nil {
		r.log.Error("failed to fetch events", slog.String("op", op), sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	return SumHours(events), nil
}

// SumHours реализует сам алгоритм сканирования: события должны быть
// в хронологическом порядке
func SumHours(events []models.ShiftEvent) float64 {
	var total time.Duration
	var pendingStart *time.Time

	for i := range events {
		switch events[i].Kind {
		case models.KindCheckIn:
			// повторная Anmeldung вытесняет устаревшую
			t := events[i].OccurredAt
			pendingStart = &t
		case models.KindCheckOut:
			if pendingStart == nil {
				continue
			}
			total += events[i].OccurredAt.Sub(*pendingStart)
			pendingStart = nil
		}
	}

	return round2(total.Hours())
}

// UserHours агрегат для недельного отчета
type UserHours struct {
	TgUserID    int64
	DisplayName string
	Hours       float64
}

// WeeklyHours считает часы каждого пользователя с начала текущей недели
func (r *Report) WeeklyHours(ctx context.Context, now time.Time) ([]UserHours, error) {
	const op = "Report.WeeklyHours"

	users, err := r.events.AllUsers(ctx)
	if err != nil {
		r.log.Error("failed to fetch users", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	since := r.WeekStartTime(now)

	result := make([]UserHours, 0, len(users))
	for _, user := range users {
		hours, err := r.Hours(ctx, user.TgUserID, &since)
		if err != nil {
			return nil, err
		}

		result = append(result, UserHours{
			TgUserID:    user.TgUserID,
			DisplayName: user.DisplayName(),
			Hours:       hours,
		})
	}

	return result, nil
}

// WeekStartTime возвращает ближайшую прошедшую локальную полночь
// сконфигурированного дня начала недели
func (r *Report) WeekStartTime(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	daysBack := (int(now.Weekday()) - int(r.weekStart) + 7) % 7

	return midnight.AddDate(0, 0, -daysBack)
}

// History возвращает последние записи журнала для /history
func (r *Report) History(ctx context.Context, limit int) ([]models.ShiftEvent, error) {
	const op = "Report.History"

	events, err := r.events.History(ctx, limit)
	if err != nil {
		r.log.Error("failed to fetch history", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	return events, nil
}

// ParseWeekday разбирает название дня недели из конфигурации
func ParseWeekday(name string) (time.Weekday, error) {
	weekdays := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	if day, ok := weekdays[strings.ToLower(name)]; ok {
		return day, nil
	}

	return time.Monday, fmt.Errorf("unknown weekday: %s", name)
}

func round2(hours float64) float64 {
	return math.Round(hours*100) / 100
}
