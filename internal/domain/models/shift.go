package models

import (
	"time"

	"github.com/google/uuid"
)

// EventKind вид записи в журнале смен
type EventKind string

const (
	KindCheckIn  EventKind = "check_in"  // Anmeldung
	KindCheckOut EventKind = "check_out" // Abmeldung
)

// Location координаты, присланные пользователем
type Location struct {
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}

// ShiftEvent неизменяемая запись журнала: одна Anmeldung или Abmeldung.
// Записи никогда не обновляются и не удаляются, кроме полного сброса админом.
type ShiftEvent struct {
	ID          uuid.UUID `db:"id"`
	TgUserID    int64     `db:"tg_user_id"`
	DisplayName string    `db:"display_name"`
	Task        string    `db:"task"`
	Kind        EventKind `db:"kind"`
	Latitude    float64   `db:"latitude"`
	Longitude   float64   `db:"longitude"`
	OccurredAt  time.Time `db:"occurred_at"`
}

// ActiveShift открытая, еще не закрытая смена пользователя.
// Инвариант: не более одной активной смены на пользователя.
type ActiveShift struct {
	TgUserID    int64
	DisplayName string
	Task        string
	StartedAt   time.Time
	Start       Location
}
