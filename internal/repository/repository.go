package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bollwerkBot/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

// Repository интерфейс для работы с базой данных.
// Журнал смен append-only: записи никогда не обновляются и не удаляются,
// кроме полного сброса через ResetAll.
type Repository interface {
	// Users
	UserExists(ctx context.Context, tgUserID int64) (bool, error)
	GetUser(ctx context.Context, tgUserID int64) (*models.User, error)
	// AddUser вставляет пользователя ровно один раз: конфликт по tg_user_id
	// трактуется как успешный no-op, значения первой записи сохраняются
	AddUser(ctx context.Context, user models.User) error
	UpdateUserLanguage(ctx context.Context, tgUserID int64, lang models.Language) error
	AllUsers(ctx context.Context) ([]models.User, error)

	// ShiftEvents
	LogEvent(ctx context.Context, event models.ShiftEvent) (uuid.UUID, error)
	UserEvents(ctx context.Context, tgUserID int64, since *time.Time) ([]models.ShiftEvent, error)
	History(ctx context.Context, limit int) ([]models.ShiftEvent, error)
	ResetAll(ctx context.Context) error
}
