package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"bollwerkBot/internal/domain/models"
)

type PostgresRepository struct {
	db      *sqlx.DB
	log     *slog.Logger
	builder squirrel.StatementBuilderType
}

func NewPostgresRepository(log *slog.Logger, db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		log:     log.With(slog.String("component", "repository")),
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UserExists проверяет, завершил ли пользователь регистрацию
func (r *PostgresRepository) UserExists(ctx context.Context, tgUserID int64) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		From("users").
		Where(squirrel.Eq{"tg_user_id": tgUserID}).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return true, nil
}

// GetUser получает пользователя по tg_user_id
func (r *PostgresRepository) GetUser(ctx context.Context, tgUserID int64) (*models.User, error) {
	query, args, err := r.builder.
		Select("tg_user_id", "first_name", "last_name", "language", "registered_at").
		From("users").
		Where(squirrel.Eq{"tg_user_id": tgUserID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// AddUser вставляет пользователя. Уникальный ключ по tg_user_id гарантирует
// first-writer-wins: повторная вставка ничего не меняет и не считается ошибкой.
func (r *PostgresRepository) AddUser(ctx context.Context, user models.User) error {
	query, args, err := r.builder.
		Insert("users").
		Columns("tg_user_id", "first_name", "last_name", "language", "registered_at").
		Values(user.TgUserID, user.FirstName, user.LastName, user.Language, user.RegisteredAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			r.log.Debug("user already registered", slog.Int64("tgUserID", user.TgUserID))
			return nil
		}
		return fmt.Errorf("failed to add user: %w", err)
	}

	return nil
}

// UpdateUserLanguage обновляет язык пользователя, единственное изменяемое поле
func (r *PostgresRepository) UpdateUserLanguage(ctx context.Context, tgUserID int64, lang models.Language) error {
	query, args, err := r.builder.
		Update("users").
		Set("language", lang).
		Where(squirrel.Eq{"tg_user_id": tgUserID}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}

	return nil
}

// AllUsers возвращает всех зарегистрированных пользователей
func (r *PostgresRepository) AllUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := r.builder.
		Select("tg_user_id", "first_name", "last_name", "language", "registered_at").
		From("users").
		OrderBy("registered_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

// LogEvent добавляет запись в журнал смен
func (r *PostgresRepository) LogEvent(ctx context.Context, event models.ShiftEvent) (uuid.UUID, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query, args, err := r.builder.
		Insert("shift_events").
		Columns("id", "tg_user_id", "display_name", "task", "kind", "latitude", "longitude", "occurred_at").
		Values(
			event.ID,
			event.TgUserID,
			event.DisplayName,
			event.Task,
			event.Kind,
			event.Latitude,
			event.Longitude,
			event.OccurredAt,
		).
		ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return uuid.Nil, fmt.Errorf("failed to log event: %w", err)
	}

	return event.ID, nil
}

// UserEvents возвращает события пользователя в хронологическом порядке,
// since=nil означает выборку за все время
func (r *PostgresRepository) UserEvents(ctx context.Context, tgUserID int64, since *time.Time) ([]models.ShiftEvent, error) {
	b := r.builder.
		Select("id", "tg_user_id", "display_name", "task", "kind", "latitude", "longitude", "occurred_at").
		From("shift_events").
		Where(squirrel.Eq{"tg_user_id": tgUserID}).
		OrderBy("occurred_at ASC")

	if since != nil {
		b = b.Where(squirrel.GtOrEq{"occurred_at": *since})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var events []models.ShiftEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get user events: %w", err)
	}

	return events, nil
}

// History возвращает последние записи журнала по всем пользователям
func (r *PostgresRepository) History(ctx context.Context, limit int) ([]models.ShiftEvent, error) {
	query, args, err := r.builder.
		Select("id", "tg_user_id", "display_name", "task", "kind", "latitude", "longitude", "occurred_at").
		From("shift_events").
		OrderBy("occurred_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var events []models.ShiftEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return events, nil
}

// ResetAll удаляет всех пользователей и все события журнала
func (r *PostgresRepository) ResetAll(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_events`); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
