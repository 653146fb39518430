package registrationservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bollwerkBot/internal/domain/models"
	"bollwerkBot/internal/pkg/logger/sl"
	"bollwerkBot/internal/session"
)

// UserStore операции хранилища, нужные регистрации
type UserStore interface {
	UserExists(ctx context.Context, tgUserID int64) (bool, error)
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, tgUserID int64) (*models.User, error)
	UpdateUserLanguage(ctx context.Context, tgUserID int64, lang models.Language) error
}

// Registration пропускает к действиям со сменами только зарегистрированных
// пользователей и ведет диалог регистрации: язык, имя, фамилия.
// Регистрация выполняется ровно один раз и не редактируется.
type Registration struct {
	log         *slog.Logger
	store       UserStore
	sessions    *session.Store
	defaultLang models.Language
}

func New(
	log *slog.Logger,
	store UserStore,
	sessions *session.Store,
	defaultLang models.Language,
) *Registration {
	return &Registration{
		log:         log,
		store:       store,
		sessions:    sessions,
		defaultLang: defaultLang,
	}
}

// IsRegistered сообщает, завершил ли пользователь регистрацию
func (r *Registration) IsRegistered(ctx context.Context, tgUserID int64) (bool, error) {
	const op = "Registration.IsRegistered"

	exists, err := r.store.UserExists(ctx, tgUserID)
	if err != nil {
		r.log.Error("failed to check user", slog.String("op", op), sl.Err(err))

		return false, fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	return exists, nil
}

// Begin запускает диалог регистрации с выбора языка
func (r *Registration) Begin(tgUserID int64) {
	r.sessions.Put(tgUserID, session.Session{State: models.StateAwaitingLanguage})
}

// ChooseLanguage фиксирует выбранный язык и переводит диалог к вводу имени.
// Пустой код означает, что пользователь пропустил выбор: применяется
// сконфигурированный язык по умолчанию.
func (r *Registration) ChooseLanguage(tgUserID int64, code string) models.Language {
	lang := r.defaultLang
	if parsed, ok := models.ParseLanguage(code); ok {
		lang = parsed
	}

	sess := r.sessions.Get(tgUserID)
	sess.State = models.StateAwaitingFirstName
	sess.PendingLanguage = lang
	r.sessions.Put(tgUserID, sess)

	return lang
}

// SubmitName обрабатывает ввод имени или фамилии в зависимости от шага.
// Пустой или состоящий из пробелов ввод отклоняется с ErrMalformedInput,
// состояние диалога при этом не меняется. Возвращает done=true, когда
// регистрация завершена и пользователь сохранен.
func (r *Registration) SubmitName(ctx context.Context, tgUserID int64, text string) (bool, error) {
	const op = "Registration.SubmitName"

	name := strings.TrimSpace(text)
	if name == "" {
		return false, models.ErrMalformedInput
	}

	sess := r.sessions.Get(tgUserID)

	switch sess.State {
	case models.StateAwaitingFirstName:
		sess.PendingFirstName = name
		sess.State = models.StateAwaitingLastName
		r.sessions.Put(tgUserID, sess)

		return false, nil

	case models.StateAwaitingLastName:
		lang := sess.PendingLanguage
		if lang == "" {
			lang = r.defaultLang
		}

		user := models.User{
			TgUserID:     tgUserID,
			FirstName:    sess.PendingFirstName,
			LastName:     name,
			Language:     lang,
			RegisteredAt: time.Now(),
		}

		// вставка идемпотентна: конфликт по tg_user_id - no-op,
		// значения первой записи сохраняются
		if err := r.store.AddUser(ctx, user); err != nil {
			r.log.Error("failed to save user",
				slog.String("op", op),
				slog.Int64("tgUserID", tgUserID),
				sl.Err(err),
			)

			return false, fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
		}

		r.sessions.Reset(tgUserID)

		r.log.Info("user registered",
			slog.Int64("tgUserID", tgUserID),
			slog.String("displayName", user.DisplayName()),
		)

		return true, nil

	default:
		return false, fmt.Errorf("%s: unexpected state %s", op, sess.State)
	}
}

// UserLanguage возвращает язык пользователя: из профиля для
// зарегистрированных, из сессии или по умолчанию для остальных
func (r *Registration) UserLanguage(ctx context.Context, tgUserID int64) models.Language {
	user, err := r.store.GetUser(ctx, tgUserID)
	if err == nil && user != nil {
		return user.Language
	}

	if sess := r.sessions.Get(tgUserID); sess.PendingLanguage != "" {
		return sess.PendingLanguage
	}

	return r.defaultLang
}

// SwitchLanguage меняет язык уже зарегистрированного пользователя,
// единственное изменяемое поле профиля
func (r *Registration) SwitchLanguage(ctx context.Context, tgUserID int64, code string) (models.Language, error) {
	const op = "Registration.SwitchLanguage"

	lang, ok := models.ParseLanguage(code)
	if !ok {
		return "", models.ErrMalformedInput
	}

	if err := r.store.UpdateUserLanguage(ctx, tgUserID, lang); err != nil {
		r.log.Error("failed to update language", slog.String("op", op), sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}

	return lang, nil
}
