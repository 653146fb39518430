package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bollwerkBot/internal/domain/models"
	"bollwerkBot/internal/localization"
	"bollwerkBot/internal/pkg/logger/sl"
	reportservice "bollwerkBot/internal/service/report"
	registrationservice "bollwerkBot/internal/service/registration"
	shiftservice "bollwerkBot/internal/service/shift"
	"bollwerkBot/internal/session"
)

// AdminStore операции хранилища для административных команд
type AdminStore interface {
	AllUsers(ctx context.Context) ([]models.User, error)
	ResetAll(ctx context.Context) error
}

type Handler struct {
	bot          *tgbotapi.BotAPI
	registration *registrationservice.Registration
	shift        *shiftservice.Shift
	report       *reportservice.Report
	store        AdminStore
	sessions     *session.Store
	km           *KeyboardManager
	log          *slog.Logger
	adminIDs     map[int64]struct{}
	historyLimit int
}

func NewHandler(
	log *slog.Logger,
	bot *tgbotapi.BotAPI,
	registration *registrationservice.Registration,
	shift *shiftservice.Shift,
	report *reportservice.Report,
	store AdminStore,
	sessions *session.Store,
	km *KeyboardManager,
	adminIDs []int64,
	historyLimit int,
) *Handler {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Handler{
		bot:          bot,
		registration: registration,
		shift:        shift,
		report:       report,
		store:        store,
		sessions:     sessions,
		km:           km,
		log:          log,
		adminIDs:     admins,
		historyLimit: historyLimit,
	}
}

// Start запускает обработку сообщений от Telegram.
// События обрабатываются последовательно: каждое входящее сообщение
// доводится до конца прежде, чем принимается следующее.
func (h *Handler) Start(ctx context.Context) error {
	h.log.Info("authorized on account", slog.String("username", h.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	tgUserID := message.From.ID
	lang := h.registration.UserLanguage(ctx, tgUserID)

	if message.IsCommand() {
		h.handleCommand(ctx, message, lang)
		return
	}

	if message.Location != nil {
		h.handleLocation(ctx, message, lang)
		return
	}

	// кнопки главной клавиатуры работают как команды
	switch h.buttonCommand(tgUserID, message.Text) {
	case "anmeldung":
		h.handleAnmeldung(ctx, message, lang)
		return
	case "abmeldung":
		h.handleAbmeldung(ctx, message, lang)
		return
	}

	h.handleText(ctx, message, lang)
}

// buttonCommand трактует нажатие главной клавиатуры как команду только
// из Idle. Внутри потока текст кнопки идет через диалоговый обработчик:
// при ожидающем запросе геолокации пользователь получает подсказку,
// состояние не меняется.
func (h *Handler) buttonCommand(tgUserID int64, text string) string {
	if h.sessions.Get(tgUserID).State != models.StateIdle {
		return ""
	}

	return ParseButtonCommand(text)
}

// handleCommand обрабатывает команды бота
func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	switch message.Command() {
	case "start":
		h.handleStart(ctx, message, lang)
	case "language":
		h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgChooseLanguage), h.km.LanguageChoice())
	case "status":
		h.handleStatus(ctx, message, lang)
	case "history":
		h.handleHistory(ctx, message, lang)
	case "weekly_hours":
		h.handleWeeklyHours(ctx, message, lang)
	case "reset_users":
		h.handleResetUsers(ctx, message, lang)
	default:
		h.send(message.Chat.ID, localization.Text(lang, localization.MsgUnknownCommand))
	}
}

// handleStart регистрирует нового пользователя или приветствует старого.
// Для уже начатых диалогов работает как безусловный рестарт.
func (h *Handler) handleStart(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	tgUserID := message.From.ID

	registered, err := h.registration.IsRegistered(ctx, tgUserID)
	if err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return
	}

	if !registered {
		h.registration.Begin(tgUserID)
		h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgChooseLanguage), h.km.LanguageChoice())
		return
	}

	h.shift.Restart(tgUserID)
	h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgWelcome), h.km.Main())
}

// handleAnmeldung начинает поток открытия смены
func (h *Handler) handleAnmeldung(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	tgUserID := message.From.ID

	// Registration Gate: незарегистрированный пользователь сначала
	// проходит регистрацию, событие в журнал не пишется
	if !h.passGate(ctx, message, lang) {
		return
	}

	if err := h.shift.Begin(tgUserID); err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return
	}

	h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgChooseTask), h.km.TaskChoice())
}

// handleAbmeldung начинает поток закрытия смены
func (h *Handler) handleAbmeldung(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	tgUserID := message.From.ID

	if !h.passGate(ctx, message, lang) {
		return
	}

	if err := h.shift.End(tgUserID); err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return
	}

	h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgSendLocation), h.km.LocationRequest())
}

// passGate пропускает только зарегистрированных пользователей,
// для остальных запускает диалог регистрации
func (h *Handler) passGate(ctx context.Context, message *tgbotapi.Message, lang models.Language) bool {
	registered, err := h.registration.IsRegistered(ctx, message.From.ID)
	if err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return false
	}

	if registered {
		return true
	}

	h.registration.Begin(message.From.ID)
	h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgChooseLanguage), h.km.LanguageChoice())

	return false
}

// handleLocation обрабатывает присланную геолокацию
func (h *Handler) handleLocation(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	loc := models.Location{
		Latitude:  message.Location.Latitude,
		Longitude: message.Location.Longitude,
	}

	kind, err := h.shift.HandleLocation(ctx, message.From.ID, loc)
	if err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return
	}

	key := localization.MsgCheckInDone
	if kind == models.KindCheckOut {
		key = localization.MsgCheckOutDone
	}

	h.sendKeyboard(message.Chat.ID, localization.Text(lang, key), h.km.Main())
}

// handleText обрабатывает текст в зависимости от состояния диалога
func (h *Handler) handleText(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	tgUserID := message.From.ID
	sess := h.sessions.Get(tgUserID)

	switch sess.State {
	case models.StateAwaitingLanguage:
		code, ok := ParseLanguageButton(message.Text)
		if !ok {
			h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgChooseLanguage), h.km.LanguageChoice())
			return
		}

		chosen := h.registration.ChooseLanguage(tgUserID, code)
		h.send(message.Chat.ID, localization.Text(chosen, localization.MsgAskFirstName))

	case models.StateAwaitingFirstName, models.StateAwaitingLastName:
		done, err := h.registration.SubmitName(ctx, tgUserID, message.Text)
		if err != nil {
			if errors.Is(err, models.ErrMalformedInput) {
				h.send(message.Chat.ID, localization.Text(lang, localization.MsgEmptyName))
				return
			}
			h.replyError(message.Chat.ID, lang, err)
			return
		}

		if done {
			h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgRegistered), h.km.Main())
			return
		}

		h.send(message.Chat.ID, localization.Text(lang, localization.MsgAskLastName))

	case models.StateAwaitingTask:
		if err := h.shift.ChooseTask(tgUserID, strings.TrimSpace(message.Text)); err != nil {
			h.replyError(message.Chat.ID, lang, err)
			return
		}

		h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgSendLocation), h.km.LocationRequest())

	case models.StateAwaitingStartLocation, models.StateAwaitingEndLocation:
		// текст не двигает состояние, ждем геолокацию
		h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgLocationPendingHint), h.km.LocationRequest())

	default:
		registered, err := h.registration.IsRegistered(ctx, tgUserID)
		if err != nil {
			h.replyError(message.Chat.ID, lang, err)
			return
		}

		// кнопка смены языка после /language
		if code, ok := ParseLanguageButton(message.Text); ok && registered {
			chosen, err := h.registration.SwitchLanguage(ctx, tgUserID, code)
			if err != nil {
				h.replyError(message.Chat.ID, lang, err)
				return
			}

			h.sendKeyboard(message.Chat.ID, localization.Text(chosen, localization.MsgLanguageSet), h.km.Main())
			return
		}

		if !registered {
			h.registration.Begin(tgUserID)
			h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgChooseLanguage), h.km.LanguageChoice())
			return
		}

		h.sendKeyboard(message.Chat.ID, localization.Text(lang, localization.MsgWelcome), h.km.Main())
	}
}

// handleStatus выводит все открытые смены (только для админов)
func (h *Handler) handleStatus(_ context.Context, message *tgbotapi.Message, lang models.Language) {
	if !h.requireAdmin(message, lang) {
		return
	}

	shifts := h.shift.ActiveShifts()
	if len(shifts) == 0 {
		h.send(message.Chat.ID, localization.Text(lang, localization.MsgNoActiveShifts))
		return
	}

	var sb strings.Builder
	sb.WriteString(localization.Text(lang, localization.MsgActiveShiftsHeader) + "\n\n")
	for _, shift := range shifts {
		sb.WriteString(fmt.Sprintf(
			"%s | %s | seit %s | %.4f, %.4f\n",
			shift.DisplayName,
			shift.Task,
			shift.StartedAt.Format("02.01 15:04"),
			shift.Start.Latitude,
			shift.Start.Longitude,
		))
	}

	h.send(message.Chat.ID, sb.String())
}

// handleHistory выводит последние записи журнала (только для админов)
func (h *Handler) handleHistory(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	if !h.requireAdmin(message, lang) {
		return
	}

	events, err := h.report.History(ctx, h.historyLimit)
	if err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return
	}

	if len(events) == 0 {
		h.send(message.Chat.ID, localization.Text(lang, localization.MsgNoHistory))
		return
	}

	var sb strings.Builder
	sb.WriteString(localization.Text(lang, localization.MsgHistoryHeader) + "\n\n")
	for _, event := range events {
		sb.WriteString(fmt.Sprintf(
			"%s | %s | %s | %.4f, %.4f\n",
			event.DisplayName,
			kindLabel(event.Kind),
			event.OccurredAt.Format("02.01.2006 15:04"),
			event.Latitude,
			event.Longitude,
		))
	}

	h.send(message.Chat.ID, sb.String())
}

// handleWeeklyHours выводит отработанные часы с начала недели (только для админов)
func (h *Handler) handleWeeklyHours(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	if !h.requireAdmin(message, lang) {
		return
	}

	now := time.Now()

	hours, err := h.report.WeeklyHours(ctx, now)
	if err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return
	}

	if len(hours) == 0 {
		h.send(message.Chat.ID, localization.Text(lang, localization.MsgNoUsers))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		localization.Text(lang, localization.MsgWeeklyHeader)+"\n\n",
		h.report.WeekStartTime(now).Format("02.01.2006"),
	))
	for _, uh := range hours {
		sb.WriteString(fmt.Sprintf("%s: %.2f h\n", uh.DisplayName, uh.Hours))
	}

	h.send(message.Chat.ID, sb.String())
}

// handleResetUsers удаляет всех пользователей и все события,
// предварительно уведомив затронутых пользователей (только для админов)
func (h *Handler) handleResetUsers(ctx context.Context, message *tgbotapi.Message, lang models.Language) {
	if !h.requireAdmin(message, lang) {
		return
	}

	users, err := h.store.AllUsers(ctx)
	if err != nil {
		h.log.Error("failed to list users before reset", sl.Err(err))
		h.replyError(message.Chat.ID, lang, models.ErrStoreUnavailable)
		return
	}

	// уведомления best-effort, сбой не отменяет сброс
	for _, user := range users {
		h.send(user.TgUserID, localization.Text(user.Language, localization.MsgUsersReset))
	}

	if err := h.store.ResetAll(ctx); err != nil {
		h.log.Error("failed to reset store", sl.Err(err))
		h.replyError(message.Chat.ID, lang, models.ErrStoreUnavailable)
		return
	}

	h.sessions.ClearAll()

	h.send(message.Chat.ID, fmt.Sprintf(localization.Text(lang, localization.MsgResetDone), len(users)))
}

// requireAdmin пропускает только сконфигурированных администраторов
func (h *Handler) requireAdmin(message *tgbotapi.Message, lang models.Language) bool {
	if err := h.authorize(message.From.ID); err != nil {
		h.replyError(message.Chat.ID, lang, err)
		return false
	}

	return true
}

// authorize fail-closed: любой отправитель вне сконфигурированного
// набора администраторов получает ErrUnauthorized
func (h *Handler) authorize(tgUserID int64) error {
	if _, ok := h.adminIDs[tgUserID]; ok {
		return nil
	}

	return models.ErrUnauthorized
}

// replyError превращает ошибку таксономии в ответ на языке пользователя.
// Состояние диалога при этом не меняется, пользователь может повторить.
func (h *Handler) replyError(chatID int64, lang models.Language, err error) {
	switch {
	case errors.Is(err, models.ErrAlreadyActive):
		h.sendKeyboard(chatID, localization.Text(lang, localization.MsgAlreadyActive), h.km.Main())
	case errors.Is(err, models.ErrNoActiveShift):
		h.sendKeyboard(chatID, localization.Text(lang, localization.MsgNoActiveShift), h.km.Main())
	case errors.Is(err, models.ErrUnexpectedLocation):
		h.sendKeyboard(chatID, localization.Text(lang, localization.MsgUnexpectedLocation), h.km.Main())
	case errors.Is(err, models.ErrUnauthorized):
		h.send(chatID, localization.Text(lang, localization.MsgUnauthorized))
	case errors.Is(err, models.ErrMalformedInput):
		h.send(chatID, localization.Text(lang, localization.MsgEmptyName))
	default:
		h.log.Error("request failed", sl.Err(err))
		h.send(chatID, localization.Text(lang, localization.MsgStoreError))
	}
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Warn("failed to send message", slog.Int64("chatID", chatID), sl.Err(err))
	}
}

func (h *Handler) sendKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Warn("failed to send message", slog.Int64("chatID", chatID), sl.Err(err))
	}
}

func kindLabel(kind models.EventKind) string {
	if kind == models.KindCheckOut {
		return "Abmeldung"
	}

	return "Anmeldung"
}
