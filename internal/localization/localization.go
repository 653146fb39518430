package localization

import (
	"bollwerkBot/internal/domain/models"
)

// Key идентификатор ответной реплики
type Key string

const (
	MsgWelcome             Key = "welcome"
	MsgChooseLanguage      Key = "choose_language"
	MsgAskFirstName        Key = "ask_first_name"
	MsgAskLastName         Key = "ask_last_name"
	MsgRegistered          Key = "registered"
	MsgEmptyName           Key = "empty_name"
	MsgChooseTask          Key = "choose_task"
	MsgSendLocation        Key = "send_location"
	MsgCheckInDone         Key = "check_in_done"
	MsgCheckOutDone        Key = "check_out_done"
	MsgAlreadyActive       Key = "already_active"
	MsgNoActiveShift       Key = "no_active_shift"
	MsgUnexpectedLocation  Key = "unexpected_location"
	MsgLocationPendingHint Key = "location_pending_hint"
	MsgUnauthorized        Key = "unauthorized"
	MsgStoreError          Key = "store_error"
	MsgUnknownCommand      Key = "unknown_command"
	MsgUsersReset          Key = "users_reset"
	MsgLanguageSet         Key = "language_set"
	MsgNoActiveShifts      Key = "no_active_shifts"
	MsgActiveShiftsHeader  Key = "active_shifts_header"
	MsgNoHistory           Key = "no_history"
	MsgHistoryHeader       Key = "history_header"
	MsgNoUsers             Key = "no_users"
	MsgWeeklyHeader        Key = "weekly_header"
	MsgResetDone           Key = "reset_done"
)

var messages = map[models.Language]map[Key]string{
	models.LanguageDE: {
		MsgWelcome:             "Willkommen bei Bollwerk Objektservice!\nWählen Sie eine Aktion:",
		MsgChooseLanguage:      "Bitte wählen Sie Ihre Sprache:",
		MsgAskFirstName:        "Bitte geben Sie Ihren Vornamen ein:",
		MsgAskLastName:         "Bitte geben Sie Ihren Nachnamen ein:",
		MsgRegistered:          "✅ Registrierung abgeschlossen. Wählen Sie eine Aktion:",
		MsgEmptyName:           "❌ Der Name darf nicht leer sein. Bitte versuchen Sie es erneut:",
		MsgChooseTask:          "Bitte wählen Sie eine Aufgabe:",
		MsgSendLocation:        "Bitte senden Sie Ihren Standort:",
		MsgCheckInDone:         "✅ Anmeldung erfasst",
		MsgCheckOutDone:        "✅ Abmeldung erfasst",
		MsgAlreadyActive:       "❌ Sie haben bereits eine aktive Schicht. Bitte melden Sie sich zuerst ab.",
		MsgNoActiveShift:       "❌ Abmeldung ohne vorherige Anmeldung ist nicht möglich.",
		MsgUnexpectedLocation:  "❌ Es wurde kein Standort angefordert.",
		MsgLocationPendingHint: "Bitte nutzen Sie die Taste unten, um Ihren Standort zu senden.",
		MsgUnauthorized:        "❌ Sie haben keinen Zugriff auf diesen Befehl.",
		MsgStoreError:          "❌ Es ist ein Fehler aufgetreten. Bitte versuchen Sie es später erneut.",
		MsgUnknownCommand:      "Unbekannter Befehl. Nutzen Sie /start.",
		MsgUsersReset:          "Alle Daten wurden vom Administrator zurückgesetzt. Nutzen Sie /start für eine neue Registrierung.",
		MsgLanguageSet:         "✅ Sprache aktualisiert.",
		MsgNoActiveShifts:      "Keine aktiven Schichten.",
		MsgActiveShiftsHeader:  "👷 Aktive Schichten:",
		MsgNoHistory:           "Keine Einträge.",
		MsgHistoryHeader:       "📝 Letzte Einträge:",
		MsgNoUsers:             "Keine registrierten Mitarbeiter.",
		MsgWeeklyHeader:        "⏱ Stunden seit %s:",
		MsgResetDone:           "✅ Zurückgesetzt: %d Benutzer.",
	},
	models.LanguageRU: {
		MsgWelcome:             "Добро пожаловать в Bollwerk Objektservice!\nВыберите действие:",
		MsgChooseLanguage:      "Пожалуйста, выберите язык:",
		MsgAskFirstName:        "Введите ваше имя:",
		MsgAskLastName:         "Введите вашу фамилию:",
		MsgRegistered:          "✅ Регистрация завершена. Выберите действие:",
		MsgEmptyName:           "❌ Имя не может быть пустым. Попробуйте еще раз:",
		MsgChooseTask:          "Выберите задачу:",
		MsgSendLocation:        "Пожалуйста, отправьте вашу геолокацию:",
		MsgCheckInDone:         "✅ Anmeldung зафиксирована",
		MsgCheckOutDone:        "✅ Abmeldung зафиксирована",
		MsgAlreadyActive:       "❌ У вас уже есть активная смена. Сначала сделайте Abmeldung.",
		MsgNoActiveShift:       "❌ Вы не можете сделать Abmeldung без предыдущего Anmeldung.",
		MsgUnexpectedLocation:  "❌ Геолокация сейчас не запрашивалась.",
		MsgLocationPendingHint: "Используйте кнопку ниже, чтобы отправить геолокацию.",
		MsgUnauthorized:        "❌ У вас нет доступа к этой команде.",
		MsgStoreError:          "❌ Произошла ошибка. Попробуйте позже.",
		MsgUnknownCommand:      "Неизвестная команда. Используйте /start.",
		MsgUsersReset:          "Администратор сбросил все данные. Используйте /start для новой регистрации.",
		MsgLanguageSet:         "✅ Язык обновлен.",
		MsgNoActiveShifts:      "Нет активных смен.",
		MsgActiveShiftsHeader:  "👷 Активные смены:",
		MsgNoHistory:           "Записей нет.",
		MsgHistoryHeader:       "📝 Последние записи:",
		MsgNoUsers:             "Нет зарегистрированных сотрудников.",
		MsgWeeklyHeader:        "⏱ Часы с %s:",
		MsgResetDone:           "✅ Сброшено: %d пользователей.",
	},
	models.LanguageEN: {
		MsgWelcome:             "Welcome to Bollwerk Objektservice!\nChoose an action:",
		MsgChooseLanguage:      "Please choose your language:",
		MsgAskFirstName:        "Please enter your first name:",
		MsgAskLastName:         "Please enter your last name:",
		MsgRegistered:          "✅ Registration completed. Choose an action:",
		MsgEmptyName:           "❌ The name must not be empty. Please try again:",
		MsgChooseTask:          "Please choose a task:",
		MsgSendLocation:        "Please send your location:",
		MsgCheckInDone:         "✅ Check-in recorded",
		MsgCheckOutDone:        "✅ Check-out recorded",
		MsgAlreadyActive:       "❌ You already have an active shift. Please check out first.",
		MsgNoActiveShift:       "❌ You cannot check out without a previous check-in.",
		MsgUnexpectedLocation:  "❌ No location was requested.",
		MsgLocationPendingHint: "Use the button below to send your location.",
		MsgUnauthorized:        "❌ You are not allowed to use this command.",
		MsgStoreError:          "❌ Something went wrong. Please try again later.",
		MsgUnknownCommand:      "Unknown command. Use /start.",
		MsgUsersReset:          "The administrator has reset all data. Use /start to register again.",
		MsgLanguageSet:         "✅ Language updated.",
		MsgNoActiveShifts:      "No active shifts.",
		MsgActiveShiftsHeader:  "👷 Active shifts:",
		MsgNoHistory:           "No entries.",
		MsgHistoryHeader:       "📝 Recent entries:",
		MsgNoUsers:             "No registered employees.",
		MsgWeeklyHeader:        "⏱ Hours since %s:",
		MsgResetDone:           "✅ Reset: %d users.",
	},
	models.LanguageUK: {
		MsgWelcome:             "Ласкаво просимо до Bollwerk Objektservice!\nОберіть дію:",
		MsgChooseLanguage:      "Будь ласка, оберіть мову:",
		MsgAskFirstName:        "Введіть ваше ім'я:",
		MsgAskLastName:         "Введіть ваше прізвище:",
		MsgRegistered:          "✅ Реєстрацію завершено. Оберіть дію:",
		MsgEmptyName:           "❌ Ім'я не може бути порожнім. Спробуйте ще раз:",
		MsgChooseTask:          "Оберіть завдання:",
		MsgSendLocation:        "Будь ласка, надішліть вашу геолокацію:",
		MsgCheckInDone:         "✅ Anmeldung зафіксовано",
		MsgCheckOutDone:        "✅ Abmeldung зафіксовано",
		MsgAlreadyActive:       "❌ У вас вже є активна зміна. Спочатку зробіть Abmeldung.",
		MsgNoActiveShift:       "❌ Ви не можете зробити Abmeldung без попереднього Anmeldung.",
		MsgUnexpectedLocation:  "❌ Геолокація зараз не запитувалася.",
		MsgLocationPendingHint: "Використовуйте кнопку нижче, щоб надіслати геолокацію.",
		MsgUnauthorized:        "❌ У вас немає доступу до цієї команди.",
		MsgStoreError:          "❌ Сталася помилка. Спробуйте пізніше.",
		MsgUnknownCommand:      "Невідома команда. Використовуйте /start.",
		MsgUsersReset:          "Адміністратор скинув усі дані. Використовуйте /start для нової реєстрації.",
		MsgLanguageSet:         "✅ Мову оновлено.",
		MsgNoActiveShifts:      "Немає активних змін.",
		MsgActiveShiftsHeader:  "👷 Активні зміни:",
		MsgNoHistory:           "Записів немає.",
		MsgHistoryHeader:       "📝 Останні записи:",
		MsgNoUsers:             "Немає зареєстрованих співробітників.",
		MsgWeeklyHeader:        "⏱ Години з %s:",
		MsgResetDone:           "✅ Скинуто: %d користувачів.",
	},
}

// Text возвращает реплику на языке пользователя,
// при отсутствии перевода падает обратно на немецкий
func Text(lang models.Language, key Key) string {
	if m, ok := messages[lang]; ok {
		if text, ok := m[key]; ok {
			return text
		}
	}

	if text, ok := messages[models.LanguageDE][key]; ok {
		return text
	}

	return string(key)
}
