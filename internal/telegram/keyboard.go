package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	buttonCheckIn  = "🟢 Anmeldung"
	buttonCheckOut = "🔴 Abmeldung"
	buttonLocation = "📍 Standort senden"
)

var languageButtons = map[string]string{
	"🇩🇪 Deutsch":    "de",
	"🇷🇺 Русский":    "ru",
	"🇬🇧 English":    "en",
	"🇺🇦 Українська": "uk",
}

// KeyboardManager содержит фиксированный набор именованных клавиатур:
// Main, TaskChoice, LocationRequest, LanguageChoice
type KeyboardManager struct {
	main     tgbotapi.ReplyKeyboardMarkup
	tasks    tgbotapi.ReplyKeyboardMarkup
	location tgbotapi.ReplyKeyboardMarkup
	language tgbotapi.ReplyKeyboardMarkup
}

// NewKeyboardManager создает менеджер клавиатур,
// tasks - сконфигурированный набор категорий работ
func NewKeyboardManager(tasks []string) *KeyboardManager {
	km := &KeyboardManager{}

	km.main = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonCheckIn),
			tgbotapi.NewKeyboardButton(buttonCheckOut),
		),
	)
	km.main.ResizeKeyboard = true

	taskRows := make([][]tgbotapi.KeyboardButton, 0, len(tasks))
	for _, task := range tasks {
		taskRows = append(taskRows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(task)))
	}
	km.tasks = tgbotapi.NewReplyKeyboard(taskRows...)
	km.tasks.ResizeKeyboard = true

	km.location = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(buttonLocation),
		),
	)
	km.location.ResizeKeyboard = true
	km.location.OneTimeKeyboard = true

	km.language = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🇩🇪 Deutsch"),
			tgbotapi.NewKeyboardButton("🇷🇺 Русский"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🇬🇧 English"),
			tgbotapi.NewKeyboardButton("🇺🇦 Українська"),
		),
	)
	km.language.ResizeKeyboard = true
	km.language.OneTimeKeyboard = true

	return km
}

func (km *KeyboardManager) Main() tgbotapi.ReplyKeyboardMarkup {
	return km.main
}

func (km *KeyboardManager) TaskChoice() tgbotapi.ReplyKeyboardMarkup {
	return km.tasks
}

func (km *KeyboardManager) LocationRequest() tgbotapi.ReplyKeyboardMarkup {
	return km.location
}

func (km *KeyboardManager) LanguageChoice() tgbotapi.ReplyKeyboardMarkup {
	return km.language
}

// ParseButtonCommand конвертирует текст кнопки главной клавиатуры в команду
func ParseButtonCommand(text string) string {
	buttonToCommand := map[string]string{
		buttonCheckIn:  "anmeldung",
		buttonCheckOut: "abmeldung",
	}

	if command, exists := buttonToCommand[text]; exists {
		return command
	}

	return ""
}

// ParseLanguageButton возвращает код языка по тексту кнопки
func ParseLanguageButton(text string) (string, bool) {
	code, ok := languageButtons[text]
	return code, ok
}
