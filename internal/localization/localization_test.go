package localization

import (
	"testing"

	"bollwerkBot/internal/domain/models"
)

var allKeys = []Key{
	MsgWelcome,
	MsgChooseLanguage,
	MsgAskFirstName,
	MsgAskLastName,
	MsgRegistered,
	MsgEmptyName,
	MsgChooseTask,
	MsgSendLocation,
	MsgCheckInDone,
	MsgCheckOutDone,
	MsgAlreadyActive,
	MsgNoActiveShift,
	MsgUnexpectedLocation,
	MsgLocationPendingHint,
	MsgUnauthorized,
	MsgStoreError,
	MsgUnknownCommand,
	MsgUsersReset,
	MsgLanguageSet,
	MsgNoActiveShifts,
	MsgActiveShiftsHeader,
	MsgNoHistory,
	MsgHistoryHeader,
	MsgNoUsers,
	MsgWeeklyHeader,
	MsgResetDone,
}

func TestAllLanguagesCoverAllKeys(t *testing.T) {
	languages := []models.Language{
		models.LanguageDE,
		models.LanguageRU,
		models.LanguageEN,
		models.LanguageUK,
	}

	for _, lang := range languages {
		for _, key := range allKeys {
			if text, ok := messages[lang][key]; !ok || text == "" {
				t.Errorf("language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestTextFallsBackToGerman(t *testing.T) {
	want := messages[models.LanguageDE][MsgWelcome]

	if got := Text("xx", MsgWelcome); got != want {
		t.Errorf("Text(xx) = %q, want german fallback %q", got, want)
	}
}
