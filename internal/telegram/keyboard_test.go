package telegram

import "testing"

func TestParseButtonCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "check-in button",
			text: "🟢 Anmeldung",
			want: "anmeldung",
		},
		{
			name: "check-out button",
			text: "🔴 Abmeldung",
			want: "abmeldung",
		},
		{
			name: "free text is not a command",
			text: "Hallo",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseButtonCommand(tt.text); got != tt.want {
				t.Errorf("ParseButtonCommand(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseLanguageButton(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOk bool
	}{
		{"🇩🇪 Deutsch", "de", true},
		{"🇷🇺 Русский", "ru", true},
		{"🇬🇧 English", "en", true},
		{"🇺🇦 Українська", "uk", true},
		{"Deutsch", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLanguageButton(tt.text)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("ParseLanguageButton(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestTaskKeyboardRows(t *testing.T) {
	km := NewKeyboardManager([]string{"Garten", "Reinigung", "Winterdienst"})

	if got := len(km.TaskChoice().Keyboard); got != 3 {
		t.Errorf("task keyboard has %d rows, want 3", got)
	}
}
