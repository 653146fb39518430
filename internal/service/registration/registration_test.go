package registrationservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"bollwerkBot/internal/domain/models"
	"bollwerkBot/internal/repository"
	"bollwerkBot/internal/session"
)

func newTestRegistration(t *testing.T) (*Registration, *repository.MemoryRepository, *session.Store) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	sessions := session.NewStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, repo, sessions, models.LanguageDE), repo, sessions
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessions := newTestRegistration(t)

	registered, err := svc.IsRegistered(ctx, 1)
	if err != nil {
		t.Fatalf("IsRegistered() error: %v", err)
	}
	if registered {
		t.Fatal("new user should not be registered")
	}

	svc.Begin(1)
	if got := sessions.Get(1).State; got != models.StateAwaitingLanguage {
		t.Fatalf("state = %s, want %s", got, models.StateAwaitingLanguage)
	}

	if lang := svc.ChooseLanguage(1, "ru"); lang != models.LanguageRU {
		t.Errorf("ChooseLanguage() = %s, want ru", lang)
	}

	done, err := svc.SubmitName(ctx, 1, "Max")
	if err != nil {
		t.Fatalf("SubmitName(first) error: %v", err)
	}
	if done {
		t.Fatal("registration should not be done after first name")
	}

	done, err = svc.SubmitName(ctx, 1, "Mustermann")
	if err != nil {
		t.Fatalf("SubmitName(last) error: %v", err)
	}
	if !done {
		t.Fatal("registration should be done after last name")
	}

	user, err := repo.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if user.FirstName != "Max" || user.LastName != "Mustermann" {
		t.Errorf("user = %+v", user)
	}
	if user.Language != models.LanguageRU {
		t.Errorf("language = %s, want ru", user.Language)
	}

	// диалог завершен
	if got := sessions.Get(1).State; got != models.StateIdle {
		t.Errorf("state = %s, want %s", got, models.StateIdle)
	}
}

func TestSubmitNameRejectsEmptyInput(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessions := newTestRegistration(t)

	svc.Begin(1)
	svc.ChooseLanguage(1, "de")

	tests := []string{"", "   ", "\t\n"}

	for _, input := range tests {
		done, err := svc.SubmitName(ctx, 1, input)
		if !errors.Is(err, models.ErrMalformedInput) {
			t.Errorf("SubmitName(%q) error = %v, want ErrMalformedInput", input, err)
		}
		if done {
			t.Errorf("SubmitName(%q) reported done", input)
		}

		// состояние не изменилось, можно повторить ввод
		if got := sessions.Get(1).State; got != models.StateAwaitingFirstName {
			t.Errorf("state after %q = %s, want %s", input, got, models.StateAwaitingFirstName)
		}
	}

	// пользователь не сохранен
	if _, err := repo.GetUser(ctx, 1); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestRegistrationIsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestRegistration(t)

	register := func(first, last string) {
		svc.Begin(1)
		svc.ChooseLanguage(1, "de")
		if _, err := svc.SubmitName(ctx, 1, first); err != nil {
			t.Fatalf("SubmitName(%q) error: %v", first, err)
		}
		if _, err := svc.SubmitName(ctx, 1, last); err != nil {
			t.Fatalf("SubmitName(%q) error: %v", last, err)
		}
	}

	register("Max", "Mustermann")
	register("Erika", "Musterfrau")

	// значения первой записи сохраняются
	user, err := repo.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if user.FirstName != "Max" || user.LastName != "Mustermann" {
		t.Errorf("user = %+v, want first write retained", user)
	}

	users, err := repo.AllUsers(ctx)
	if err != nil {
		t.Fatalf("AllUsers() error: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("got %d users, want exactly 1", len(users))
	}
}

func TestChooseLanguageFallsBackToDefault(t *testing.T) {
	svc, _, sessions := newTestRegistration(t)

	svc.Begin(1)

	if lang := svc.ChooseLanguage(1, "xx"); lang != models.LanguageDE {
		t.Errorf("ChooseLanguage(xx) = %s, want default de", lang)
	}

	if got := sessions.Get(1).State; got != models.StateAwaitingFirstName {
		t.Errorf("state = %s, want %s", got, models.StateAwaitingFirstName)
	}
}

func TestSwitchLanguage(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestRegistration(t)

	if err := repo.AddUser(ctx, models.User{
		TgUserID:     1,
		FirstName:    "Max",
		LastName:     "Mustermann",
		Language:     models.LanguageDE,
		RegisteredAt: time.Now(),
	}); err != nil {
		t.Fatalf("AddUser() error: %v", err)
	}

	lang, err := svc.SwitchLanguage(ctx, 1, "uk")
	if err != nil {
		t.Fatalf("SwitchLanguage() error: %v", err)
	}
	if lang != models.LanguageUK {
		t.Errorf("lang = %s, want uk", lang)
	}

	if got := svc.UserLanguage(ctx, 1); got != models.LanguageUK {
		t.Errorf("UserLanguage() = %s, want uk", got)
	}

	if _, err := svc.SwitchLanguage(ctx, 1, "xx"); !errors.Is(err, models.ErrMalformedInput) {
		t.Errorf("SwitchLanguage(xx) error = %v, want ErrMalformedInput", err)
	}
}
