package statemachine

import (
	"testing"

	"bollwerkBot/internal/domain/models"
)

func TestHandleEvent(t *testing.T) {
	sm := NewStateMachine()

	tests := []struct {
		name    string
		state   models.ConversationState
		event   Event
		want    models.ConversationState
		wantErr bool
	}{
		{"Anmeldung из Idle", models.StateIdle, EventBeginShift, models.StateAwaitingTask, false},
		{"Abmeldung из Idle", models.StateIdle, EventEndShift, models.StateAwaitingEndLocation, false},
		{"выбор задачи", models.StateAwaitingTask, EventTaskChosen, models.StateAwaitingStartLocation, false},
		{"свободный текст как задача", models.StateAwaitingTask, EventTextMessage, models.StateAwaitingStartLocation, false},
		{"геолокация при старте", models.StateAwaitingStartLocation, EventLocationReceived, models.StateIdle, false},
		{"геолокация при завершении", models.StateAwaitingEndLocation, EventLocationReceived, models.StateIdle, false},
		{"текст во время ожидания геолокации не двигает состояние", models.StateAwaitingStartLocation, EventTextMessage, models.StateAwaitingStartLocation, false},
		{"геолокация в Idle отклоняется", models.StateIdle, EventLocationReceived, models.StateIdle, true},
		{"выбор языка", models.StateAwaitingLanguage, EventLanguageChosen, models.StateAwaitingFirstName, false},
		{"ввод имени", models.StateAwaitingFirstName, EventTextMessage, models.StateAwaitingLastName, false},
		{"ввод фамилии завершает регистрацию", models.StateAwaitingLastName, EventTextMessage, models.StateIdle, false},
		{"рестарт из любого состояния", models.StateAwaitingEndLocation, EventRestart, models.StateIdle, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sm.HandleEvent(tt.state, tt.event)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("HandleEvent(%s, %s) expected error", tt.state, tt.event)
				}
				return
			}

			if err != nil {
				t.Fatalf("HandleEvent(%s, %s) error: %v", tt.state, tt.event, err)
			}
			if got != tt.want {
				t.Errorf("HandleEvent(%s, %s) = %s, want %s", tt.state, tt.event, got, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	sm := NewStateMachine()

	if !sm.CanTransition(models.StateIdle, models.StateAwaitingTask) {
		t.Error("Idle -> AwaitingTask should be allowed")
	}

	if !sm.CanTransition(models.StateAwaitingTask, models.StateAwaitingStartLocation) {
		t.Error("AwaitingTask -> AwaitingStartLocation should be allowed")
	}

	if sm.CanTransition(models.StateIdle, models.StateAwaitingFirstName) {
		t.Error("Idle -> AwaitingFirstName should not be allowed")
	}

	if sm.CanTransition(models.StateAwaitingEndLocation, models.StateAwaitingTask) {
		t.Error("AwaitingEndLocation -> AwaitingTask should not be allowed")
	}
}
