package statemachine

import (
	"fmt"
	"sync"

	"bollwerkBot/internal/domain/models"
)

// Event представляет событие, которое может вызвать переход состояния
type Event string

const (
	EventBeginShift       Event = "begin_shift"  // Anmeldung
	EventEndShift         Event = "end_shift"    // Abmeldung
	EventLanguageChosen   Event = "language_chosen"
	EventTextMessage      Event = "text_message"
	EventTaskChosen       Event = "task_chosen"
	EventLocationReceived Event = "location_received"
	EventRestart          Event = "restart"
)

// Transition описывает переход из одного состояния в другое
type Transition struct {
	From models.ConversationState
	To   models.ConversationState
}

// StateMachine проверяет допустимость переходов диалога
type StateMachine struct {
	transitions map[Transition]bool
	mu          sync.RWMutex
}

// NewStateMachine создает state machine с разрешенными переходами
func NewStateMachine() *StateMachine {
	sm := &StateMachine{
		transitions: make(map[Transition]bool),
	}

	allowedTransitions := []Transition{
		// Текст в Idle не двигает состояние
		{models.StateIdle, models.StateIdle},

		// Регистрация: язык -> имя -> фамилия -> Idle
		{models.StateIdle, models.StateAwaitingLanguage},
		{models.StateAwaitingLanguage, models.StateAwaitingLanguage},
		{models.StateAwaitingLanguage, models.StateAwaitingFirstName},
		{models.StateAwaitingFirstName, models.StateAwaitingLastName},
		{models.StateAwaitingLastName, models.StateIdle},

		// Пустой ввод имени: остаемся на месте и переспрашиваем
		{models.StateAwaitingFirstName, models.StateAwaitingFirstName},
		{models.StateAwaitingLastName, models.StateAwaitingLastName},

		// Anmeldung: Idle -> выбор задачи -> ожидание геолокации -> Idle
		{models.StateIdle, models.StateAwaitingTask},
		{models.StateAwaitingTask, models.StateAwaitingStartLocation},
		{models.StateAwaitingStartLocation, models.StateIdle},

		// Abmeldung: Idle -> ожидание геолокации -> Idle (задача не переспрашивается)
		{models.StateIdle, models.StateAwaitingEndLocation},
		{models.StateAwaitingEndLocation, models.StateIdle},

		// Текст во время ожидания геолокации не двигает состояние
		{models.StateAwaitingStartLocation, models.StateAwaitingStartLocation},
		{models.StateAwaitingEndLocation, models.StateAwaitingEndLocation},
	}

	for _, t := range allowedTransitions {
		sm.transitions[t] = true
	}

	return sm
}

// CanTransition проверяет, возможен ли переход из текущего состояния в новое.
// Рестарт разрешен из любого состояния и здесь не проверяется.
func (sm *StateMachine) CanTransition(from, to models.ConversationState) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.transitions[Transition{from, to}]
}

// HandleEvent определяет новое состояние на основе события и текущего
// состояния. Результат сверяется с таблицей переходов: таблица остается
// единственным источником истины о допустимых переходах.
func (sm *StateMachine) HandleEvent(currentState models.ConversationState, event Event) (models.ConversationState, error) {
	if event == EventRestart {
		// рестарт сбрасывает диалог безусловно
		return models.StateIdle, nil
	}

	next, err := dispatch(currentState, event)
	if err != nil {
		return currentState, err
	}

	if !sm.CanTransition(currentState, next) {
		return currentState, fmt.Errorf("transition from %s to %s is not allowed", currentState, next)
	}

	return next, nil
}

func dispatch(currentState models.ConversationState, event Event) (models.ConversationState, error) {
	switch currentState {
	case models.StateIdle:
		switch event {
		case EventBeginShift:
			return models.StateAwaitingTask, nil
		case EventEndShift:
			return models.StateAwaitingEndLocation, nil
		case EventTextMessage:
			return models.StateIdle, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	case models.StateAwaitingLanguage:
		switch event {
		case EventLanguageChosen:
			return models.StateAwaitingFirstName, nil
		case EventTextMessage:
			// ждем нажатия кнопки, текст игнорируем
			return models.StateAwaitingLanguage, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	case models.StateAwaitingFirstName:
		switch event {
		case EventTextMessage:
			return models.StateAwaitingLastName, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	case models.StateAwaitingLastName:
		switch event {
		case EventTextMessage:
			return models.StateIdle, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	case models.StateAwaitingTask:
		switch event {
		case EventTaskChosen, EventTextMessage:
			// свободный текст тоже считается выбором задачи
			return models.StateAwaitingStartLocation, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	case models.StateAwaitingStartLocation:
		switch event {
		case EventLocationReceived:
			return models.StateIdle, nil
		case EventTextMessage:
			return models.StateAwaitingStartLocation, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	case models.StateAwaitingEndLocation:
		switch event {
		case EventLocationReceived:
			return models.StateIdle, nil
		case EventTextMessage:
			return models.StateAwaitingEndLocation, nil
		default:
			return currentState, fmt.Errorf("unexpected event %s in state %s", event, currentState)
		}

	default:
		return currentState, fmt.Errorf("unknown state: %s", currentState)
	}
}
