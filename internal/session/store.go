package session

import (
	"sort"
	"sync"

	"bollwerkBot/internal/domain/models"
)

// Session транзиентное состояние диалога одного пользователя.
// Промежуточные поля живут только между шагами потока и очищаются
// вместе с возвратом в Idle.
type Session struct {
	State            models.ConversationState
	PendingLanguage  models.Language
	PendingFirstName string
	PendingTask      string
}

// Store хранит состояния диалогов и открытые смены, ключ - tg_user_id.
// Передается явно во все обработчики, глобального состояния нет.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
	active   map[int64]models.ActiveShift
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]Session),
		active:   make(map[int64]models.ActiveShift),
	}
}

// Get возвращает сессию пользователя, для нового пользователя - Idle
func (s *Store) Get(tgUserID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[tgUserID]
	if !ok {
		return Session{State: models.StateIdle}
	}

	return sess
}

func (s *Store) Put(tgUserID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[tgUserID] = sess
}

// Reset безусловно возвращает диалог в Idle и очищает промежуточные поля
func (s *Store) Reset(tgUserID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[tgUserID] = Session{State: models.StateIdle}
}

// Active возвращает открытую смену пользователя, если она есть
func (s *Store) Active(tgUserID int64) (models.ActiveShift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.active[tgUserID]
	return shift, ok
}

// SetActive сохраняет открытую смену. Не более одной смены на пользователя:
// ключ по tg_user_id перезаписывает, а вызывающий код обязан проверить
// отсутствие смены до Anmeldung.
func (s *Store) SetActive(shift models.ActiveShift) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active[shift.TgUserID] = shift
}

func (s *Store) ClearActive(tgUserID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.active, tgUserID)
}

// ActiveShifts возвращает все открытые смены, отсортированные по началу
func (s *Store) ActiveShifts() []models.ActiveShift {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts := make([]models.ActiveShift, 0, len(s.active))
	for _, shift := range s.active {
		shifts = append(shifts, shift)
	}

	sort.Slice(shifts, func(i, j int) bool {
		return shifts[i].StartedAt.Before(shifts[j].StartedAt)
	})

	return shifts
}

// ClearAll сбрасывает все сессии и открытые смены (административный сброс)
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[int64]Session)
	s.active = make(map[int64]models.ActiveShift)
}
