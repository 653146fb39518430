package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bollwerkBot/internal/domain/models"
)

// MemoryRepository хранит все в памяти процесса.
// Используется в тестах как замена Postgres-реализации.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	events []models.ShiftEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[int64]models.User),
	}
}

func (r *MemoryRepository) UserExists(_ context.Context, tgUserID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[tgUserID]
	return ok, nil
}

func (r *MemoryRepository) GetUser(_ context.Context, tgUserID int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[tgUserID]
	if !ok {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

func (r *MemoryRepository) AddUser(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// first-writer-wins: повторная вставка молча игнорируется
	if _, ok := r.users[user.TgUserID]; ok {
		return nil
	}

	r.users[user.TgUserID] = user
	return nil
}

func (r *MemoryRepository) UpdateUserLanguage(_ context.Context, tgUserID int64, lang models.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[tgUserID]
	if !ok {
		return ErrUserNotFound
	}

	user.Language = lang
	r.users[tgUserID] = user
	return nil
}

func (r *MemoryRepository) AllUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].RegisteredAt.Before(users[j].RegisteredAt)
	})

	return users, nil
}

func (r *MemoryRepository) LogEvent(_ context.Context, event models.ShiftEvent) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	r.events = append(r.events, event)
	return event.ID, nil
}

func (r *MemoryRepository) UserEvents(_ context.Context, tgUserID int64, since *time.Time) ([]models.ShiftEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.ShiftEvent
	for _, event := range r.events {
		if event.TgUserID != tgUserID {
			continue
		}
		if since != nil && event.OccurredAt.Before(*since) {
			continue
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})

	return events, nil
}

func (r *MemoryRepository) History(_ context.Context, limit int) ([]models.ShiftEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]models.ShiftEvent, len(r.events))
	copy(events, r.events)

	sort.Slice(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (r *MemoryRepository) ResetAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[int64]models.User)
	r.events = nil
	return nil
}
