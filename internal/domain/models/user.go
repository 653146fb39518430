package models

import (
	"time"
)

// Language поддерживаемые языки интерфейса
type Language string

const (
	LanguageDE Language = "de"
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
	LanguageUK Language = "uk"
)

// ParseLanguage возвращает язык по его коду, ok=false если код неизвестен
func ParseLanguage(code string) (Language, bool) {
	switch Language(code) {
	case LanguageDE, LanguageRU, LanguageEN, LanguageUK:
		return Language(code), true
	default:
		return "", false
	}
}

// User представляет зарегистрированного сотрудника
type User struct {
	TgUserID     int64     `db:"tg_user_id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Language     Language  `db:"language"`
	RegisteredAt time.Time `db:"registered_at"`
}

// DisplayName имя для уведомлений и отчетов
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
