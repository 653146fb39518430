package models

// ConversationState положение пользователя в многошаговом диалоге.
// Состояние живет только в памяти процесса и сбрасывается после
// завершения каждого потока (регистрация, Anmeldung, Abmeldung).
type ConversationState string

const (
	StateIdle                  ConversationState = "idle"
	StateAwaitingLanguage      ConversationState = "awaiting_language"
	StateAwaitingFirstName     ConversationState = "awaiting_first_name"
	StateAwaitingLastName      ConversationState = "awaiting_last_name"
	StateAwaitingTask          ConversationState = "awaiting_task"
	StateAwaitingStartLocation ConversationState = "awaiting_start_location"
	StateAwaitingEndLocation   ConversationState = "awaiting_end_location"
)
