package models

import "errors"

// Таксономия ошибок ядра. Все они обрабатываются на месте обнаружения
// и превращаются в ответ пользователю на его языке, не меняя состояние
// диалога, чтобы попытку можно было повторить.
var (
	ErrAlreadyActive      = errors.New("shift already active")
	ErrNoActiveShift      = errors.New("no active shift")
	ErrUnexpectedLocation = errors.New("unexpected location")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMalformedInput     = errors.New("malformed input")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
