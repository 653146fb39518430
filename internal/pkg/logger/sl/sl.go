package sl

import (
	"log/slog"
)

// Err оборачивает ошибку в атрибут slog
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
