// Package sl содержит помощники для структурированного логирования slog.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error":
//
//	log.Error("failed to cache snapshot", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
