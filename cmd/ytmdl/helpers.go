package main

import (
	"log/slog"

	"ytmdl/internal/logging"
)

func newLogger(level string) *slog.Logger {
	logger, err := logging.New(logging.Options{Level: level, Format: "console"})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}
