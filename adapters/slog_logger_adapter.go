package adapters

import (
	"fmt"
	"log/slog"
)

// SlogLoggerAdapter bridges LoggerAdapter to a log/slog logger, for hosts
// that already ship structured logs.
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

var _ LoggerAdapter = (*SlogLoggerAdapter)(nil)

// NewSlogLoggerAdapter wraps the given slog logger. Passing nil uses
// slog.Default().
func NewSlogLoggerAdapter(logger *slog.Logger) *SlogLoggerAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLoggerAdapter{logger: logger}
}

func (s *SlogLoggerAdapter) Debug(message string, args ...any) {
	s.logger.Debug(fmt.Sprintf(message, args...))
}

func (s *SlogLoggerAdapter) Info(message string, args ...any) {
	s.logger.Info(fmt.Sprintf(message, args...))
}

func (s *SlogLoggerAdapter) Warn(message string, args ...any) {
	s.logger.Warn(fmt.Sprintf(message, args...))
}

func (s *SlogLoggerAdapter) Error(message string, args ...any) {
	s.logger.Error(fmt.Sprintf(message, args...))
}
