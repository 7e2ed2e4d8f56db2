package notification

import (
	"context"
	"log/slog"
)

// Sender delivers one-time verification codes to a phone number.
type Sender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LoggerSender is a development stand-in for an SMS gateway: the code is
// written to the structured log instead of being dispatched.
type LoggerSender struct {
	logger *slog.Logger
}

// NewLoggerSender constructs a logging SMS sender stub.
func NewLoggerSender(logger *slog.Logger) *LoggerSender {
	return &LoggerSender{logger: logger}
}

// SendCode writes the issued code to the structured logger.
func (s *LoggerSender) SendCode(_ context.Context, phone, code string) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("sms verification code issued", "phone", phone, "code", code)
	return nil
}
