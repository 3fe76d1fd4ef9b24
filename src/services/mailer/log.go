package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogSender only logs. It is the default when no transport is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, mail Mail) error {
	s.log.Info("mail not sent, log transport",
		zap.String("to", mail.To),
		zap.String("subject", mail.Subject),
		zap.String("customId", mail.CustomID),
	)
	return nil
}
