package mailer

import (
	"context"
	"fmt"

	"nextglide-backend/src/config"

	"go.uber.org/zap"
)

// Mail is one outbound HTML message.
type Mail struct {
	FromEmail string
	FromName  string
	To        string
	ToName    string
	Subject   string
	HTML      string
	// CustomID tags the message so provider webhooks can be correlated.
	CustomID string
}

//go:generate mockgen -source=./mailer.go -package=mailermocks -destination=./mocks/mailer.mock.go Mailer
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// New picks the transport named by cfg.Mail.Provider.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Mailer, error) {
	switch cfg.Mail.Provider {
	case "smtp":
		return NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass), nil
	case "ses":
		return NewSESSender(ctx, cfg.AWS.Region)
	case "log":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Mail.Provider)
	}
}
