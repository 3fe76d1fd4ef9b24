package mailer

import (
	"context"

	gomail "gopkg.in/gomail.v2"
)

type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
}

func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass}
}

func (s *SMTPSender) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", mail.FromEmail, mail.FromName)
	if mail.ToName != "" {
		m.SetAddressHeader("To", mail.To, mail.ToName)
	} else {
		m.SetHeader("To", mail.To)
	}
	m.SetHeader("Subject", mail.Subject)
	if mail.CustomID != "" {
		m.SetHeader("X-Custom-ID", mail.CustomID)
	}
	m.SetBody("text/html", mail.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(m)
}
