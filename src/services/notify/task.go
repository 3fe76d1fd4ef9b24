package notify

import (
	"encoding/json"
	"strings"

	"nextglide-backend/src/services/mailer"

	"github.com/hibiken/asynq"
)

const TypeSendMail = "mail:send"

// SendMailPayload is a fully rendered message waiting for delivery.
type SendMailPayload struct {
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
	To        string `json:"to"`
	ToName    string `json:"toName,omitempty"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
	CustomID  string `json:"customId,omitempty"`
}

func (p *SendMailPayload) Normalize() {
	p.To = strings.TrimSpace(p.To)
	p.ToName = strings.TrimSpace(p.ToName)
}

func (p SendMailPayload) Mail() mailer.Mail {
	return mailer.Mail{
		FromEmail: p.FromEmail,
		FromName:  p.FromName,
		To:        p.To,
		ToName:    p.ToName,
		Subject:   p.Subject,
		HTML:      p.HTML,
		CustomID:  p.CustomID,
	}
}

func NewSendMailTask(m mailer.Mail) (*asynq.Task, error) {
	payload := SendMailPayload{
		FromEmail: m.FromEmail,
		FromName:  m.FromName,
		To:        m.To,
		ToName:    m.ToName,
		Subject:   m.Subject,
		HTML:      m.HTML,
		CustomID:  m.CustomID,
	}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendMail, b), nil
}
