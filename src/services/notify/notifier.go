package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"nextglide-backend/src/models"
	"nextglide-backend/src/services/mailer"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

var sentCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Outbound notification attempts by message kind and result",
	},
	[]string{"kind", "result"},
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier renders and delivers transactional email. Fire-and-forget
// messages go through the queue when one is configured, otherwise they
// are sent from a goroutine. Nothing is retried.
type Notifier struct {
	mailer    mailer.Mailer
	queue     Enqueuer
	fromEmail string
	fromName  string
	log       *zap.Logger
	wg        sync.WaitGroup
}

// New builds a Notifier. queue may be nil.
func New(m mailer.Mailer, queue Enqueuer, fromEmail, fromName string, log *zap.Logger) *Notifier {
	return &Notifier{
		mailer:    m,
		queue:     queue,
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (n *Notifier) compose(to, toName, subject, html, customID string) mailer.Mail {
	return mailer.Mail{
		FromEmail: n.fromEmail,
		FromName:  n.fromName,
		To:        to,
		ToName:    toName,
		Subject:   subject,
		HTML:      html,
		CustomID:  customID,
	}
}

// Send delivers m now and returns the transport error, if any.
func (n *Notifier) Send(ctx context.Context, m mailer.Mail) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := n.mailer.Send(ctx, m); err != nil {
		sentCounter.WithLabelValues(m.CustomID, "failed").Inc()
		n.log.Error("mail send failed",
			zap.String("to", m.To),
			zap.String("kind", m.CustomID),
			zap.Error(err),
		)
		return err
	}
	sentCounter.WithLabelValues(m.CustomID, "sent").Inc()
	n.log.Info("mail sent", zap.String("to", m.To), zap.String("kind", m.CustomID))
	return nil
}

// Dispatch hands m off without waiting for delivery. Failures are logged.
func (n *Notifier) Dispatch(ctx context.Context, m mailer.Mail) {
	if n.queue != nil {
		task, err := NewSendMailTask(m)
		if err == nil {
			_, err = n.queue.EnqueueContext(ctx, task, asynq.MaxRetry(0))
		}
		if err == nil {
			n.log.Debug("mail enqueued", zap.String("to", m.To), zap.String("kind", m.CustomID))
			return
		}
		n.log.Warn("enqueue mail failed, sending in-process", zap.Error(err))
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		_ = n.Send(context.WithoutCancel(ctx), m)
	}()
}

// Wait blocks until every in-process dispatch has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// HandleSendMailTask is the worker side of Dispatch.
func (n *Notifier) HandleSendMailTask(ctx context.Context, t *asynq.Task) error {
	var p SendMailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %w", TypeSendMail, err)
	}
	return n.Send(ctx, p.Mail())
}

func (n *Notifier) welcomeMail(c *models.Contact) (mailer.Mail, error) {
	html, err := RenderWelcome(c.Name)
	if err != nil {
		return mailer.Mail{}, err
	}
	return n.compose(c.Email, c.Name, "We Received Your Message - NextGlide", html, "WelcomeEmail"), nil
}

// NotifyWelcome queues the contact form acknowledgement.
func (n *Notifier) NotifyWelcome(ctx context.Context, c *models.Contact) {
	m, err := n.welcomeMail(c)
	if err != nil {
		n.log.Error("render welcome email", zap.Error(err))
		return
	}
	n.Dispatch(ctx, m)
}

// SendWelcome sends the contact form acknowledgement synchronously.
func (n *Notifier) SendWelcome(ctx context.Context, c *models.Contact) error {
	m, err := n.welcomeMail(c)
	if err != nil {
		return err
	}
	return n.Send(ctx, m)
}

func (n *Notifier) SendCustom(ctx context.Context, to, subject, message string) error {
	html, err := RenderCustom(message)
	if err != nil {
		return err
	}
	return n.Send(ctx, n.compose(to, "", subject, html, "CustomEmail"))
}

func (n *Notifier) SendApplicationReceipt(ctx context.Context, inq *models.Inquiry) error {
	html, err := RenderApplicationReceipt(inq)
	if err != nil {
		return err
	}
	display := inq.DisplayName()
	if display == "" {
		display = "Application"
	}
	return n.Send(ctx, n.compose(inq.Email, inq.FullName, "Application Received: "+display, html, "ApplicationReceipt"))
}

func (n *Notifier) jobReceiptMail(email, name, jobTitle string) (mailer.Mail, error) {
	html, err := RenderJobReceipt(name, jobTitle)
	if err != nil {
		return mailer.Mail{}, err
	}
	return n.compose(email, name, "Application Received: "+jobTitle, html, "JobApplicationReceipt"), nil
}

func (n *Notifier) NotifyJobReceipt(ctx context.Context, email, name, jobTitle string) {
	m, err := n.jobReceiptMail(email, name, jobTitle)
	if err != nil {
		n.log.Error("render job receipt", zap.Error(err))
		return
	}
	n.Dispatch(ctx, m)
}

func (n *Notifier) SendJobReceipt(ctx context.Context, email, name, jobTitle string) error {
	m, err := n.jobReceiptMail(email, name, jobTitle)
	if err != nil {
		return err
	}
	return n.Send(ctx, m)
}
