package contacts

import (
	"context"
	"errors"
	"strings"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Notifier is the part of notify.Notifier used for contacts.
type Notifier interface {
	NotifyWelcome(ctx context.Context, c *models.Contact)
	SendWelcome(ctx context.Context, c *models.Contact) error
	SendCustom(ctx context.Context, to, subject, message string) error
}

type Service struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(store Store, notifier Notifier, log *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, log: log, now: time.Now}
}

// Create stores the message and queues the welcome email without
// waiting for it.
func (s *Service) Create(ctx context.Context, c models.Contact) (*models.Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if err := utils.ValidateStruct(c); err != nil {
		return nil, err
	}
	c.ID = primitive.NewObjectID()
	c.CreatedAt = s.now().UTC()
	if err := s.store.Insert(ctx, &c); err != nil {
		return nil, err
	}
	s.notifier.NotifyWelcome(ctx, &c)
	return &c, nil
}

func (s *Service) List(ctx context.Context) ([]models.Contact, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFound("Contact not found")
	}
	return err
}

func (s *Service) ResendWelcome(ctx context.Context, id primitive.ObjectID) error {
	c, err := s.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFound("Contact not found")
	}
	if err != nil {
		return err
	}
	if err := s.notifier.SendWelcome(ctx, c); err != nil {
		return utils.Internal("Failed to send email", err)
	}
	return nil
}

// SendCustom mails a free text message to any address.
func (s *Service) SendCustom(ctx context.Context, req models.CustomEmailRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	if err := s.notifier.SendCustom(ctx, req.ToEmail, req.Subject, req.Message); err != nil {
		return utils.Internal("Failed to send email", err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
