package applications

import (
	"context"
	"errors"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultJobTitle = "Position"

// JobTitles resolves the title used in receipt emails.
type JobTitles interface {
	Title(ctx context.Context, id primitive.ObjectID) (string, error)
}

// Notifier is the part of notify.Notifier used for applications.
type Notifier interface {
	NotifyJobReceipt(ctx context.Context, email, name, jobTitle string)
	SendJobReceipt(ctx context.Context, email, name, jobTitle string) error
	SendCustom(ctx context.Context, to, subject, message string) error
}

type Service struct {
	store    Store
	jobs     JobTitles
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(store Store, jobs JobTitles, notifier Notifier, log *zap.Logger) *Service {
	return &Service{store: store, jobs: jobs, notifier: notifier, log: log, now: time.Now}
}

func notFound() error {
	return utils.NotFound("Application not found")
}

// Submit stores the answers as sent and queues a receipt when an email
// address can be found among them.
func (s *Service) Submit(ctx context.Context, req models.ApplicationRequest) (*models.Application, error) {
	if req.JobID == "" || len(req.FormData) == 0 {
		return nil, utils.Validation("Missing required fields")
	}
	jobID, err := primitive.ObjectIDFromHex(req.JobID)
	if err != nil {
		return nil, utils.Validation("Invalid job ID")
	}

	email, name := utils.ExtractApplicant(req.FormData.Values())
	if name == "" {
		name = utils.DefaultApplicantName
	}
	app := models.Application{
		ID:          primitive.NewObjectID(),
		JobID:       jobID,
		FormData:    req.FormData,
		Email:       email,
		Name:        name,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, &app); err != nil {
		return nil, err
	}

	if email == "" {
		s.log.Info("application has no email, receipt skipped", zap.String("application_id", app.ID.Hex()))
		return &app, nil
	}
	s.notifier.NotifyJobReceipt(ctx, email, name, s.jobTitle(ctx, jobID))
	return &app, nil
}

func (s *Service) jobTitle(ctx context.Context, jobID primitive.ObjectID) string {
	title, err := s.jobs.Title(ctx, jobID)
	if err != nil {
		s.log.Warn("job title lookup failed", zap.String("job_id", jobID.Hex()), zap.Error(err))
	}
	if title == "" {
		return defaultJobTitle
	}
	return title
}

func (s *Service) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return s.store.ListByJob(ctx, jobID)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound()
	}
	return err
}

func (s *Service) ResendReceipt(ctx context.Context, id primitive.ObjectID) error {
	app, err := s.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		return err
	}
	if app.Email == "" {
		return utils.Validation("No email address found for this application")
	}
	if err := s.notifier.SendJobReceipt(ctx, app.Email, app.Name, s.jobTitle(ctx, app.JobID)); err != nil {
		return utils.Internal("Failed to send email", err)
	}
	return nil
}

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
