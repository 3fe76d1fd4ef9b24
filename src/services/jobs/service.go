package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	store Store
	forms FormStore
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, forms FormStore, log *zap.Logger) *Service {
	return &Service{store: store, forms: forms, log: log, now: time.Now}
}

func notFound() error {
	return utils.NotFound("Job not found")
}

func (s *Service) Create(ctx context.Context, job models.Job) (*models.Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	if err := utils.ValidateStruct(job); err != nil {
		return nil, err
	}
	job.ID = primitive.NewObjectID()
	job.CreatedAt = s.now().UTC()
	if err := s.store.Insert(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Service) List(ctx context.Context) ([]models.Job, error) {
	return s.store.List(ctx)
}

// Title returns the job title, or "" when the job is gone.
func (s *Service) Title(ctx context.Context, id primitive.ObjectID) (string, error) {
	job, err := s.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return job.Title, nil
}

// Update sets only the keys present in patch.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, patch models.JobPatch) (*models.Job, error) {
	set := bson.M{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, utils.Validation("title is required")
		}
		set["title"] = title
	}
	for key, value := range map[string]*string{
		"department":  patch.Department,
		"location":    patch.Location,
		"type":        patch.Type,
		"experience":  patch.Experience,
		"description": patch.Description,
	} {
		if value != nil {
			set[key] = *value
		}
	}

	if len(set) == 0 {
		job, err := s.store.FindByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound()
		}
		return job, err
	}
	job, err := s.store.Update(ctx, id, set)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound()
	}
	return job, err
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound()
	}
	return err
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// GetForm returns the form of a job, or an empty form when none was
// saved yet.
func (s *Service) GetForm(ctx context.Context, jobID primitive.ObjectID) (*models.JobForm, error) {
	form, err := s.forms.FindByJob(ctx, jobID)
	if errors.Is(err, database.ErrNotFound) {
		return &models.JobForm{JobID: jobID, Fields: []models.JobFormField{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if form.Fields == nil {
		form.Fields = []models.JobFormField{}
	}
	return form, nil
}

// SaveForm replaces the fields of the job's form, creating it if needed.
func (s *Service) SaveForm(ctx context.Context, req models.JobFormRequest) (*models.JobForm, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	jobID, err := primitive.ObjectIDFromHex(req.JobID)
	if err != nil {
		return nil, utils.Validation("Invalid job ID")
	}
	fields := req.Fields
	if fields == nil {
		fields = []models.JobFormField{}
	}
	for _, f := range fields {
		if strings.TrimSpace(f.Label) == "" {
			return nil, utils.Validation("field label is required")
		}
	}
	return s.forms.Upsert(ctx, jobID, fields, s.now().UTC())
}
