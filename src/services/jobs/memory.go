package jobs

import (
	"context"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	col *database.MemoryCollection[models.Job]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{col: database.NewMemoryCollection(func(j *models.Job) primitive.ObjectID { return j.ID })}
}

func (m *MemoryStore) Insert(_ context.Context, job *models.Job) error {
	m.col.Insert(*job)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Job, error) {
	return m.col.Filter(nil, func(a, b models.Job) int { return b.CreatedAt.Compare(a.CreatedAt) }), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Job, error) {
	job, err := m.col.Find(id)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (m *MemoryStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Job, error) {
	var applyErr error
	job, err := m.col.Update(id, func(j *models.Job) { applyErr = database.ApplyUpdate(j, set, nil) })
	if err != nil {
		return nil, err
	}
	if applyErr != nil {
		return nil, applyErr
	}
	return &job, nil
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.col.Delete(id)
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.col.Len()), nil
}

// MemoryFormStore is an in-process FormStore for tests.
type MemoryFormStore struct {
	col *database.MemoryCollection[models.JobForm]
}

func NewMemoryFormStore() *MemoryFormStore {
	return &MemoryFormStore{col: database.NewMemoryCollection(func(f *models.JobForm) primitive.ObjectID { return f.ID })}
}

func (m *MemoryFormStore) FindByJob(_ context.Context, jobID primitive.ObjectID) (*models.JobForm, error) {
	form, err := m.col.FindFirst(func(f *models.JobForm) bool { return f.JobID == jobID })
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (m *MemoryFormStore) Upsert(_ context.Context, jobID primitive.ObjectID, fields []models.JobFormField, now time.Time) (*models.JobForm, error) {
	form := m.col.Upsert(func(f *models.JobForm) bool { return f.JobID == jobID }, func(f *models.JobForm) {
		if f.ID.IsZero() {
			f.ID = primitive.NewObjectID()
			f.JobID = jobID
		}
		f.Fields = fields
		f.UpdatedAt = now
	})
	return &form, nil
}

func (m *MemoryFormStore) Len() int {
	return m.col.Len()
}
