package inquiries

import (
	"context"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	col *database.MemoryCollection[models.Inquiry]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{col: database.NewMemoryCollection(func(i *models.Inquiry) primitive.ObjectID { return i.ID })}
}

func (m *MemoryStore) Insert(_ context.Context, inq *models.Inquiry) error {
	m.col.Insert(*inq)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Inquiry, error) {
	return m.col.Filter(nil, func(a, b models.Inquiry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	inq, err := m.col.Find(id)
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error) {
	inq, err := m.col.Update(id, func(i *models.Inquiry) { i.Status = status })
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.col.Delete(id)
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.col.Len()), nil
}
