package applications

import (
	"context"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store interface {
	Insert(ctx context.Context, app *models.Application) error
	ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store) Store {
	return &mongoStore{col: db.Collection(database.ApplicationCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, app *models.Application) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, app)
	return errors.Wrap(err, "insert application")
}

func (s *mongoStore) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"jobId": jobID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list applications")
	}
	out := []models.Application{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode applications")
	}
	return out, nil
}

func (s *mongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var app models.Application
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find application")
	}
	return &app, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete application")
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (s *mongoStore) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	n, err := s.col.EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "count applications")
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	col *database.MemoryCollection[models.Application]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{col: database.NewMemoryCollection(func(a *models.Application) primitive.ObjectID { return a.ID })}
}

func (m *MemoryStore) Insert(_ context.Context, app *models.Application) error {
	m.col.Insert(*app)
	return nil
}

func (m *MemoryStore) ListByJob(_ context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return m.col.Filter(
		func(a *models.Application) bool { return a.JobID == jobID },
		func(a, b models.Application) int { return b.SubmittedAt.Compare(a.SubmittedAt) },
	), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Application, error) {
	app, err := m.col.Find(id)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.col.Delete(id)
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.col.Len()), nil
}
