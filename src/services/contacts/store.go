package contacts

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
	Insert(ctx context.Context, c *models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store) Store {
	return &mongoStore{col: db.Collection(database.ContactCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, c *models.Contact) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, c)
	return errors.Wrap(err, "insert contact")
}

func (s *mongoStore) List(ctx context.Context) ([]models.Contact, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list contacts")
	}
	out := []models.Contact{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode contacts")
	}
	return out, nil
}

func (s *mongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var c models.Contact
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find contact")
	}
	return &c, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete contact")
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
	return n, errors.Wrap(err, "count contacts")
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	col *database.MemoryCollection[models.Contact]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{col: database.NewMemoryCollection(func(c *models.Contact) primitive.ObjectID { return c.ID })}
}

func (m *MemoryStore) Insert(_ context.Context, c *models.Contact) error {
	m.col.Insert(*c)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Contact, error) {
	return m.col.Filter(nil, func(a, b models.Contact) int { return b.CreatedAt.Compare(a.CreatedAt) }), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Contact, error) {
	c, err := m.col.Find(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.col.Delete(id)
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.col.Len()), nil
}
