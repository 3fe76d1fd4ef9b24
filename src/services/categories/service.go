package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store interface {
	Insert(ctx context.Context, c *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store) Store {
	return &mongoStore{col: db.Collection(database.CategoryCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, c *models.Category) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, c)
	return pkgerrors.Wrap(err, "insert category")
}

func (s *mongoStore) List(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list categories")
	}
	out := []models.Category{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, pkgerrors.Wrap(err, "decode categories")
	}
	return out, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return pkgerrors.Wrap(err, "delete category")
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
	return n, pkgerrors.Wrap(err, "count categories")
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	col *database.MemoryCollection[models.Category]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{col: database.NewMemoryCollection(func(c *models.Category) primitive.ObjectID { return c.ID })}
}

func (m *MemoryStore) Insert(_ context.Context, c *models.Category) error {
	m.col.Insert(*c)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Category, error) {
	return m.col.Filter(nil, func(a, b models.Category) int { return strings.Compare(a.Name, b.Name) }), nil
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.col.Delete(id)
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.col.Len()), nil
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Create(ctx context.Context, name string) (*models.Category, error) {
	c := models.Category{Name: strings.TrimSpace(name)}
	if err := utils.ValidateStruct(c); err != nil {
		return nil, err
	}
	c.ID = primitive.NewObjectID()
	c.CreatedAt = s.now().UTC()
	if err := s.store.Insert(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns categories sorted by name.
func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFound("Category not found")
	}
	return err
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
