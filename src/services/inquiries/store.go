package inquiries

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

// Store persists the inquiries of one catalog kind.
type Store interface {
	Insert(ctx context.Context, inq *models.Inquiry) error
	List(ctx context.Context) ([]models.Inquiry, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store, kind models.CatalogKind) Store {
	return &mongoStore{col: db.Collection(kind.InquiryCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, inq *models.Inquiry) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, inq)
	return errors.Wrap(err, "insert inquiry")
}

func (s *mongoStore) List(ctx context.Context) ([]models.Inquiry, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list inquiries")
	}
	out := []models.Inquiry{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode inquiries")
	}
	return out, nil
}

func (s *mongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var inq models.Inquiry
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inq); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find inquiry")
	}
	return &inq, nil
}

func (s *mongoStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inq models.Inquiry
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&inq)
	if err != nil {
		return nil, errors.Wrap(database.Translate(err), "update inquiry status")
	}
	return &inq, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete inquiry")
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
	return n, errors.Wrap(err, "count inquiries")
}
