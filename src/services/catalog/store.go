package catalog

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

// Store persists catalog items of one kind.
type Store interface {
	Insert(ctx context.Context, item *models.CatalogItem) error
	SlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error)
	FindBySlug(ctx context.Context, slug string) (*models.CatalogItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CatalogItem, error)
	ListListings(ctx context.Context) ([]models.CatalogListing, error)
	Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) (*models.CatalogItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

var listingProjection = bson.M{
	"_id":              0,
	"name":             1,
	"shortDescription": 1,
	"category":         1,
	"startingPrice":    1,
	"ctaText":          1,
	"slug":             1,
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store, kind models.CatalogKind) Store {
	return &mongoStore{col: db.Collection(kind.Collection)}
}

func (s *mongoStore) Insert(ctx context.Context, item *models.CatalogItem) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, item)
	return errors.Wrap(database.Translate(err), "insert catalog item")
}

func (s *mongoStore) SlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	filter := bson.M{"slug": slug}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	n, err := s.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count slug")
	}
	return n > 0, nil
}

func (s *mongoStore) findOne(ctx context.Context, filter bson.M) (*models.CatalogItem, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var item models.CatalogItem
	if err := s.col.FindOne(ctx, filter).Decode(&item); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find catalog item")
	}
	return &item, nil
}

func (s *mongoStore) FindBySlug(ctx context.Context, slug string) (*models.CatalogItem, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *mongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CatalogItem, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoStore) ListListings(ctx context.Context) ([]models.CatalogListing, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	opts := options.Find().
		SetProjection(listingProjection).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list catalog")
	}
	out := []models.CatalogListing{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode catalog listing")
	}
	return out, nil
}

func (s *mongoStore) Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) (*models.CatalogItem, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.CatalogItem
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&item); err != nil {
		return nil, errors.Wrap(database.Translate(err), "update catalog item")
	}
	return &item, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete catalog item")
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
	return n, errors.Wrap(err, "count catalog items")
}
