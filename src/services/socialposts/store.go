package socialposts

import (
	"context"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store interface {
	Insert(ctx context.Context, post *models.SocialPost) error
	Feed(ctx context.Context, f FeedFilter, now time.Time) ([]models.SocialPostView, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error)
	Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) (*models.SocialPost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ToggleHidden flips isHidden in a single write.
	ToggleHidden(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error)
	// Increment adds one to a counter field.
	Increment(ctx context.Context, id primitive.ObjectID, field string) (*models.SocialPost, error)
	AddComment(ctx context.Context, id primitive.ObjectID, c models.Comment) (*models.SocialPost, error)
	// PublishDue publishes a Scheduled post whose time has come and
	// reports whether it did.
	PublishDue(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store) Store {
	return &mongoStore{col: db.Collection(database.SocialPostCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, post *models.SocialPost) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, post)
	return errors.Wrap(err, "insert social post")
}

func (s *mongoStore) Feed(ctx context.Context, f FeedFilter, now time.Time) ([]models.SocialPostView, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	cursor, err := s.col.Aggregate(ctx, f.Pipeline(now))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate feed")
	}
	out := []models.SocialPostView{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode feed")
	}
	return out, nil
}

func (s *mongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var post models.SocialPost
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find social post")
	}
	return &post, nil
}

func (s *mongoStore) findAndUpdate(ctx context.Context, id primitive.ObjectID, update any, op string) (*models.SocialPost, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.SocialPost
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post); err != nil {
		return nil, errors.Wrap(database.Translate(err), op)
	}
	return &post, nil
}

func (s *mongoStore) Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) (*models.SocialPost, error) {
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return s.findAndUpdate(ctx, id, update, "update social post")
}

func (s *mongoStore) ToggleHidden(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	update := mongo.Pipeline{{{Key: "$set", Value: bson.D{
		{Key: "isHidden", Value: bson.D{{Key: "$not", Value: bson.A{"$isHidden"}}}},
	}}}}
	return s.findAndUpdate(ctx, id, update, "toggle social post")
}

func (s *mongoStore) Increment(ctx context.Context, id primitive.ObjectID, field string) (*models.SocialPost, error) {
	return s.findAndUpdate(ctx, id, bson.M{"$inc": bson.M{field: 1}}, "increment "+field)
}

func (s *mongoStore) AddComment(ctx context.Context, id primitive.ObjectID, c models.Comment) (*models.SocialPost, error) {
	return s.findAndUpdate(ctx, id, bson.M{"$push": bson.M{"comments": c}}, "add comment")
}

func (s *mongoStore) PublishDue(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	filter := bson.M{
		"_id":         id,
		"status":      models.PostScheduled,
		"scheduledAt": bson.M{"$lte": now},
	}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": models.PostPublished}})
	if err != nil {
		return false, errors.Wrap(err, "publish social post")
	}
	return res.ModifiedCount > 0, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete social post")
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
	return n, errors.Wrap(err, "count social posts")
}
