package jobs

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
	Insert(ctx context.Context, job *models.Job) error
	List(ctx context.Context) ([]models.Job, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Job, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// FormStore keeps one application form per job.
type FormStore interface {
	FindByJob(ctx context.Context, jobID primitive.ObjectID) (*models.JobForm, error)
	Upsert(ctx context.Context, jobID primitive.ObjectID, fields []models.JobFormField, now time.Time) (*models.JobForm, error)
}

type mongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *database.Store) Store {
	return &mongoStore{col: db.Collection(database.JobCollection)}
}

func (s *mongoStore) Insert(ctx context.Context, job *models.Job) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, job)
	return errors.Wrap(err, "insert job")
}

func (s *mongoStore) List(ctx context.Context) ([]models.Job, error) {
	ctx, cancel := database.ListContext(ctx)
	defer cancel()
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list jobs")
	}
	out := []models.Job{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode jobs")
	}
	return out, nil
}

func (s *mongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var job models.Job
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find job")
	}
	return &job, nil
}

func (s *mongoStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Job, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var job models.Job
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&job); err != nil {
		return nil, errors.Wrap(database.Translate(err), "update job")
	}
	return &job, nil
}

func (s *mongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete job")
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
	return n, errors.Wrap(err, "count jobs")
}

type mongoFormStore struct {
	col *mongo.Collection
}

func NewMongoFormStore(db *database.Store) FormStore {
	return &mongoFormStore{col: db.Collection(database.FormCollection)}
}

func (s *mongoFormStore) FindByJob(ctx context.Context, jobID primitive.ObjectID) (*models.JobForm, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	var form models.JobForm
	if err := s.col.FindOne(ctx, bson.M{"jobId": jobID}).Decode(&form); err != nil {
		return nil, errors.Wrap(database.Translate(err), "find form")
	}
	return &form, nil
}

func (s *mongoFormStore) Upsert(ctx context.Context, jobID primitive.ObjectID, fields []models.JobFormField, now time.Time) (*models.JobForm, error) {
	ctx, cancel := database.OpContext(ctx)
	defer cancel()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"fields": fields, "updatedAt": now}}
	var form models.JobForm
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"jobId": jobID}, update, opts).Decode(&form); err != nil {
		return nil, errors.Wrap(err, "upsert form")
	}
	return &form, nil
}
