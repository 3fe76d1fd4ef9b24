package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	ContactCollection         = "contacts"
	ServiceCollection         = "services"
	SolutionCollection        = "solutions"
	ServiceInquiryCollection  = "serviceinquiries"
	SolutionInquiryCollection = "solutioninquiries"
	JobCollection             = "jobs"
	FormCollection            = "forms"
	ApplicationCollection     = "applications"
	CategoryCollection        = "categories"
	SocialPostCollection      = "socialposts"
)

const (
	defaultOperationTimeout     = 5 * time.Second
	defaultServerSelectTimeout  = 10 * time.Second
	defaultReadinessPingTimeout = 2 * time.Second
)

// Store owns the MongoDB connection. It is created once at startup and
// handed to every service that needs a collection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// Connect opens the connection and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string, log *zap.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(defaultServerSelectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultOperationTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}

	log.Info("MongoDB connected", zap.String("database", dbName))
	return &Store{client: client, db: client.Database(dbName), log: log}, nil
}

// IsReady reports whether the primary answers a ping right now.
func (s *Store) IsReady(ctx context.Context) bool {
	if s == nil || s.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, defaultReadinessPingTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary()) == nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the unique slug indexes of the catalog
// collections.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	for _, name := range []string{ServiceCollection, SolutionCollection} {
		_, err := s.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("slug_unique"),
		})
		if err != nil {
			return errors.Wrapf(err, "create slug index on %s", name)
		}
	}
	_, err := s.Collection(ApplicationCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "jobId", Value: 1}, {Key: "submittedAt", Value: -1}},
	})
	if err != nil {
		return errors.Wrap(err, "create applications index")
	}
	_, err = s.Collection(FormCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "jobId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("job_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "create forms index")
	}
	s.log.Info("MongoDB indexes ensured")
	return nil
}

// OpContext bounds a single storage round trip.
func OpContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, defaultOperationTimeout)
}

// ListContext bounds a query that drains a cursor.
func ListContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 2*defaultOperationTimeout)
}
