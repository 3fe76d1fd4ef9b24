package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"nextglide-backend/src/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errStaleListing = errors.New("listing cache: generation moved")

// ListingCache keeps the catalog index page in Redis. A nil client turns
// every call into a miss or a no-op. Every write bumps a generation
// counter, and a listing read before that bump is never stored.
type ListingCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
	log    *zap.Logger
}

func NewListingCache(client *redis.Client, collection string, ttl time.Duration, log *zap.Logger) *ListingCache {
	return &ListingCache{
		client: client,
		key:    "catalog:" + collection + ":listing",
		genKey: "catalog:" + collection + ":gen",
		ttl:    ttl,
		log:    log,
	}
}

func (c *ListingCache) Get(ctx context.Context) ([]models.CatalogListing, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("listing cache get failed", zap.String("key", c.key), zap.Error(err))
		}
		return nil, false
	}
	var out []models.CatalogListing
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

// Generation reads the write counter. It must be taken before the store
// read whose result is passed to Set. ok is false when nothing should be
// cached.
func (c *ListingCache) Generation(ctx context.Context) (gen int64, ok bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	gen, err := c.client.Get(ctx, c.genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.log.Warn("listing cache generation failed", zap.String("key", c.genKey), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// Set stores items when no write happened since gen was read.
func (c *ListingCache) Set(ctx context.Context, gen int64, items []models.CatalogListing) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, c.genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleListing
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, raw, c.ttl)
			return nil
		})
		return err
	}, c.genKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleListing), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("stale listing not cached", zap.String("key", c.key))
	default:
		c.log.Warn("listing cache set failed", zap.String("key", c.key), zap.Error(err))
	}
}

// Invalidate bumps the generation and drops the cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		c.log.Warn("listing cache invalidate failed", zap.String("key", c.key), zap.Error(err))
	}
}
