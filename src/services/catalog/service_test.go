package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const serviceBody = `{
	"name": "Cloud Migration",
	"shortDescription": "Move to the cloud",
	"category": "Cloud",
	"startingPrice": "$5,000",
	"slug": "cloud-migration",
	"detailedDescription": "Long text",
	"keyFeatures": ["Zero downtime"],
	"dynamicSections": [
		{"title": "Third", "order": 3},
		{"title": "First A", "order": 1},
		{"title": "First B", "order": 1}
	]
}`

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(models.ServiceKind, store, nil, zap.NewNop()), store
}

func sectionTitles(item *models.CatalogItem) []string {
	out := make([]string, 0, len(item.DynamicSections))
	for _, s := range item.DynamicSections {
		out = append(out, s.Title)
	}
	return out
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)
	assert.False(t, first.ID.IsZero())
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, []string{"First A", "First B", "Third"}, sectionTitles(first))

	_, err = svc.Create(ctx, []byte(serviceBody))
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusOf(err))
	assert.Equal(t, "Service with this URL (slug) already exists.", err.Error())
	assert.Equal(t, 1, store.Len())

	stored, err := svc.GetBySlug(ctx, "cloud-migration")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Cloud Migration", stored.Name)
}

func TestCreateValidation(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Create(context.Background(), []byte(`{"name":"x"}`))
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusOf(err))

	_, err = svc.Create(context.Background(), []byte(`not json`))
	assert.Equal(t, 400, utils.StatusOf(err))
	assert.Equal(t, 0, store.Len())
}

func TestUpdateMergesTopLevelKeys(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, []byte(`{
		"name": "Cloud Move",
		"detailedDescription": "",
		"isFaqsVisible": false,
		"createdAt": "2001-01-01T00:00:00Z",
		"dynamicSections": [
			{"title": "C", "order": 2},
			{"title": "A", "order": 0},
			{"title": "B", "order": 2},
			{"title": "D", "order": 0}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Cloud Move", updated.Name)
	assert.Equal(t, "Cloud", updated.Category)
	assert.Equal(t, []string{"Zero downtime"}, updated.KeyFeatures)
	assert.Empty(t, updated.DetailedDescription)
	assert.False(t, updated.IsFaqsVisible)
	assert.True(t, updated.IsTrustVisible)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.Equal(t, []string{"A", "D", "C", "B"}, sectionTitles(updated))
}

func TestUpdateRejectsTakenSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	other, err := svc.Create(ctx, []byte(`{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"other"}`))
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, []byte(`{"slug":"cloud-migration"}`))
	assert.Equal(t, "Service with this URL (slug) already exists.", err.Error())

	// Keeping its own slug is not a conflict.
	_, err = svc.Update(ctx, other.ID, []byte(`{"slug":"other","name":"renamed"}`))
	assert.NoError(t, err)
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "blank name", body: `{"name":""}`, want: "name is required"},
		{name: "bad field value", body: `{"dynamicSections":[{"title":"T","fields":[{"label":"L","fieldType":"boolean","value":"yes"}]}]}`, want: "does not match"},
		{name: "bad form field", body: `{"inquiryFormFields":[{"label":"Q","fieldType":"date"}]}`, want: "unknown fieldType"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, created.ID, []byte(tc.body))
			require.Error(t, err)
			assert.Equal(t, 400, utils.StatusOf(err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), []byte(`{"name":"x"}`))
	assert.Equal(t, 404, utils.StatusOf(err))
	assert.Equal(t, "Service not found", err.Error())
}

func TestListOnlyListingKeys(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	raw, err := json.Marshal(items)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	allowed := map[string]bool{"name": true, "shortDescription": true, "category": true, "startingPrice": true, "ctaText": true, "slug": true}
	for key := range decoded[0] {
		assert.True(t, allowed[key], "unexpected key %s", key)
	}
	assert.Equal(t, "Apply Now", decoded[0]["ctaText"])
}

func TestGetBySlugFallsBackToID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	byID, err := svc.GetBySlug(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "cloud-migration", byID.Slug)

	_, err = svc.GetBySlug(ctx, "missing")
	assert.Equal(t, 404, utils.StatusOf(err))
}

func TestDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 404, utils.StatusOf(svc.Delete(ctx, created.ID)))
}

func TestListingCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewMemoryStore()
	cache := NewListingCache(client, "services", time.Minute, zap.NewNop())
	svc := NewService(models.ServiceKind, store, cache, zap.NewNop())
	ctx := context.Background()

	_, err = svc.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, mr.Exists("catalog:services:listing"))

	// A write drops the cached listing.
	_, err = svc.Create(ctx, []byte(`{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"two"}`))
	require.NoError(t, err)
	assert.False(t, mr.Exists("catalog:services:listing"))

	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	cached, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, items, cached)
}

// pausedListStore holds ListListings until release is closed.
type pausedListStore struct {
	Store
	reading chan struct{}
	release chan struct{}
}

func (s *pausedListStore) ListListings(ctx context.Context) ([]models.CatalogListing, error) {
	items, err := s.Store.ListListings(ctx)
	close(s.reading)
	<-s.release
	return items, err
}

func TestListingCacheSkipsListingReadBeforeWrite(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mem := NewMemoryStore()
	paused := &pausedListStore{Store: mem, reading: make(chan struct{}), release: make(chan struct{})}
	cache := NewListingCache(client, "services", time.Minute, zap.NewNop())
	ctx := context.Background()

	done := make(chan []models.CatalogListing)
	go func() {
		items, err := NewService(models.ServiceKind, paused, cache, zap.NewNop()).List(ctx)
		assert.NoError(t, err)
		done <- items
	}()

	<-paused.reading
	writer := NewService(models.ServiceKind, mem, cache, zap.NewNop())
	_, err = writer.Create(ctx, []byte(serviceBody))
	require.NoError(t, err)
	close(paused.release)

	assert.Empty(t, <-done)
	assert.False(t, mr.Exists("catalog:services:listing"))

	items, err := writer.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	cached, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, items, cached)
}

func TestListingCacheGeneration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache := NewListingCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "solutions", time.Minute, zap.NewNop())
	ctx := context.Background()
	listing := []models.CatalogListing{{Name: "Old", Slug: "old"}}

	gen, ok := cache.Generation(ctx)
	require.True(t, ok)
	assert.Zero(t, gen)

	cache.Invalidate(ctx)
	cache.Set(ctx, gen, listing)
	_, hit := cache.Get(ctx)
	assert.False(t, hit)

	gen, ok = cache.Generation(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(1), gen)
	cache.Set(ctx, gen, listing)
	cached, hit := cache.Get(ctx)
	require.True(t, hit)
	assert.Equal(t, listing, cached)

	var disabled *ListingCache
	_, ok = disabled.Generation(ctx)
	assert.False(t, ok)
}
