package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// catalogKeys lists the bson keys of CatalogItem that a patch may touch.
var catalogKeys = func() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(models.CatalogItem{})
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("bson"), ",", 2)[0]
		if name != "" && name != "_id" && name != "createdAt" {
			keys[name] = true
		}
	}
	return keys
}()

type Service struct {
	kind  models.CatalogKind
	store Store
	cache *ListingCache
	log   *zap.Logger
	now   func() time.Time
}

func NewService(kind models.CatalogKind, store Store, cache *ListingCache, log *zap.Logger) *Service {
	return &Service{kind: kind, store: store, cache: cache, log: log, now: time.Now}
}

func (s *Service) Kind() models.CatalogKind { return s.kind }

func (s *Service) slugConflict() error {
	return utils.Conflict(s.kind.Name + " with this URL (slug) already exists.")
}

func (s *Service) notFound() error {
	return utils.NotFound(s.kind.Name + " not found")
}

// Create validates body and stores it as a new item.
func (s *Service) Create(ctx context.Context, body []byte) (*models.CatalogItem, error) {
	item, err := models.DecodeCatalogItem(s.kind, body)
	if err != nil {
		return nil, utils.Validation("Invalid input: %v", err)
	}
	if err := item.Validate(); err != nil {
		return nil, utils.Validation("%v", err)
	}

	taken, err := s.store.SlugTaken(ctx, item.Slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, s.slugConflict()
	}

	item.ID = primitive.NewObjectID()
	item.CreatedAt = s.now().UTC()
	if err := s.store.Insert(ctx, &item); err != nil {
		// The unique index catches a concurrent create with the same slug.
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, s.slugConflict()
		}
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return &item, nil
}

// Update sets the top level keys present in body. Sequences are replaced
// whole.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, body []byte) (*models.CatalogItem, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return nil, utils.Validation("Invalid input: %v", err)
	}
	patch, err := models.DecodeCatalogItem(s.kind, body)
	if err != nil {
		return nil, utils.Validation("Invalid input: %v", err)
	}
	if err := validatePatch(patch, present); err != nil {
		return nil, err
	}

	set, unset, err := patchDocument(patch, present)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 && len(unset) == 0 {
		return s.GetByID(ctx, id)
	}

	if _, ok := set["slug"]; ok {
		taken, err := s.store.SlugTaken(ctx, patch.Slug, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, s.slugConflict()
		}
	}

	item, err := s.store.Update(ctx, id, set, unset)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, s.notFound()
		case errors.Is(err, database.ErrDuplicateKey):
			return nil, s.slugConflict()
		}
		return nil, err
	}
	s.cache.Invalidate(ctx)
	models.SortSections(item.DynamicSections)
	return item, nil
}

func validatePatch(patch models.CatalogItem, present map[string]json.RawMessage) error {
	listing := map[string]string{
		"name":             patch.Name,
		"shortDescription": patch.ShortDescription,
		"category":         patch.Category,
		"startingPrice":    patch.StartingPrice,
		"ctaText":          patch.CtaText,
		"slug":             patch.Slug,
	}
	for key, value := range listing {
		if _, ok := present[key]; ok && strings.TrimSpace(value) == "" {
			return utils.Validation("%s is required", key)
		}
	}
	if _, ok := present["dynamicSections"]; ok {
		for _, sec := range patch.DynamicSections {
			if err := sec.Validate(); err != nil {
				return utils.Validation("%v", err)
			}
		}
	}
	if _, ok := present["inquiryFormFields"]; ok {
		for _, f := range patch.InquiryFormFields {
			if err := f.Validate(); err != nil {
				return utils.Validation("%v", err)
			}
		}
	}
	return nil
}

// patchDocument turns the decoded patch into $set and $unset documents
// restricted to the keys the client sent.
func patchDocument(patch models.CatalogItem, present map[string]json.RawMessage) (bson.M, bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, nil, err
	}
	var full bson.M
	if err := bson.Unmarshal(raw, &full); err != nil {
		return nil, nil, err
	}
	set, unset := bson.M{}, bson.M{}
	for key := range present {
		if !catalogKeys[key] {
			continue
		}
		if v, ok := full[key]; ok {
			set[key] = v
		} else {
			// omitempty field cleared by the client
			unset[key] = ""
		}
	}
	return set, unset, nil
}

// List returns the index page projection.
func (s *Service) List(ctx context.Context) ([]models.CatalogListing, error) {
	if items, ok := s.cache.Get(ctx); ok {
		return items, nil
	}
	gen, cacheable := s.cache.Generation(ctx)
	items, err := s.store.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Set(ctx, gen, items)
	}
	return items, nil
}

// GetBySlug returns the full item. A value that is not a known slug but
// parses as an id is looked up by id.
func (s *Service) GetBySlug(ctx context.Context, slugOrID string) (*models.CatalogItem, error) {
	item, err := s.store.FindBySlug(ctx, slugOrID)
	if errors.Is(err, database.ErrNotFound) {
		if id, idErr := primitive.ObjectIDFromHex(slugOrID); idErr == nil {
			return s.GetByID(ctx, id)
		}
		return nil, s.notFound()
	}
	if err != nil {
		return nil, err
	}
	models.SortSections(item.DynamicSections)
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CatalogItem, error) {
	item, err := s.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, err
	}
	models.SortSections(item.DynamicSections)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return s.notFound()
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
