package catalog

import (
	"context"
	"sync"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store for tests and local demos. It keeps
// documents as bson so updates behave like $set and $unset.
type MemoryStore struct {
	mu   sync.Mutex
	docs []bson.M
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func decodeItem(doc bson.M) (*models.CatalogItem, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var item models.CatalogItem
	if err := bson.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *MemoryStore) Insert(_ context.Context, item *models.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d["slug"] == item.Slug {
			return database.ErrDuplicateKey
		}
	}
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *MemoryStore) SlugTaken(_ context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d["slug"] != slug {
			continue
		}
		if exclude != nil && d["_id"] == *exclude {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (m *MemoryStore) find(match func(bson.M) bool) (*models.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if match(d) {
			return decodeItem(d)
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) FindBySlug(_ context.Context, slug string) (*models.CatalogItem, error) {
	return m.find(func(d bson.M) bool { return d["slug"] == slug })
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.CatalogItem, error) {
	return m.find(func(d bson.M) bool { return d["_id"] == id })
}

func (m *MemoryStore) ListListings(_ context.Context) ([]models.CatalogListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CatalogListing, 0, len(m.docs))
	for _, d := range m.docs {
		item, err := decodeItem(d)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CatalogListing{
			Name:             item.Name,
			ShortDescription: item.ShortDescription,
			Category:         item.Category,
			StartingPrice:    item.StartingPrice,
			CtaText:          item.CtaText,
			Slug:             item.Slug,
		})
	}
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, id primitive.ObjectID, set, unset bson.M) (*models.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slug, ok := set["slug"]; ok {
		for _, d := range m.docs {
			if d["slug"] == slug && d["_id"] != id {
				return nil, database.ErrDuplicateKey
			}
		}
	}
	for _, d := range m.docs {
		if d["_id"] != id {
			continue
		}
		for k, v := range set {
			d[k] = v
		}
		for k := range unset {
			delete(d, k)
		}
		return decodeItem(d)
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d["_id"] == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.Len()), nil
}
