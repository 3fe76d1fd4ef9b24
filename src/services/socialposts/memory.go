package socialposts

import (
	"context"
	"slices"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store for tests. Categories added with
// AddCategory are joined into the feed.
type MemoryStore struct {
	posts      *database.MemoryCollection[models.SocialPost]
	categories *database.MemoryCollection[models.Category]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:      database.NewMemoryCollection(func(p *models.SocialPost) primitive.ObjectID { return p.ID }),
		categories: database.NewMemoryCollection(func(c *models.Category) primitive.ObjectID { return c.ID }),
	}
}

func (m *MemoryStore) AddCategory(c models.Category) {
	m.categories.Insert(c)
}

func (m *MemoryStore) Insert(_ context.Context, post *models.SocialPost) error {
	m.posts.Insert(*post)
	return nil
}

func (m *MemoryStore) Feed(_ context.Context, f FeedFilter, now time.Time) ([]models.SocialPostView, error) {
	posts := m.posts.Filter(func(p *models.SocialPost) bool { return f.Accepts(p, now) }, f.Compare)
	out := make([]models.SocialPostView, 0, len(posts))
	for _, p := range posts {
		view := models.SocialPostView{SocialPost: p}
		if p.CategoryID != nil {
			if c, err := m.categories.Find(*p.CategoryID); err == nil {
				view.Category = &c
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	p, err := m.posts.Find(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MemoryStore) modify(id primitive.ObjectID, fn func(*models.SocialPost) error) (*models.SocialPost, error) {
	var fnErr error
	p, err := m.posts.Update(id, func(p *models.SocialPost) { fnErr = fn(p) })
	if err != nil {
		return nil, err
	}
	if fnErr != nil {
		return nil, fnErr
	}
	return &p, nil
}

func (m *MemoryStore) Update(_ context.Context, id primitive.ObjectID, set, unset bson.M) (*models.SocialPost, error) {
	return m.modify(id, func(p *models.SocialPost) error { return database.ApplyUpdate(p, set, unset) })
}

func (m *MemoryStore) ToggleHidden(_ context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	return m.modify(id, func(p *models.SocialPost) error {
		p.IsHidden = !p.IsHidden
		return nil
	})
}

func (m *MemoryStore) Increment(_ context.Context, id primitive.ObjectID, field string) (*models.SocialPost, error) {
	return m.modify(id, func(p *models.SocialPost) error {
		switch field {
		case FieldLikes:
			p.Likes++
		case FieldShares:
			p.Shares++
		}
		return nil
	})
}

func (m *MemoryStore) AddComment(_ context.Context, id primitive.ObjectID, c models.Comment) (*models.SocialPost, error) {
	return m.modify(id, func(p *models.SocialPost) error {
		p.Comments = append(slices.Clip(p.Comments), c)
		return nil
	})
}

func (m *MemoryStore) PublishDue(_ context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	published := false
	_, err := m.modify(id, func(p *models.SocialPost) error {
		if p.Status == models.PostScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(now) {
			p.Status = models.PostPublished
			published = true
		}
		return nil
	})
	return published, err
}

func (m *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.posts.Delete(id)
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(m.posts.Len()), nil
}
