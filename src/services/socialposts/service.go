package socialposts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/uploads"
	"nextglide-backend/src/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	FieldLikes  = "likes"
	FieldShares = "shares"

	imageFolder = "social-posts"
	imagePrefix = "social_post"
)

type Service struct {
	store     Store
	images    uploads.ObjectStore
	scheduler Scheduler
	log       *zap.Logger
	now       func() time.Time
}

// NewService builds the post service. scheduler may be nil, in which
// case Scheduled posts stay Scheduled until edited.
func NewService(store Store, images uploads.ObjectStore, scheduler Scheduler, log *zap.Logger) *Service {
	if scheduler == nil {
		scheduler = noopScheduler{}
	}
	return &Service{store: store, images: images, scheduler: scheduler, log: log, now: time.Now}
}

func notFound() error {
	return utils.NotFound("Post not found")
}

func (s *Service) Feed(ctx context.Context, q FeedQuery) ([]models.SocialPostView, error) {
	f, err := ParseFeedQuery(q)
	if err != nil {
		return nil, err
	}
	return s.store.Feed(ctx, f, s.now().UTC())
}

func (s *Service) uploadImage(ctx context.Context, img *Upload) (string, error) {
	if s.images == nil {
		return "", utils.Validation("Image uploads are not configured")
	}
	key := uploads.ObjectKey(imageFolder, imagePrefix, img.Filename)
	url, err := s.images.Put(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

func parseCategory(raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, utils.Validation("Invalid category ID")
	}
	return &id, nil
}

func parseStatus(raw string) (models.PostStatus, error) {
	status := models.PostStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", utils.Validation("status must be one of Draft, Scheduled, Published")
	}
	return status, nil
}

// Create stores a new post. An uploaded image wins over imageUrl.
func (s *Service) Create(ctx context.Context, patch models.PostPatch, img *Upload) (*models.SocialPost, error) {
	post := models.SocialPost{
		Hashtags: []string{},
		Comments: []models.Comment{},
		Status:   models.PostDraft,
	}
	if patch.Title != nil {
		post.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Caption != nil {
		post.Caption = *patch.Caption
	}
	if post.Title == "" {
		return nil, utils.Validation("title is required")
	}
	if strings.TrimSpace(post.Caption) == "" {
		return nil, utils.Validation("caption is required")
	}
	if patch.CategoryID != nil {
		id, err := parseCategory(*patch.CategoryID)
		if err != nil {
			return nil, err
		}
		post.CategoryID = id
	}
	if patch.HasHashtags {
		post.Hashtags = patch.Hashtags
	}
	if patch.ScheduledAt != nil {
		at, err := parseSchedule(*patch.ScheduledAt)
		if err != nil {
			return nil, err
		}
		post.ScheduledAt = at
	}
	if patch.Status != nil && strings.TrimSpace(*patch.Status) != "" {
		status, err := parseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		post.Status = status
	}

	switch {
	case img != nil:
		url, err := s.uploadImage(ctx, img)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
	case patch.ImageURL != nil:
		post.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}

	post.ID = primitive.NewObjectID()
	post.CreatedAt = s.now().UTC()
	if err := s.store.Insert(ctx, &post); err != nil {
		return nil, err
	}
	s.reschedule(ctx, &post)
	return &post, nil
}

// Update changes the keys present in patch.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, patch models.PostPatch, img *Upload) (*models.SocialPost, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound()
		}
		return nil, err
	}

	set, unset := bson.M{}, bson.M{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, utils.Validation("title is required")
		}
		set["title"] = title
	}
	if patch.Caption != nil {
		if strings.TrimSpace(*patch.Caption) == "" {
			return nil, utils.Validation("caption is required")
		}
		set["caption"] = *patch.Caption
	}
	if patch.CategoryID != nil {
		cat, err := parseCategory(*patch.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			unset["category"] = ""
		} else {
			set["category"] = *cat
		}
	}
	if patch.HasHashtags {
		set["hashtags"] = patch.Hashtags
	}
	if patch.ScheduledAt != nil {
		at, err := parseSchedule(*patch.ScheduledAt)
		if err != nil {
			return nil, err
		}
		if at == nil {
			unset["scheduledAt"] = ""
		} else {
			set["scheduledAt"] = *at
		}
	}
	if patch.Status != nil && strings.TrimSpace(*patch.Status) != "" {
		status, err := parseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		set["status"] = status
	}
	if patch.IsHidden != nil {
		set["isHidden"] = *patch.IsHidden
	}
	switch {
	case img != nil:
		url, err := s.uploadImage(ctx, img)
		if err != nil {
			return nil, err
		}
		set["imageUrl"] = url
	case patch.ImageURL != nil:
		set["imageUrl"] = strings.TrimSpace(*patch.ImageURL)
	}

	if len(set) == 0 && len(unset) == 0 {
		return s.store.FindByID(ctx, id)
	}
	post, err := s.store.Update(ctx, id, set, unset)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound()
	}
	if err != nil {
		return nil, err
	}
	s.reschedule(ctx, post)
	return post, nil
}

// reschedule keeps the publish task in line with the post. Failures are
// logged; the post can still be published by editing it.
func (s *Service) reschedule(ctx context.Context, post *models.SocialPost) {
	var err error
	if post.Status == models.PostScheduled && post.ScheduledAt != nil && post.ScheduledAt.After(s.now()) {
		err = s.scheduler.SchedulePublish(ctx, post.ID, *post.ScheduledAt)
	} else {
		err = s.scheduler.CancelPublish(ctx, post.ID)
	}
	if err != nil {
		s.log.Warn("post publish scheduling failed", zap.String("post_id", post.ID.Hex()), zap.Error(err))
	}
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		return err
	}
	if err := s.scheduler.CancelPublish(ctx, id); err != nil {
		s.log.Warn("cancel publish task failed", zap.String("post_id", id.Hex()), zap.Error(err))
	}
	return nil
}

func (s *Service) translate(post *models.SocialPost, err error) (*models.SocialPost, error) {
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound()
	}
	return post, err
}

func (s *Service) ToggleVisibility(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	return s.translate(s.store.ToggleHidden(ctx, id))
}

func (s *Service) Like(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	return s.translate(s.store.Increment(ctx, id, FieldLikes))
}

func (s *Service) Share(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error) {
	return s.translate(s.store.Increment(ctx, id, FieldShares))
}

func (s *Service) Comment(ctx context.Context, id primitive.ObjectID, text string) (*models.SocialPost, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.Validation("Comment text required")
	}
	return s.translate(s.store.AddComment(ctx, id, models.Comment{Text: text, CreatedAt: s.now().UTC()}))
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// HandlePublishTask publishes the post named in the task payload. A post
// that was deleted or rescheduled in the meantime is skipped.
func (s *Service) HandlePublishTask(ctx context.Context, t *asynq.Task) error {
	var p PublishPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %w", TypePublishPost, err)
	}
	id, err := primitive.ObjectIDFromHex(p.PostID)
	if err != nil {
		return fmt.Errorf("bad post id %q: %w", p.PostID, asynq.SkipRetry)
	}
	published, err := s.store.PublishDue(ctx, id, s.now().UTC())
	if errors.Is(err, database.ErrNotFound) {
		s.log.Info("post gone, publish skipped", zap.String("post_id", p.PostID))
		return nil
	}
	if err != nil {
		return err
	}
	if published {
		s.log.Info("post published", zap.String("post_id", p.PostID))
	} else {
		s.log.Info("post not due or not scheduled, publish skipped", zap.String("post_id", p.PostID))
	}
	return nil
}
