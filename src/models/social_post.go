package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups social posts.
type Category struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type PostStatus string

const (
	PostDraft     PostStatus = "Draft"
	PostScheduled PostStatus = "Scheduled"
	PostPublished PostStatus = "Published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostScheduled, PostPublished:
		return true
	}
	return false
}

type Comment struct {
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type SocialPost struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	CategoryID  *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Caption     string              `json:"caption" bson:"caption"`
	Hashtags    []string            `json:"hashtags" bson:"hashtags"`
	ImageURL    string              `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ScheduledAt *time.Time          `json:"scheduledAt,omitempty" bson:"scheduledAt,omitempty"`
	Status      PostStatus          `json:"status" bson:"status"`
	Likes       int                 `json:"likes" bson:"likes"`
	Shares      int                 `json:"shares" bson:"shares"`
	Comments    []Comment           `json:"comments" bson:"comments"`
	IsHidden    bool                `json:"isHidden" bson:"isHidden"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}

// SocialPostView is a feed entry with its category joined in.
type SocialPostView struct {
	SocialPost `bson:",inline"`
	Category   *Category `json:"category" bson:"categoryDoc,omitempty"`
}

// PostPatch is the parsed body of a create or update request. Nil
// pointers are keys the client did not send.
type PostPatch struct {
	Title       *string
	CategoryID  *string
	Caption     *string
	Hashtags    []string
	HasHashtags bool
	ImageURL    *string
	ScheduledAt *string
	Status      *string
	IsHidden    *bool
}

type CommentRequest struct {
	Text string `json:"text"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}
