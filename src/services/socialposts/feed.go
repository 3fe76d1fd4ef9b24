package socialposts

import (
	"cmp"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FeedQuery is the raw query string of a feed request.
type FeedQuery struct {
	View       string `query:"view"`
	CategoryID string `query:"categoryId"`
	Date       string `query:"date"`
	Sort       string `query:"sort"`
}

// FeedFilter is a validated FeedQuery.
type FeedFilter struct {
	// Public hides drafts, hidden posts and posts scheduled in the future.
	Public     bool
	CategoryID *primitive.ObjectID
	// Day, when set, is the UTC midnight that starts the 24h window.
	Day      *time.Time
	Trending bool
}

// ParseFeedQuery validates q.
func ParseFeedQuery(q FeedQuery) (FeedFilter, error) {
	f := FeedFilter{
		Public:   q.View != "admin",
		Trending: q.Sort == "trending",
	}
	if q.CategoryID != "" && q.CategoryID != "all" {
		id, err := primitive.ObjectIDFromHex(q.CategoryID)
		if err != nil {
			return FeedFilter{}, utils.Validation("Invalid category ID")
		}
		f.CategoryID = &id
	}
	if q.Date != "" {
		day, err := parseDay(q.Date)
		if err != nil {
			return FeedFilter{}, utils.Validation("Invalid date, expected YYYY-MM-DD")
		}
		f.Day = &day
	}
	return f, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}, err
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Match is the $match stage document.
func (f FeedFilter) Match(now time.Time) bson.M {
	match := bson.M{}
	if f.Public {
		match["status"] = models.PostPublished
		match["isHidden"] = false
		match["$or"] = bson.A{
			bson.M{"scheduledAt": nil},
			bson.M{"scheduledAt": bson.M{"$lte": now}},
		}
	}
	if f.CategoryID != nil {
		match["category"] = *f.CategoryID
	}
	if f.Day != nil {
		match["createdAt"] = bson.M{"$gte": *f.Day, "$lt": f.Day.Add(24 * time.Hour)}
	}
	return match
}

// Pipeline builds the feed aggregation: filter, order, then join the
// category document.
func (f FeedFilter) Pipeline(now time.Time) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: f.Match(now)}}}
	if f.Trending {
		pipeline = append(pipeline,
			bson.D{{Key: "$addFields", Value: bson.D{{Key: "commentCount", Value: bson.D{
				{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$comments", bson.A{}}}}},
			}}}}},
			bson.D{{Key: "$sort", Value: bson.D{
				{Key: "likes", Value: -1},
				{Key: "commentCount", Value: -1},
				{Key: "shares", Value: -1},
				{Key: "createdAt", Value: -1},
			}}},
			bson.D{{Key: "$unset", Value: "commentCount"}},
		)
	} else {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}})
	}
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CategoryCollection},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categoryDoc"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$categoryDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
}

// Accepts evaluates Match against one post.
func (f FeedFilter) Accepts(p *models.SocialPost, now time.Time) bool {
	if f.Public {
		if p.Status != models.PostPublished || p.IsHidden {
			return false
		}
		if p.ScheduledAt != nil && p.ScheduledAt.After(now) {
			return false
		}
	}
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Day != nil && (p.CreatedAt.Before(*f.Day) || !p.CreatedAt.Before(f.Day.Add(24*time.Hour))) {
		return false
	}
	return true
}

// Compare orders two posts the way the pipeline sorts them.
func (f FeedFilter) Compare(a, b models.SocialPost) int {
	if f.Trending {
		if c := cmp.Compare(b.Likes, a.Likes); c != 0 {
			return c
		}
		if c := cmp.Compare(len(b.Comments), len(a.Comments)); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Shares, a.Shares); c != 0 {
			return c
		}
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}
