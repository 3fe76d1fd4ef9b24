package socialposts

import (
	"testing"
	"time"

	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func stageNames(f FeedFilter) []string {
	var names []string
	for _, stage := range f.Pipeline(now) {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestParseFeedQuery(t *testing.T) {
	catID := primitive.NewObjectID()
	testCases := []struct {
		name    string
		query   FeedQuery
		want    FeedFilter
		wantErr string
	}{
		{name: "defaults", query: FeedQuery{}, want: FeedFilter{Public: true}},
		{name: "admin trending", query: FeedQuery{View: "admin", Sort: "trending"}, want: FeedFilter{Trending: true}},
		{name: "all categories", query: FeedQuery{CategoryID: "all"}, want: FeedFilter{Public: true}},
		{name: "category", query: FeedQuery{CategoryID: catID.Hex()}, want: FeedFilter{Public: true, CategoryID: &catID}},
		{name: "bad category", query: FeedQuery{CategoryID: "x"}, wantErr: "Invalid category ID"},
		{name: "bad date", query: FeedQuery{Date: "10/06/2024"}, wantErr: "Invalid date, expected YYYY-MM-DD"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFeedQuery(tc.query)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, 400, utils.StatusOf(err))
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFeedDateBucketsToUTCDay(t *testing.T) {
	want := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-06-09", "2024-06-09T18:30:00Z", "2024-06-10T01:00:00+05:00"} {
		f, err := ParseFeedQuery(FeedQuery{Date: raw})
		require.NoError(t, err, raw)
		require.NotNil(t, f.Day)
		assert.Equal(t, want, *f.Day, raw)
	}
}

func TestMatchPublic(t *testing.T) {
	match := FeedFilter{Public: true}.Match(now)
	assert.Equal(t, models.PostPublished, match["status"])
	assert.Equal(t, false, match["isHidden"])
	assert.Equal(t, bson.A{
		bson.M{"scheduledAt": nil},
		bson.M{"scheduledAt": bson.M{"$lte": now}},
	}, match["$or"])

	assert.Empty(t, FeedFilter{}.Match(now))
}

func TestMatchDayWindow(t *testing.T) {
	day := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	match := FeedFilter{Day: &day}.Match(now)
	assert.Equal(t, bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}, match["createdAt"])
}

func TestPipelineStages(t *testing.T) {
	assert.Equal(t, []string{"$match", "$sort", "$lookup", "$unwind"}, stageNames(FeedFilter{}))
	assert.Equal(t, []string{"$match", "$addFields", "$sort", "$unset", "$lookup", "$unwind"}, stageNames(FeedFilter{Trending: true}))

	sort := FeedFilter{Trending: true}.Pipeline(now)[2][0].Value.(bson.D)
	var keys []string
	for _, e := range sort {
		keys = append(keys, e.Key)
		assert.Equal(t, -1, e.Value)
	}
	assert.Equal(t, []string{"likes", "commentCount", "shares", "createdAt"}, keys)
}

func TestAcceptsAgreesWithMatch(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	testCases := []struct {
		name string
		post models.SocialPost
		want bool
	}{
		{name: "published", post: models.SocialPost{Status: models.PostPublished}, want: true},
		{name: "published past schedule", post: models.SocialPost{Status: models.PostPublished, ScheduledAt: &past}, want: true},
		{name: "published future schedule", post: models.SocialPost{Status: models.PostPublished, ScheduledAt: &future}, want: false},
		{name: "hidden", post: models.SocialPost{Status: models.PostPublished, IsHidden: true}, want: false},
		{name: "draft", post: models.SocialPost{Status: models.PostDraft}, want: false},
		{name: "scheduled", post: models.SocialPost{Status: models.PostScheduled, ScheduledAt: &past}, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FeedFilter{Public: true}.Accepts(&tc.post, now))
			assert.True(t, FeedFilter{}.Accepts(&tc.post, now))
		})
	}
}

func TestCompareTrending(t *testing.T) {
	f := FeedFilter{Trending: true}
	a := models.SocialPost{Likes: 3, Comments: make([]models.Comment, 1)}
	b := models.SocialPost{Likes: 3, Comments: make([]models.Comment, 2)}
	c := models.SocialPost{Likes: 3, Comments: make([]models.Comment, 2), Shares: 5}
	d := models.SocialPost{Likes: 4}

	assert.Negative(t, f.Compare(d, a))
	assert.Negative(t, f.Compare(b, a))
	assert.Negative(t, f.Compare(c, b))
	assert.Positive(t, f.Compare(a, c))
}

func TestParseHashtags(t *testing.T) {
	assert.Equal(t, []string{"#go", "#mongo", "#fiber"}, ParseHashtags(" #go, #mongo\n#fiber "))
	assert.Empty(t, ParseHashtags(" , "))
}
