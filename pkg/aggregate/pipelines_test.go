package aggregate

import (
	"strings"
	"testing"

	"VideoTube.com/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, s := range p {
		names = append(names, s[0].Key)
	}
	return names
}

// mentions reports whether any key or string value anywhere in v contains needle
func mentions(v interface{}, needle string) bool {
	switch x := v.(type) {
	case mongo.Pipeline:
		for _, s := range x {
			if mentions(s, needle) {
				return true
			}
		}
	case []bson.D:
		for _, s := range x {
			if mentions(s, needle) {
				return true
			}
		}
	case bson.D:
		for _, e := range x {
			if strings.Contains(e.Key, needle) || mentions(e.Value, needle) {
				return true
			}
		}
	case bson.A:
		for _, e := range x {
			if mentions(e, needle) {
				return true
			}
		}
	case string:
		return strings.Contains(x, needle)
	}
	return false
}

func lastProject(t *testing.T, p mongo.Pipeline) []string {
	t.Helper()
	last := p[len(p)-1]
	require.Equal(t, "$project", last[0].Key)
	var fields []string
	for _, e := range last[0].Value.(bson.D) {
		fields = append(fields, e.Key)
	}
	return fields
}

func TestPipelinesNeverExposeCredentials(t *testing.T) {
	id := primitive.NewObjectID()
	pipelines := map[string]mongo.Pipeline{
		"VideoDetail":        VideoDetail(id),
		"TweetDetail":        TweetDetail(id),
		"UserTweets":         UserTweets(id),
		"ChannelProfile":     ChannelProfile("alice", id),
		"WatchHistory":       WatchHistory(id),
		"LikedVideos":        LikedVideos(id),
		"VideoList":          VideoList(VideoListFilter("", nil, id), "views", true, 1, 10),
		"VideoComments":      VideoComments(id, 1, 10),
		"PlaylistDetail":     PlaylistDetail(id),
		"UserPlaylists":      UserPlaylists(id),
		"ChannelSubscribers": ChannelSubscribers(id),
		"SubscribedChannels": SubscribedChannels(id),
	}
	for name, p := range pipelines {
		t.Run(name, func(t *testing.T) {
			assert.False(t, mentions(p, "password"))
			assert.False(t, mentions(p, "refreshToken"))
		})
	}
}

func TestVideoDetail(t *testing.T) {
	id := primitive.NewObjectID()
	p := VideoDetail(id)

	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$lookup", "$addFields", "$project"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, p[0][0].Value)
	assert.Contains(t, lastProject(t, p), "likesCount")
	assert.Contains(t, lastProject(t, p), "owner")
	assert.NotContains(t, lastProject(t, p), "likes")

	ownerLookup := p[1][0].Value.(bson.D)
	assert.Equal(t, "users", ownerLookup[0].Value)
	assert.Equal(t, bson.D{{Key: "owner", Value: First("$owner")}}, p[2][0].Value)
}

func TestChannelProfile(t *testing.T) {
	viewer := primitive.NewObjectID()
	p := ChannelProfile("alice", viewer)

	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$project"}, stageNames(p))
	fields := p[3][0].Value.(bson.D)
	require.Len(t, fields, 3)
	assert.Equal(t, "isSubscribed", fields[2].Key)
	assert.Equal(t, In(viewer, "$subscribers.subscriber"), fields[2].Value)
	assert.ElementsMatch(t, []string{"_id", "fullName", "username", "subscribersCount",
		"channelsSubscribedToCount", "isSubscribed", "avatar", "coverImage", "email"}, lastProject(t, p))
}

func TestWatchHistoryKeepsHistoryOrder(t *testing.T) {
	p := WatchHistory(primitive.NewObjectID())

	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$project"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "watchHistory", Value: OrderedJoin("$watchHistory", "$watchedVideos")}}, p[2][0].Value)
	// the nested lookup resolves the owner of each watched video
	assert.True(t, mentions(p[1], "$owner"))
}

func TestLikedVideos(t *testing.T) {
	user := primitive.NewObjectID()
	p := LikedVideos(user)

	assert.Equal(t, []string{"$match", "$sort", "$lookup", "$unwind", "$replaceRoot"}, stageNames(p))
	match := p[0][0].Value.(bson.D)
	assert.Equal(t, user, match[0].Value)
	assert.Equal(t, "video", match[1].Key)
}

func TestVideoList(t *testing.T) {
	viewer := primitive.NewObjectID()

	t.Run("unknown sort falls back to createdAt", func(t *testing.T) {
		p := VideoList(VideoListFilter("", nil, viewer), "password", false, 1, 10)
		assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}, p[1][0].Value)
	})

	t.Run("page window inside facet", func(t *testing.T) {
		p := VideoList(VideoListFilter("", nil, viewer), "views", true, 3, 20)
		assert.Equal(t, []string{"$match", "$sort", "$facet"}, stageNames(p))
		facet := p[2][0].Value.(bson.D)
		docs := facet[1].Value.(mongo.Pipeline)
		assert.Equal(t, Skip(40), docs[0])
		assert.Equal(t, Limit(20), docs[1])
	})

	t.Run("largest page keeps skip positive", func(t *testing.T) {
		page, limit := utils.ParsePage("9223372036854775807", "100")
		p := VideoList(VideoListFilter("", nil, viewer), "", false, page, limit)
		docs := p[2][0].Value.(bson.D)[1].Value.(mongo.Pipeline)
		skip, ok := docs[0][0].Value.(int64)
		require.True(t, ok)
		assert.Positive(t, skip)
	})

	t.Run("search is escaped and case insensitive", func(t *testing.T) {
		owner := primitive.NewObjectID()
		f := VideoListFilter("go (1.22)", &owner, viewer)
		clauses := f[0].Value.(bson.A)
		require.Len(t, clauses, 3)
		assert.Equal(t, bson.D{{Key: "owner", Value: owner}}, clauses[1])
		search := clauses[2].(bson.D)[0].Value.(bson.A)
		re := search[0].(bson.D)[0].Value.(primitive.Regex)
		assert.Equal(t, `go \(1\.22\)`, re.Pattern)
		assert.Equal(t, "i", re.Options)
	})
}

func TestVideoComments(t *testing.T) {
	p := VideoComments(primitive.NewObjectID(), 2, 5)
	assert.Equal(t, Skip(5), p[2])
	assert.Equal(t, Limit(5), p[3])
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, p[1][0].Value)
}

func TestPlaylistDetail(t *testing.T) {
	p := PlaylistDetail(primitive.NewObjectID())
	assert.Equal(t, []string{"$match", "$lookup", "$lookup", "$addFields", "$addFields", "$addFields", "$project"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "videos", Value: OrderedJoin("$videos", "$playlistVideos")}}, p[4][0].Value)
}

func TestSubscriptionLists(t *testing.T) {
	id := primitive.NewObjectID()
	subs := ChannelSubscribers(id)
	assert.Equal(t, bson.D{{Key: "channel", Value: id}}, subs[0][0].Value)
	assert.Equal(t, ReplaceRoot("$subscriber"), subs[4])

	channels := SubscribedChannels(id)
	assert.Equal(t, bson.D{{Key: "subscriber", Value: id}}, channels[0][0].Value)
	assert.Equal(t, ReplaceRoot("$channel"), channels[4])
}
