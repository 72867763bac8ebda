package aggregate

import (
	"regexp"

	"VideoTube.com/pkg/constants"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	videoFields = []string{
		"_id", "videoFile", "thumbnail", "title", "description",
		"duration", "views", "isPublished", "createdAt", "updatedAt",
	}
	videoCardFields = append(append([]string(nil), videoFields...), "owner")
)

// ownerLookup replaces the owner id with a summary of the owning user
func ownerLookup(fields ...string) []bson.D {
	return []bson.D{
		Lookup(constants.UserCollection, "owner", "_id", "owner", Project(fields...)),
		AddFields(bson.D{{Key: "owner", Value: First("$owner")}}),
	}
}

// likesCount counts the likes whose `field` references this document
func likesCount(field string) []bson.D {
	return []bson.D{
		Lookup(constants.LikeCollection, "_id", field, "likes", Project("_id")),
		AddFields(bson.D{{Key: "likesCount", Value: Size("$likes")}}),
	}
}

// videoCard sub pipeline shared by every list of videos
func videoCard() []bson.D {
	stages := ownerLookup("username", "fullName", "avatar")
	return append(stages, Project(videoCardFields...))
}

func pipeline(parts ...[]bson.D) mongo.Pipeline {
	var p mongo.Pipeline
	for _, part := range parts {
		p = append(p, part...)
	}
	return p
}

func stage(s ...bson.D) []bson.D { return s }

// VideoDetail video ⋈ owner ⋈ likes, one document or none
func VideoDetail(videoID primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage(Match(bson.D{{Key: "_id", Value: videoID}})),
		ownerLookup("username", "avatar", "coverImage"),
		likesCount("video"),
		stage(Project(append(append([]string(nil), videoCardFields...), "likesCount")...)),
	)
}

var tweetFields = []string{"_id", "content", "owner", "likesCount", "createdAt", "updatedAt"}

// TweetDetail tweet ⋈ owner ⋈ likes
func TweetDetail(tweetID primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage(Match(bson.D{{Key: "_id", Value: tweetID}})),
		ownerLookup("username", "fullName", "avatar", "coverImage"),
		likesCount("tweet"),
		stage(Project(tweetFields...)),
	)
}

// UserTweets every tweet of owner, newest first
func UserTweets(owner primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage(
			Match(bson.D{{Key: "owner", Value: owner}}),
			Sort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		),
		ownerLookup("username", "fullName", "avatar", "coverImage"),
		likesCount("tweet"),
		stage(Project(tweetFields...)),
	)
}

// ChannelProfile public profile of username as seen by viewer
func ChannelProfile(username string, viewer primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		Match(bson.D{{Key: "username", Value: username}}),
		Lookup(constants.SubscriptionCollection, "_id", "channel", "subscribers"),
		Lookup(constants.SubscriptionCollection, "_id", "subscriber", "subscribedTo"),
		AddFields(bson.D{
			{Key: "subscribersCount", Value: Size("$subscribers")},
			{Key: "channelsSubscribedToCount", Value: Size("$subscribedTo")},
			{Key: "isSubscribed", Value: In(viewer, "$subscribers.subscriber")},
		}),
		Project("_id", "fullName", "username", "subscribersCount", "channelsSubscribedToCount",
			"isSubscribed", "avatar", "coverImage", "email"),
	}
}

// WatchHistory videos of the user's history in history order, repeats preserved
func WatchHistory(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		Match(bson.D{{Key: "_id", Value: userID}}),
		Lookup(constants.VideoCollection, "watchHistory", "_id", "watchedVideos",
			append(ownerLookup("fullName", "username", "avatar"), Project(videoCardFields...))...),
		AddFields(bson.D{{Key: "watchHistory", Value: OrderedJoin("$watchHistory", "$watchedVideos")}}),
		Project("watchHistory"),
	}
}

// LikedVideos videos liked by user, most recent like first
func LikedVideos(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		Match(bson.D{
			{Key: "likedBy", Value: userID},
			{Key: "video", Value: bson.D{{Key: "$exists", Value: true}}},
		}),
		Sort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		Lookup(constants.VideoCollection, "video", "_id", "video", videoCard()...),
		Unwind("$video"),
		ReplaceRoot("$video"),
	}
}

// VideoSortFields sortable fields of the video list
var VideoSortFields = map[string]bool{
	"createdAt": true,
	"views":     true,
	"duration":  true,
	"title":     true,
}

// VideoListFilter match filter for the video list
func VideoListFilter(search string, owner *primitive.ObjectID, viewer primitive.ObjectID) bson.D {
	clauses := bson.A{
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "isPublished", Value: true}},
			bson.D{{Key: "owner", Value: viewer}},
		}}},
	}
	if owner != nil {
		clauses = append(clauses, bson.D{{Key: "owner", Value: *owner}})
	}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		clauses = append(clauses, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
		}}})
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

// VideoList one page of videos plus the total count, as a single $facet document
// {metadata: [{total}], docs: [...]}
func VideoList(filter bson.D, sortBy string, desc bool, page, limit int64) mongo.Pipeline {
	if !VideoSortFields[sortBy] {
		sortBy = "createdAt"
	}
	dir := 1
	if desc {
		dir = -1
	}
	docs := pipeline(
		stage(Skip((page-1)*limit), Limit(limit)),
		videoCard(),
	)
	return mongo.Pipeline{
		Match(filter),
		Sort(bson.D{{Key: sortBy, Value: dir}, {Key: "_id", Value: dir}}),
		Facet(bson.D{
			{Key: "metadata", Value: bson.A{bson.D{{Key: "$count", Value: "total"}}}},
			{Key: "docs", Value: docs},
		}),
	}
}

// VideoComments one page of comments on a video, newest first
func VideoComments(videoID primitive.ObjectID, page, limit int64) mongo.Pipeline {
	return pipeline(
		stage(
			Match(bson.D{{Key: "video", Value: videoID}}),
			Sort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
			Skip((page-1)*limit),
			Limit(limit),
		),
		ownerLookup("username", "fullName", "avatar"),
		likesCount("comment"),
		stage(Project("_id", "content", "video", "owner", "likesCount", "createdAt", "updatedAt")),
	)
}

// PlaylistDetail playlist ⋈ owner ⋈ videos (playlist order) with totals
func PlaylistDetail(playlistID primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage(
			Match(bson.D{{Key: "_id", Value: playlistID}}),
			Lookup(constants.VideoCollection, "videos", "_id", "playlistVideos", videoCard()...),
		),
		ownerLookup("username", "fullName", "avatar"),
		stage(
			AddFields(bson.D{{Key: "videos", Value: OrderedJoin("$videos", "$playlistVideos")}}),
			AddFields(bson.D{
				{Key: "totalVideos", Value: Size("$videos")},
				{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$videos.views"}}},
			}),
			Project("_id", "name", "description", "owner", "videos", "totalVideos", "totalViews", "createdAt", "updatedAt"),
		),
	)
}

// UserPlaylists playlists owned by user, recently updated first
func UserPlaylists(owner primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		Match(bson.D{{Key: "owner", Value: owner}}),
		Sort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}),
		AddFields(bson.D{{Key: "totalVideos", Value: Size(IfNull("$videos", bson.A{}))}}),
		Project("_id", "name", "description", "totalVideos", "createdAt", "updatedAt"),
	}
}

// ChannelSubscribers users subscribed to channel, newest subscription first
func ChannelSubscribers(channel primitive.ObjectID) mongo.Pipeline {
	return relatedUsers("channel", channel, "subscriber")
}

// SubscribedChannels channels the subscriber follows, newest subscription first
func SubscribedChannels(subscriber primitive.ObjectID) mongo.Pipeline {
	return relatedUsers("subscriber", subscriber, "channel")
}

func relatedUsers(matchField string, id primitive.ObjectID, userField string) mongo.Pipeline {
	return mongo.Pipeline{
		Match(bson.D{{Key: matchField, Value: id}}),
		Sort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		Lookup(constants.UserCollection, userField, "_id", userField, Project("username", "fullName", "avatar")),
		Unwind("$" + userField),
		ReplaceRoot("$" + userField),
	}
}
