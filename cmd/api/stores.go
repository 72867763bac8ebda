package main

import (
	interactiondb "VideoTube.com/cmd/interaction/dal/db"
	playlistdb "VideoTube.com/cmd/playlist/dal/db"
	tweetdb "VideoTube.com/cmd/tweet/dal/db"
	videodb "VideoTube.com/cmd/video/dal/db"
)

// videoCascade 删除视频时需要清理的集合
type videoCascade struct {
	*interactiondb.CommentDB
	*interactiondb.LikeDB
	*playlistdb.PlaylistDB
}

// likeTargets 点赞可以指向的三种实体
type likeTargets struct {
	*videodb.VideoDB
	*interactiondb.CommentDB
	*tweetdb.TweetDB
}
