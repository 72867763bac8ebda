package constants

import "math"

const (
	UserCollection         = "users"
	VideoCollection        = "videos"
	TweetCollection        = "tweets"
	CommentCollection      = "comments"
	LikeCollection         = "likes"
	SubscriptionCollection = "subscriptions"
	PlaylistCollection     = "playlists"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	IdentityKey        = "identity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit inside int64
	MaxPage = math.MaxInt64 / MaxLimit
)
