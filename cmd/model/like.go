package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeKind string

const (
	LikeVideo   LikeKind = "video"
	LikeComment LikeKind = "comment"
	LikeTweet   LikeKind = "tweet"
)

// LikeTarget the single entity a like points at
type LikeTarget struct {
	Kind LikeKind
	ID   primitive.ObjectID
}

// Field bson field holding the target reference
func (t LikeTarget) Field() string {
	return string(t.Kind)
}

// Like exactly one of Video, Comment, Tweet is set
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

func NewLike(user primitive.ObjectID, target LikeTarget, now time.Time) *Like {
	l := &Like{LikedBy: user, CreatedAt: now}
	id := target.ID
	switch target.Kind {
	case LikeVideo:
		l.Video = &id
	case LikeComment:
		l.Comment = &id
	case LikeTweet:
		l.Tweet = &id
	}
	return l
}

func (l *Like) Target() LikeTarget {
	switch {
	case l.Video != nil:
		return LikeTarget{Kind: LikeVideo, ID: *l.Video}
	case l.Comment != nil:
		return LikeTarget{Kind: LikeComment, ID: *l.Comment}
	case l.Tweet != nil:
		return LikeTarget{Kind: LikeTweet, ID: *l.Tweet}
	}
	return LikeTarget{}
}
