package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档，密码与 refresh token 永远不参与 JSON 序列化
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	FullName     string               `bson:"fullName" json:"fullName"`
	Avatar       string               `bson:"avatar" json:"avatar"`
	CoverImage   string               `bson:"coverImage,omitempty" json:"coverImage"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory" json:"watchHistory"`
	Password     string               `bson:"password" json:"-"`
	RefreshToken string               `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OwnerSummary projection of a user embedded into other documents
type OwnerSummary struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	FullName   string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Avatar     string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CoverImage string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
}

type ChannelProfile struct {
	ID                        primitive.ObjectID `bson:"_id" json:"_id"`
	FullName                  string             `bson:"fullName" json:"fullName"`
	Username                  string             `bson:"username" json:"username"`
	Email                     string             `bson:"email" json:"email"`
	Avatar                    string             `bson:"avatar" json:"avatar"`
	CoverImage                string             `bson:"coverImage" json:"coverImage"`
	SubscribersCount          int64              `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int64              `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed" json:"isSubscribed"`
}
