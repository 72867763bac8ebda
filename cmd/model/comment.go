package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CommentView struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Content    string             `bson:"content" json:"content"`
	Video      primitive.ObjectID `bson:"video" json:"video"`
	Owner      *OwnerSummary      `bson:"owner" json:"owner"`
	LikesCount int64              `bson:"likesCount" json:"likesCount"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
