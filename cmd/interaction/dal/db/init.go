package db

import (
	"VideoTube.com/pkg/constants"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentDB comments 集合
type CommentDB struct {
	comments *mongo.Collection
}

func NewCommentDB(db *mongo.Database) *CommentDB {
	return &CommentDB{comments: db.Collection(constants.CommentCollection)}
}

// LikeDB likes 集合，一个 like 只指向一个目标
type LikeDB struct {
	likes *mongo.Collection
}

func NewLikeDB(db *mongo.Database) *LikeDB {
	return &LikeDB{likes: db.Collection(constants.LikeCollection)}
}
