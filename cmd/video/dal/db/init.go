package db

import (
	"VideoTube.com/pkg/constants"
	"go.mongodb.org/mongo-driver/mongo"
)

// VideoDB videos 集合的访问层
type VideoDB struct {
	videos *mongo.Collection
}

func NewVideoDB(db *mongo.Database) *VideoDB {
	return &VideoDB{videos: db.Collection(constants.VideoCollection)}
}
