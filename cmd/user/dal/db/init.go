package db

import (
	"VideoTube.com/pkg/constants"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserDB users 集合的访问层
type UserDB struct {
	users *mongo.Collection
}

func NewUserDB(db *mongo.Database) *UserDB {
	return &UserDB{users: db.Collection(constants.UserCollection)}
}
