package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewVideoPage(t *testing.T) {
	tests := []struct {
		name                 string
		total, page, limit   int64
		wantPages            int64
		wantNext, wantPrev   bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"single page", 7, 1, 10, 1, false, false},
		{"first of three", 25, 1, 10, 3, true, false},
		{"middle", 25, 2, 10, 3, true, true},
		{"last", 25, 3, 10, 3, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewVideoPage(nil, tt.total, tt.page, tt.limit)
			assert.NotNil(t, p.Docs)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNextPage)
			assert.Equal(t, tt.wantPrev, p.HasPrevPage)
		})
	}
}

func TestLikeTarget(t *testing.T) {
	user, tweet := primitive.NewObjectID(), primitive.NewObjectID()
	l := NewLike(user, LikeTarget{Kind: LikeTweet, ID: tweet}, time.Now())
	assert.Nil(t, l.Video)
	assert.Nil(t, l.Comment)
	require.NotNil(t, l.Tweet)
	assert.Equal(t, LikeTarget{Kind: LikeTweet, ID: tweet}, l.Target())
	assert.Equal(t, "tweet", l.Target().Field())
}

func TestUserJSONHidesCredentials(t *testing.T) {
	u := User{ID: primitive.NewObjectID(), Username: "alice", Password: "$2a$10$hash", RefreshToken: "rt"}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "refreshToken")
	assert.NotContains(t, string(raw), "$2a$10$hash")
}
