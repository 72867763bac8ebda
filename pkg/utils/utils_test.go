package utils

import (
	"errors"
	"testing"

	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCrypt(t *testing.T) {
	hash, err := Crypt("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestParseObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := ParseObjectID(want.Hex(), "videoId")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, raw := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", want.Hex() + "0"} {
		_, err := ParseObjectID(raw, "videoId")
		assert.True(t, errors.Is(err, errno.InvalidArgumentErr), raw)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int64
	}{
		{"", "", 1, 10},
		{"3", "25", 3, 25},
		{"-1", "0", 1, 10},
		{"x", "1000", 1, 100},
		{"9223372036854775807", "10", constants.MaxPage, 10},
		{"99999999999999999999", "100", constants.MaxPage, 100},
		{"-99999999999999999999", "", 1, 10},
	}
	for _, tt := range tests {
		p, l := ParsePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p, tt.page)
		assert.Equal(t, tt.wantLimit, l, tt.limit)
		assert.GreaterOrEqual(t, (p-1)*l, int64(0), "skip must not overflow for page %s", tt.page)
	}
}

func TestIdentityHelpers(t *testing.T) {
	assert.Equal(t, "alice", NormalizeIdentity("  Alice "))
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.False(t, IsValidEmail("alice@"))
	assert.Equal(t, []string{"email", "password"},
		BlankFields(map[string]string{"username": "a", "email": " ", "password": ""}, "username", "email", "password"))
}

func TestParseProbeDuration(t *testing.T) {
	d, err := ParseProbeDuration(`{"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	_, err = ParseProbeDuration(`{"streams":[]}`)
	assert.Error(t, err)
}
