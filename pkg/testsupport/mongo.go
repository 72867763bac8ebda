package testsupport

import (
	"context"
	"os"
	"testing"
	"time"

	"VideoTube.com/config"
	"VideoTube.com/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB connects to VIDEOTUBE_TEST_MONGO_URI and returns a throwaway database
// with indexes in place. The test is skipped in -short mode or when the URI is unset.
func MongoDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}
	uri := os.Getenv("VIDEOTUBE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("VIDEOTUBE_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, db, err := database.Connect(ctx, config.Mongo{
		URI:      uri,
		Database: "videotube_test_" + uuid.NewString()[:8],
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, database.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
