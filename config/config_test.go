package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("file values", func(t *testing.T) {
		dir := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  env: production
mongo:
  uri: "mongodb://user:pass@db:27017"
  database: tube
auth:
  access_token_secret: a-secret
  refresh_token_secret: r-secret
  access_token_ttl: 5m
  refresh_token_ttl: 48h
`)
		c, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", c.Server.Addr)
		assert.True(t, c.Server.IsProduction())
		assert.Equal(t, "tube", c.Mongo.Database)
		assert.Equal(t, 5*time.Minute, c.Auth.AccessTokenTTL)
		assert.Equal(t, 48*time.Hour, c.Auth.RefreshTokenTTL)
		// defaults survive when the file omits a section
		assert.Equal(t, "videotube", c.Minio.Bucket)
		assert.Equal(t, int64(20), c.RateLimit.MaxRequests)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := writeConfig(t, `
auth:
  access_token_secret: a-secret
  refresh_token_secret: r-secret
`)
		t.Setenv("VIDEOTUBE_AUTH_ACCESS_TOKEN_SECRET", "from-env")
		t.Setenv("VIDEOTUBE_MONGO_DATABASE", "envdb")
		c, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-env", c.Auth.AccessTokenSecret)
		assert.Equal(t, "envdb", c.Mongo.Database)
	})

	t.Run("missing secrets", func(t *testing.T) {
		dir := writeConfig(t, "server:\n  addr: \":8000\"\n")
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("identical secrets", func(t *testing.T) {
		dir := writeConfig(t, `
auth:
  access_token_secret: same
  refresh_token_secret: same
`)
		_, err := Load(dir)
		assert.Error(t, err)
	})
}

func TestRabbitMqURL(t *testing.T) {
	assert.Equal(t, "", RabbitMq{}.URL())
	assert.Equal(t, "amqp://guest:guest@mq:5672/", RabbitMq{Addr: "mq:5672", Username: "guest", Password: "guest"}.URL())
}

func TestRedactURI(t *testing.T) {
	assert.Equal(t, "mongodb://***@db:27017", redactURI("mongodb://user:pass@db:27017"))
	assert.Equal(t, "mongodb://localhost:27017", redactURI("mongodb://localhost:27017"))
}
