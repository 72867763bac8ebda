package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "VIDEOTUBE"

var defaultConfigPaths = []string{
	"../../config",
	"./config",
	"../config",
	".",
}

// Load 读取 config.yml，环境变量 VIDEOTUBE_<SECTION>_<KEY> 优先于文件
// viper 对大小写不敏感，统一按小写 key 处理
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("load .env failed: %v", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if len(paths) == 0 {
		paths = defaultConfigPaths
	}
	for _, path := range paths {
		v.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config failed")
		}
		logrus.Warnf("config file not found, using defaults and environment: %v", err)
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	// 手动从viper获取配置值，避免Unmarshal问题
	var c Config
	c.Server.Addr = v.GetString("server.addr")
	c.Server.Env = v.GetString("server.env")
	c.Server.CorsOrigins = v.GetStringSlice("server.cors_origins")
	c.Server.MaxRequestBodyMB = v.GetInt("server.max_request_body_mb")
	c.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	c.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	c.Server.TempDir = v.GetString("server.temp_dir")

	c.Mongo.URI = v.GetString("mongo.uri")
	c.Mongo.Database = v.GetString("mongo.database")
	c.Mongo.Timeout = v.GetDuration("mongo.timeout")

	c.Auth.AccessTokenSecret = v.GetString("auth.access_token_secret")
	c.Auth.AccessTokenTTL = v.GetDuration("auth.access_token_ttl")
	c.Auth.RefreshTokenSecret = v.GetString("auth.refresh_token_secret")
	c.Auth.RefreshTokenTTL = v.GetDuration("auth.refresh_token_ttl")
	c.Auth.Issuer = v.GetString("auth.issuer")

	c.Minio.Endpoint = v.GetString("minio.endpoint")
	c.Minio.AccessKey = v.GetString("minio.access_key")
	c.Minio.SecretKey = v.GetString("minio.secret_key")
	c.Minio.UseSSL = v.GetBool("minio.use_ssl")
	c.Minio.Bucket = v.GetString("minio.bucket")
	c.Minio.PublicBaseURL = v.GetString("minio.public_base_url")

	c.Redis.Addr = v.GetString("redis.addr")
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")

	c.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	c.RateLimit.Window = v.GetDuration("rate_limit.window")
	c.RateLimit.MaxRequests = v.GetInt64("rate_limit.max_requests")

	c.RabbitMq.Addr = v.GetString("rabbitmq.addr")
	c.RabbitMq.Username = v.GetString("rabbitmq.username")
	c.RabbitMq.Password = v.GetString("rabbitmq.password")

	c.Jaeger.Enabled = v.GetBool("jaeger.enabled")
	c.Jaeger.AgentAddr = v.GetString("jaeger.agent_addr")
	c.Jaeger.ServiceName = v.GetString("jaeger.service_name")

	c.Log.Level = v.GetString("log.level")
	c.Log.File = v.GetString("log.file")
	c.Log.MaxSizeMB = v.GetInt("log.max_size_mb")
	c.Log.MaxBackups = v.GetInt("log.max_backups")
	c.Log.MaxAgeDays = v.GetInt("log.max_age_days")

	if err := c.validate(); err != nil {
		return nil, err
	}

	logrus.Infof("Config loaded - Mongo: %s/%s, MinIO: %s/%s, env: %s",
		redactURI(c.Mongo.URI), c.Mongo.Database, c.Minio.Endpoint, c.Minio.Bucket, c.Server.Env)
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.max_request_body_mb", 512)
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.temp_dir", "./public/temp")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "videotube")
	v.SetDefault("mongo.timeout", 10*time.Second)

	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 10*24*time.Hour)
	v.SetDefault("auth.issuer", "videotube")

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.bucket", "videotube")
	v.SetDefault("minio.public_base_url", "http://localhost:9000")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.max_requests", 20)

	v.SetDefault("jaeger.service_name", "videotube-api")
	v.SetDefault("jaeger.agent_addr", "localhost:6831")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
}

func (c *Config) validate() error {
	if c.Auth.AccessTokenSecret == "" {
		return errors.New("auth.access_token_secret is required")
	}
	if c.Auth.RefreshTokenSecret == "" {
		return errors.New("auth.refresh_token_secret is required")
	}
	if c.Auth.AccessTokenSecret == c.Auth.RefreshTokenSecret {
		return errors.New("auth.access_token_secret and auth.refresh_token_secret must differ")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttl must be positive")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo.database is required")
	}
	return nil
}

func redactURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	scheme := strings.Index(uri, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return uri
	}
	return uri[:scheme+3] + "***" + uri[at:]
}
