package config

import "time"

type Config struct {
	Server    Server    `yaml:"server" mapstructure:"server"`
	Mongo     Mongo     `yaml:"mongo" mapstructure:"mongo"`
	Auth      Auth      `yaml:"auth" mapstructure:"auth"`
	Minio     Minio     `yaml:"minio" mapstructure:"minio"`
	Redis     Redis     `yaml:"redis" mapstructure:"redis"`
	RateLimit RateLimit `yaml:"rate_limit" mapstructure:"rate_limit"`
	RabbitMq  RabbitMq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jaeger    Jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	Log       Log       `yaml:"log" mapstructure:"log"`
}

type Server struct {
	Addr             string        `yaml:"addr"`
	Env              string        `yaml:"env"`
	CorsOrigins      []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	MaxRequestBodyMB int           `yaml:"max_request_body_mb" mapstructure:"max_request_body_mb"`
	ReadTimeout      time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	TempDir          string        `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// IsProduction 生产环境下 cookie 需要 Secure
func (s Server) IsProduction() bool {
	return s.Env == "production"
}

type Mongo struct {
	URI      string        `yaml:"uri"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Auth struct {
	AccessTokenSecret  string        `yaml:"access_token_secret" mapstructure:"access_token_secret"`
	AccessTokenTTL     time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`
	RefreshTokenSecret string        `yaml:"refresh_token_secret" mapstructure:"refresh_token_secret"`
	RefreshTokenTTL    time.Duration `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`
	Issuer             string        `yaml:"issuer"`
}

type Minio struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey     string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url" mapstructure:"public_base_url"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimit struct {
	Enabled     bool          `yaml:"enabled"`
	Window      time.Duration `yaml:"window"`
	MaxRequests int64         `yaml:"max_requests" mapstructure:"max_requests"`
}

type RabbitMq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// URL amqp 连接串，Addr 为空时返回空串
func (r RabbitMq) URL() string {
	if r.Addr == "" {
		return ""
	}
	return "amqp://" + r.Username + ":" + r.Password + "@" + r.Addr + "/"
}

type Jaeger struct {
	Enabled     bool   `yaml:"enabled"`
	AgentAddr   string `yaml:"agent_addr" mapstructure:"agent_addr"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}
