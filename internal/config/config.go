package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Schema    SchemaConfig
	MinIO     MinIOConfig
	Auth      AuthConfig
	Notify    NotifyConfig
	Projects  ProjectsConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ExposeErrors bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig names the document store. URL and Name come from DATABASE_URL and
// DATABASE_NAME; Backend is "mongo" (default) or "memory".
type DatabaseConfig struct {
	URL     string
	Name    string
	Backend string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// SchemaConfig locates the schema definition source served on /schema.
// Object, when set and MinIO is configured, takes precedence over Path.
type SchemaConfig struct {
	Path   string
	Object string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type AuthConfig struct {
	JWTSecret    string
	OIDCIssuer   string
	OIDCClientID string
}

type NotifyConfig struct {
	SESRegion string
	From      string
	To        string
}

type ProjectsConfig struct {
	DefaultLimit int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_EXPOSE_ERRORS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORE_BACKEND", "mongo")
	v.SetDefault("DATABASE_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 0.2)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("SCHEMA_SOURCE_PATH", "internal/schema/schema.go")
	v.SetDefault("MINIO_BUCKET", "brandsite")
	v.SetDefault("PROJECTS_DEFAULT_LIMIT", 20)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ExposeErrors: v.GetBool("SERVER_EXPOSE_ERRORS"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			URL:     v.GetString("DATABASE_URL"),
			Name:    v.GetString("DATABASE_NAME"),
			Backend: v.GetString("STORE_BACKEND"),
			Timeout: time.Duration(v.GetInt("DATABASE_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Schema: SchemaConfig{
			Path:   v.GetString("SCHEMA_SOURCE_PATH"),
			Object: v.GetString("SCHEMA_SOURCE_OBJECT"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
			OIDCIssuer:   v.GetString("AUTH_OIDC_ISSUER"),
			OIDCClientID: v.GetString("AUTH_OIDC_CLIENT_ID"),
		},
		Notify: NotifyConfig{
			SESRegion: v.GetString("NOTIFY_SES_REGION"),
			From:      v.GetString("NOTIFY_FROM"),
			To:        v.GetString("NOTIFY_TO"),
		},
		Projects: ProjectsConfig{
			DefaultLimit: v.GetInt("PROJECTS_DEFAULT_LIMIT"),
		},
	}

	if cfg.Projects.DefaultLimit < 1 {
		cfg.Projects.DefaultLimit = 20
	}
	return cfg, nil
}

// NotifyEnabled reports whether every setting the contact mailer needs is present.
func (c *Config) NotifyEnabled() bool {
	return c.Notify.SESRegion != "" && c.Notify.From != "" && c.Notify.To != ""
}

// AuthEnabled reports whether project creation should require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != "" || (c.Auth.OIDCIssuer != "" && c.Auth.OIDCClientID != "")
}
