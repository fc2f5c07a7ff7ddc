package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	// StaticDir holds the browser pages served on non-API paths.
	StaticDir string `env:"STATIC_DIR, default=public"`

	Mongo MongoConfig
	Redis RedisConfig
	Media MediaConfig
	Email EmailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rentease"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MediaConfig struct {
	Region        string `env:"MEDIA_S3_REGION,     default=us-east-1"`
	Bucket        string `env:"MEDIA_S3_BUCKET,     default=rentease-media"`
	AccessKey     string `env:"MEDIA_S3_ACCESS_KEY"`
	SecretKey     string `env:"MEDIA_S3_SECRET_KEY"`
	Endpoint      string `env:"MEDIA_S3_ENDPOINT"`
	PublicBaseURL string `env:"MEDIA_PUBLIC_BASE_URL"`
}

type EmailConfig struct {
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	FromEmail      string `env:"EMAIL_FROM,      default=no-reply@rentease.example"`
	FromName       string `env:"EMAIL_FROM_NAME, default=RentEase"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
