package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// insecureJWTSecret is the development fallback. Load refuses to run a
// production process with it.
const insecureJWTSecret = "insecure-dev-secret-do-not-use"

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	BaseURL  string `env:"BASE_URL, default=http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret  string        `env:"JWT_SECRET, default=insecure-dev-secret-do-not-use"`
	JWTTTL     time.Duration `env:"JWT_TTL,    default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	ViewWorkers int `env:"VIEW_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog_platform"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=0"`
}

type StorageConfig struct {
	Dir string `env:"STORAGE_DIR, default=./data/media"`
	// UploadSecret signs presigned upload URLs. Falls back to the JWT
	// secret when unset.
	UploadSecret string `env:"UPLOAD_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Env == "production" && cfg.JWTSecret == insecureJWTSecret {
		return nil, fmt.Errorf("config: JWT_SECRET must be set in production")
	}
	if cfg.Storage.UploadSecret == "" {
		cfg.Storage.UploadSecret = cfg.JWTSecret
	}
	return &cfg, nil
}
