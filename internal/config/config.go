package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the API. Values come from the
// environment; a local .env file is loaded first when present.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"wholesale"`

	// CacheBackend selects "memory" or "redis".
	CacheBackend string        `envconfig:"CACHE_BACKEND" default:"memory"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	Redis RedisConfig

	// RateLimit uses the limiter formatted syntax, e.g. "120-M".
	RateLimit string `envconfig:"RATE_LIMIT" default:"120-M"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (rc *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", rc.Host, rc.Port)
}

func Load() (*Config, error) {
	// Only load .env when running locally; deployed environments inject
	// variables directly.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
