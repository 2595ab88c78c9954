package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API   APIConfig
	Store StoreConfig
	Stub  StubConfig
}

// APIConfig locates the remote VendorSync authentication service.
type APIConfig struct {
	BaseURL string        `env:"VENDORSYNC_API_URL, default=http://localhost:5000"`
	Timeout time.Duration `env:"VENDORSYNC_API_TIMEOUT, default=10s"`
}

// StoreConfig selects and configures the credential store backend.
type StoreConfig struct {
	// Backend is "file" (default, per-machine) or "redis" (shared fleet).
	Backend   string `env:"CREDENTIAL_STORE, default=file"`
	FilePath  string `env:"CREDENTIAL_FILE"`
	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,   default=0"`
}

// StubConfig configures the local stand-in authentication service
// (cmd/authstub), used when developing without the production backend.
type StubConfig struct {
	Port      string        `env:"AUTHSTUB_PORT,       default=5000"`
	JWTSecret string        `env:"AUTHSTUB_JWT_SECRET, default=dev-only-secret"`
	TokenTTL  time.Duration `env:"AUTHSTUB_TOKEN_TTL,  default=24h"`
	MongoURI  string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDB   string        `env:"MONGO_DB,  default=vendorsync_auth"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Store.FilePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		cfg.Store.FilePath = filepath.Join(home, ".vendorsync", "credentials.json")
	}
	return &cfg, nil
}
