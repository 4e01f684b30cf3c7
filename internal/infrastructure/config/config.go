package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	// Host is the interface the app shell binds to; loopback unless set.
	Host     string `env:"HOST,      default=127.0.0.1"`
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// Backend selects mongo+redis or the in-process stores.
	Backend string `env:"STORAGE_BACKEND, default=mongo"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Auth    AuthConfig
	Shop    ShopConfig

	InvitationWorkers int `env:"INVITATION_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=event_planner"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	Key string `env:"SESSION_KEY, default=userData"`
}

// AuthConfig signs the app shell bearer tokens. An empty secret means a
// random per-process one.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL, default=24h"`
}

// Addr is the app shell listen address.
func (c *Config) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

type ShopConfig struct {
	CacheTTL  time.Duration `env:"SHOP_CACHE_TTL, default=10m"`
	BooksURL  string        `env:"BOOKS_API_URL, default=https://www.googleapis.com/books/v1"`
	BooksKey  string        `env:"BOOKS_API_KEY"`
	GamesURL  string        `env:"GAMES_API_URL, default=https://api.rawg.io/api"`
	GamesKey  string        `env:"GAMES_API_KEY"`
	MoviesURL string        `env:"MOVIES_API_URL, default=https://api.themoviedb.org/3"`
	MoviesKey string        `env:"MOVIES_API_KEY"`
}

// IsDevelopment reports whether logs should be human-friendly.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l and checks the backend name.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendMongo, BackendMemory:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMongo, BackendMemory, cfg.Backend)
	}
	return &cfg, nil
}
