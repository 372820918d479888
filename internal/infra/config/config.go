package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorhill/cronexpr"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Summary   SummaryConfig   `yaml:"summary"`
	Assistant AssistantConfig `yaml:"assistant"`
	Auth      AuthConfig      `yaml:"auth"`
	Inventory InventoryConfig `yaml:"inventory"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Storage   StorageConfig   `yaml:"storage"`
	Refresh   RefreshConfig   `yaml:"refresh"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CORSConfig lists the browser origins allowed to call the API. "*" allows any.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SummaryConfig bounds the summarizer endpoints.
type SummaryConfig struct {
	MaxInputBytes int `yaml:"maxInputBytes"`
	MaxKeywords   int `yaml:"maxKeywords"`
}

// AssistantConfig controls the document chat sessions.
type AssistantConfig struct {
	MaxDocumentBytes int64         `yaml:"maxDocumentBytes"`
	SessionTTL       time.Duration `yaml:"sessionTtl"`
	Valkey           ValkeyConfig  `yaml:"valkey"`
}

// AuthConfig drives admin authentication.
type AuthConfig struct {
	Secret          string         `yaml:"secret"`
	TokenTTL        time.Duration  `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration  `yaml:"refreshTokenTtl"`
	Admins          []AdminAccount `yaml:"admins"`
	Postgres        PostgresConfig `yaml:"postgres"`
}

// AdminAccount seeds one console operator. PasswordHash is a bcrypt hash;
// Password is accepted for local setups and hashed at startup.
type AdminAccount struct {
	Username     string `yaml:"username"`
	DisplayName  string `yaml:"displayName"`
	PasswordHash string `yaml:"passwordHash"`
	Password     string `yaml:"password"`
}

// InventoryConfig selects where console entries are persisted.
type InventoryConfig struct {
	Driver   string         `yaml:"driver"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// CatalogConfig holds the upstream providers behind the browsing sections.
type CatalogConfig struct {
	Timeout     time.Duration     `yaml:"timeout"`
	YouTube     YouTubeConfig     `yaml:"youtube"`
	OpenLibrary OpenLibraryConfig `yaml:"openLibrary"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Cache       CacheConfig       `yaml:"cache"`
}

// YouTubeConfig configures the Data API v3 search client.
type YouTubeConfig struct {
	APIKey            string  `yaml:"apiKey"`
	BaseURL           string  `yaml:"baseUrl"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// OpenLibraryConfig configures the book search client.
type OpenLibraryConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// ArchiveConfig configures the Internet Archive advanced search client.
type ArchiveConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// GeminiConfig configures the news generator.
type GeminiConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
}

// CacheConfig controls catalog response caching.
type CacheConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// StorageConfig selects the blob store for generated snapshots.
type StorageConfig struct {
	Driver string   `yaml:"driver"`
	S3     S3Config `yaml:"s3"`
}

// S3Config contains credentials for an S3-compatible endpoint.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// RefreshConfig schedules the video snapshot job.
type RefreshConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Schedule  string `yaml:"schedule"`
	ObjectKey string `yaml:"objectKey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at the local database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Inventory drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
)

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	envString("HTTP_ADDRESS", &cfg.HTTP.Address)
	envBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	envInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	envInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	envBool("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	envInt("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	envDuration("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}

	envInt("SUMMARY_MAX_INPUT_BYTES", &cfg.Summary.MaxInputBytes)
	envInt("SUMMARY_MAX_KEYWORDS", &cfg.Summary.MaxKeywords)

	if v := os.Getenv("ASSISTANT_MAX_DOCUMENT_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Assistant.MaxDocumentBytes = parsed
		}
	}
	envDuration("ASSISTANT_SESSION_TTL", &cfg.Assistant.SessionTTL)
	envBool("ASSISTANT_VALKEY_ENABLED", &cfg.Assistant.Valkey.Enabled)
	envString("ASSISTANT_VALKEY_ADDR", &cfg.Assistant.Valkey.Addr)

	envString("AUTH_SECRET", &cfg.Auth.Secret)
	envDuration("AUTH_TOKEN_TTL", &cfg.Auth.TokenTTL)
	envDuration("AUTH_REFRESH_TOKEN_TTL", &cfg.Auth.RefreshTokenTTL)
	envString("AUTH_POSTGRES_DSN", &cfg.Auth.Postgres.DSN)
	if user := strings.TrimSpace(os.Getenv("AUTH_ADMIN_USERNAME")); user != "" {
		cfg.Auth.Admins = append(cfg.Auth.Admins, AdminAccount{
			Username:     user,
			PasswordHash: os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
			Password:     os.Getenv("AUTH_ADMIN_PASSWORD"),
		})
	}

	envString("INVENTORY_DRIVER", &cfg.Inventory.Driver)
	envString("INVENTORY_POSTGRES_DSN", &cfg.Inventory.Postgres.DSN)
	envString("INVENTORY_SQLITE_PATH", &cfg.Inventory.SQLite.Path)

	envDuration("CATALOG_TIMEOUT", &cfg.Catalog.Timeout)
	envString("YOUTUBE_API_KEY", &cfg.Catalog.YouTube.APIKey)
	envString("YOUTUBE_BASE_URL", &cfg.Catalog.YouTube.BaseURL)
	envString("OPENLIBRARY_BASE_URL", &cfg.Catalog.OpenLibrary.BaseURL)
	envString("ARCHIVE_BASE_URL", &cfg.Catalog.Archive.BaseURL)
	envString("GEMINI_API_KEY", &cfg.Catalog.Gemini.APIKey)
	envString("GEMINI_BASE_URL", &cfg.Catalog.Gemini.BaseURL)
	envString("GEMINI_MODEL", &cfg.Catalog.Gemini.Model)
	envDuration("CATALOG_CACHE_TTL", &cfg.Catalog.Cache.TTL)
	envBool("CATALOG_VALKEY_ENABLED", &cfg.Catalog.Cache.Valkey.Enabled)
	envString("CATALOG_VALKEY_ADDR", &cfg.Catalog.Cache.Valkey.Addr)

	envString("STORAGE_DRIVER", &cfg.Storage.Driver)
	envString("STORAGE_S3_ENDPOINT", &cfg.Storage.S3.Endpoint)
	envString("STORAGE_S3_ACCESS_KEY", &cfg.Storage.S3.AccessKey)
	envString("STORAGE_S3_SECRET_KEY", &cfg.Storage.S3.SecretKey)
	envString("STORAGE_S3_BUCKET", &cfg.Storage.S3.Bucket)
	envString("STORAGE_S3_REGION", &cfg.Storage.S3.Region)

	envBool("REFRESH_ENABLED", &cfg.Refresh.Enabled)
	envString("REFRESH_SCHEDULE", &cfg.Refresh.Schedule)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/summaries/stream",
					"/api/v1/assistant/sessions",
					"/api/v1/assistant/sessions/:id/documents",
					"/api/v1/assistant/sessions/:id/messages",
					"/api/v1/inventory",
					"/api/v1/auth/login",
					"/api/v1/auth/refresh",
				},
			},
			CORS: CORSConfig{AllowedOrigins: []string{"*"}},
		},
		Summary: SummaryConfig{
			MaxInputBytes: 2 << 20,
			MaxKeywords:   8,
		},
		Assistant: AssistantConfig{
			MaxDocumentBytes: 10 << 20,
			SessionTTL:       2 * time.Hour,
		},
		Auth: AuthConfig{
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			Postgres:        PostgresConfig{MaxConns: 4},
		},
		Inventory: InventoryConfig{
			Driver:   DriverMemory,
			Postgres: PostgresConfig{MaxConns: 4},
			SQLite:   SQLiteConfig{Path: "data/edudigital.db"},
		},
		Catalog: CatalogConfig{
			Timeout: 10 * time.Second,
			YouTube: YouTubeConfig{
				BaseURL:           "https://www.googleapis.com/youtube/v3",
				RequestsPerSecond: 5,
				Burst:             5,
			},
			OpenLibrary: OpenLibraryConfig{BaseURL: "https://openlibrary.org"},
			Archive:     ArchiveConfig{BaseURL: "https://archive.org"},
			Gemini: GeminiConfig{
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
				Model:   "gemini-2.0-flash",
			},
			Cache: CacheConfig{TTL: 30 * time.Minute},
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Refresh: RefreshConfig{
			Enabled:   false,
			Schedule:  "0 6 * * *",
			ObjectKey: "public/data-youtube.json",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Summary.MaxInputBytes <= 0 {
		return errors.New("summary.maxInputBytes must be positive")
	}
	if c.Summary.MaxKeywords <= 0 {
		return errors.New("summary.maxKeywords must be positive")
	}
	if c.Assistant.MaxDocumentBytes <= 0 {
		return errors.New("assistant.maxDocumentBytes must be positive")
	}
	if c.Assistant.SessionTTL <= 0 {
		return errors.New("assistant.sessionTtl must be positive")
	}
	if c.Assistant.Valkey.Enabled && strings.TrimSpace(c.Assistant.Valkey.Addr) == "" {
		return errors.New("assistant.valkey.addr cannot be empty when valkey is enabled")
	}
	if len(c.Auth.Admins) > 0 && len(c.Auth.Secret) < 16 {
		return errors.New("auth.secret must be at least 16 characters when admins are configured")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttls must be positive")
	}
	for i, admin := range c.Auth.Admins {
		if strings.TrimSpace(admin.Username) == "" {
			return fmt.Errorf("auth.admins[%d].username cannot be empty", i)
		}
		if admin.PasswordHash == "" && admin.Password == "" {
			return fmt.Errorf("auth.admins[%d] needs passwordHash or password", i)
		}
	}
	switch c.Inventory.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Inventory.Postgres.DSN) == "" {
			return errors.New("inventory.postgres.dsn cannot be empty for the postgres driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Inventory.SQLite.Path) == "" {
			return errors.New("inventory.sqlite.path cannot be empty for the sqlite driver")
		}
	default:
		return fmt.Errorf("inventory.driver %q is not supported", c.Inventory.Driver)
	}
	if c.Catalog.Timeout <= 0 {
		return errors.New("catalog.timeout must be positive")
	}
	if c.Catalog.YouTube.RequestsPerSecond <= 0 || c.Catalog.YouTube.Burst <= 0 {
		return errors.New("catalog.youtube rate limit must be positive")
	}
	if c.Catalog.Cache.TTL < 0 {
		return errors.New("catalog.cache.ttl cannot be negative")
	}
	if c.Catalog.Cache.Valkey.Enabled && strings.TrimSpace(c.Catalog.Cache.Valkey.Addr) == "" {
		return errors.New("catalog.cache.valkey.addr cannot be empty when valkey is enabled")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverS3:
		if c.Storage.S3.Endpoint == "" || c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.endpoint and storage.s3.bucket are required for the s3 driver")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	if _, err := cronexpr.Parse(c.Refresh.Schedule); err != nil {
		return fmt.Errorf("refresh.schedule: %w", err)
	}
	if strings.TrimSpace(c.Refresh.ObjectKey) == "" {
		return errors.New("refresh.objectKey cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
