package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/edudigital/portal/internal/domain/assistant"
	"github.com/edudigital/portal/internal/domain/auth"
	"github.com/edudigital/portal/internal/domain/catalog"
	"github.com/edudigital/portal/internal/domain/inventory"
	"github.com/edudigital/portal/internal/domain/summarizer"
	"github.com/edudigital/portal/internal/infra/adminrepo"
	"github.com/edudigital/portal/internal/infra/archiveorg"
	"github.com/edudigital/portal/internal/infra/catalogcache"
	"github.com/edudigital/portal/internal/infra/config"
	"github.com/edudigital/portal/internal/infra/gemini"
	"github.com/edudigital/portal/internal/infra/inventoryrepo"
	"github.com/edudigital/portal/internal/infra/openlibrary"
	"github.com/edudigital/portal/internal/infra/scheduler"
	"github.com/edudigital/portal/internal/infra/sessionstore"
	"github.com/edudigital/portal/internal/infra/storage"
	"github.com/edudigital/portal/internal/infra/youtube"
)

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		MaxInputBytes: cfg.Summary.MaxInputBytes,
		MaxKeywords:   cfg.Summary.MaxKeywords,
	}
}

func provideAssistantConfig(cfg *config.Config) assistant.Config {
	return assistant.Config{
		MaxDocumentBytes: cfg.Assistant.MaxDocumentBytes,
		SessionTTL:       cfg.Assistant.SessionTTL,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideCatalogConfig(cfg *config.Config) catalog.Config {
	return catalog.Config{
		CacheTTL:          cfg.Catalog.Cache.TTL,
		SnapshotObjectKey: cfg.Refresh.ObjectKey,
	}
}

func provideAuthRepository(cfg *config.Config, logger *slog.Logger) auth.Repository {
	fallback := adminrepo.NewMemoryRepository()
	pool, ok := openPostgres(cfg.Auth.Postgres, "auth", logger)
	if !ok {
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo, err := adminrepo.NewPostgresRepository(ctx, pool)
	if err != nil {
		logger.Error("failed to prepare admin table, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("auth postgres repository enabled")
	return repo
}

// provideAuthService seeds the configured admin accounts before serving.
func provideAuthService(cfg *config.Config, authCfg auth.Config, repo auth.Repository, logger *slog.Logger) (auth.Service, error) {
	svc := auth.NewService(authCfg, repo, logger)
	seeds := make([]auth.Seed, 0, len(cfg.Auth.Admins))
	for _, admin := range cfg.Auth.Admins {
		seeds = append(seeds, auth.Seed{
			Username:     admin.Username,
			DisplayName:  admin.DisplayName,
			PasswordHash: admin.PasswordHash,
			Password:     admin.Password,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.EnsureAdmins(ctx, seeds); err != nil {
		return nil, fmt.Errorf("seed admins: %w", err)
	}
	return svc, nil
}

func provideInventoryRepository(cfg *config.Config, logger *slog.Logger) (inventory.Repository, error) {
	switch cfg.Inventory.Driver {
	case config.DriverPostgres:
		pool, ok := openPostgres(cfg.Inventory.Postgres, "inventory", logger)
		if !ok {
			return inventoryrepo.NewMemoryRepository(), nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		repo, err := inventoryrepo.NewPostgresRepository(ctx, pool)
		if err != nil {
			logger.Error("failed to prepare inventory table, using memory repository", "error", err)
			pool.Close()
			return inventoryrepo.NewMemoryRepository(), nil
		}
		logger.Info("inventory postgres repository enabled")
		return repo, nil
	case config.DriverSQLite:
		repo, err := inventoryrepo.OpenSQLiteRepository(cfg.Inventory.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open inventory sqlite: %w", err)
		}
		logger.Info("inventory sqlite repository enabled", "path", cfg.Inventory.SQLite.Path)
		return repo, nil
	default:
		logger.Info("inventory driver is memory, entries are lost on restart")
		return inventoryrepo.NewMemoryRepository(), nil
	}
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) assistant.Store {
	if cfg.Assistant.Valkey.Enabled {
		if client, ok := openValkey(cfg.Assistant.Valkey, "assistant", logger); ok {
			return sessionstore.NewValkeyStore(client, "assistant", cfg.Assistant.SessionTTL)
		}
	}
	return sessionstore.NewMemoryStore(cfg.Assistant.SessionTTL)
}

func provideVideoSearcher(cfg *config.Config, logger *slog.Logger) (catalog.VideoSearcher, error) {
	yt := cfg.Catalog.YouTube
	if strings.TrimSpace(yt.APIKey) == "" {
		logger.Warn("youtube api key not set, video sections will be empty")
		return youtube.Unconfigured{}, nil
	}
	client, err := youtube.NewClient(yt.APIKey, yt.BaseURL, yt.RequestsPerSecond, yt.Burst, cfg.Catalog.Timeout)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideBookSearcher(cfg *config.Config) catalog.BookSearcher {
	return openlibrary.NewClient(cfg.Catalog.OpenLibrary.BaseURL, cfg.Catalog.Timeout)
}

func provideArchiveSearcher(cfg *config.Config) catalog.ArchiveSearcher {
	return archiveorg.NewClient(cfg.Catalog.Archive.BaseURL, cfg.Catalog.Timeout)
}

// provideGenerator returns a nil Generator when no key is set; the news
// section then serves its fallback articles.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (catalog.Generator, error) {
	g := cfg.Catalog.Gemini
	if strings.TrimSpace(g.APIKey) == "" {
		logger.Warn("gemini api key not set, news will use fallback articles")
		return nil, nil
	}
	client, err := gemini.NewClient(g.APIKey, g.BaseURL, g.Model, cfg.Catalog.Timeout)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideCatalogCache(cfg *config.Config, logger *slog.Logger) catalog.Cache {
	if cfg.Catalog.Cache.Valkey.Enabled {
		if client, ok := openValkey(cfg.Catalog.Cache.Valkey, "catalog", logger); ok {
			return catalogcache.NewValkeyCache(client, "catalog")
		}
	}
	return catalogcache.NewMemoryCache()
}

func provideBlobStore(cfg *config.Config, logger *slog.Logger) (catalog.BlobStore, error) {
	if cfg.Storage.Driver != config.DriverS3 {
		return storage.NewMemoryStorage(), nil
	}
	s3 := cfg.Storage.S3
	store, err := storage.NewS3Storage(s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.Bucket, s3.Region, logger)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	logger.Info("s3 snapshot storage enabled", "bucket", s3.Bucket)
	return store, nil
}

func provideInventoryReader(svc inventory.Service) catalog.InventoryReader {
	return svc
}

func provideRefreshScheduler(cfg *config.Config, svc catalog.Service, logger *slog.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New("video-snapshot", cfg.Refresh.Schedule, func(ctx context.Context) error {
		snapshot, err := svc.RefreshVideoSnapshot(ctx)
		if err != nil {
			return err
		}
		logger.Info("video snapshot published", "categories", len(snapshot.Categories), "key", cfg.Refresh.ObjectKey)
		return nil
	}, logger)
}

func openPostgres(pg config.PostgresConfig, name string, logger *slog.Logger) (*pgxpool.Pool, bool) {
	dsn := strings.TrimSpace(pg.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repository", "store", name)
		return nil, false
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "store", name, "error", err)
		return nil, false
	}
	if pg.MaxConns > 0 {
		poolConfig.MaxConns = pg.MaxConns
	}
	if pg.MinConns > 0 {
		poolConfig.MinConns = pg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "store", name, "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "store", name, "error", err)
		pool.Close()
		return nil, false
	}
	return pool, true
}

func openValkey(vc config.ValkeyConfig, name string, logger *slog.Logger) (valkey.Client, bool) {
	opt, err := buildValkeyOptions(vc.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory", "store", name, "error", err)
		return nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory", "store", name, "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory", "store", name, "error", err)
		client.Close()
		return nil, false
	}
	logger.Info("valkey store enabled", "store", name, "addr", vc.Addr)
	return client, true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
