//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/edudigital/portal/internal/bootstrap"
	"github.com/edudigital/portal/internal/domain/assistant"
	"github.com/edudigital/portal/internal/domain/catalog"
	"github.com/edudigital/portal/internal/domain/inventory"
	"github.com/edudigital/portal/internal/domain/summarizer"
	"github.com/edudigital/portal/internal/infra/config"
	"github.com/edudigital/portal/internal/infra/extract"
	httpiface "github.com/edudigital/portal/internal/interface/http"
	"github.com/edudigital/portal/pkg/logger"
	"github.com/edudigital/portal/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.New,
		provideSummaryConfig,
		provideAssistantConfig,
		provideAuthConfig,
		provideCatalogConfig,
		provideSessionStore,
		provideAuthRepository,
		provideAuthService,
		provideInventoryRepository,
		provideVideoSearcher,
		provideBookSearcher,
		provideArchiveSearcher,
		provideGenerator,
		provideInventoryReader,
		provideCatalogCache,
		provideBlobStore,
		provideRefreshScheduler,
		extract.NewExtractor,
		wire.Bind(new(assistant.Extractor), new(*extract.Extractor)),
		summarizer.NewService,
		assistant.NewService,
		inventory.NewService,
		catalog.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
