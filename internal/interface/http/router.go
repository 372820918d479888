package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/infra/config"
	"github.com/edudigital/portal/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger, m),
		corsMiddleware(cfg.HTTP.CORS.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.POST("/summaries", handler.Summarize)
		api.POST("/summaries/stream", handler.SummarizeStream)

		sessions := api.Group("/assistant/sessions")
		sessions.POST("", handler.CreateSession)
		sessions.GET("/:id", handler.GetSession)
		sessions.DELETE("/:id", handler.DeleteSession)
		sessions.POST("/:id/documents", handler.UploadDocument)
		sessions.POST("/:id/messages", handler.SendMessage)
		sessions.POST("/:id/reset", handler.ResetSession)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.GET("/me", authMiddleware(handler.authSvc), handler.Me)

		inv := api.Group("/inventory")
		inv.GET("", handler.ListInventory)
		inv.GET("/search", handler.SearchInventory)
		inv.GET("/:id", handler.GetInventory)
		admin := inv.Group("", authMiddleware(handler.authSvc))
		admin.POST("", handler.CreateInventory)
		admin.PUT("/:id", handler.UpdateInventory)
		admin.DELETE("/:id", handler.DeleteInventory)

		cat := api.Group("/catalog")
		cat.GET("/library", handler.Library)
		cat.GET("/cinema", handler.Cinema)
		cat.GET("/history", handler.History)
		cat.GET("/courses", handler.Courses)
		cat.GET("/archives", handler.Archives)
		cat.GET("/news", handler.News)
		cat.GET("/videos/snapshot", handler.VideoSnapshot)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
