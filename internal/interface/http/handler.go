package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/domain/assistant"
	"github.com/edudigital/portal/internal/domain/auth"
	"github.com/edudigital/portal/internal/domain/catalog"
	"github.com/edudigital/portal/internal/domain/inventory"
	"github.com/edudigital/portal/internal/domain/summarizer"
	apperrors "github.com/edudigital/portal/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	summarizerSvc summarizer.Service
	assistantSvc  assistant.Service
	authSvc       auth.Service
	inventorySvc  inventory.Service
	catalogSvc    catalog.Service
	maxUpload     int64
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(summarySvc summarizer.Service, assistantSvc assistant.Service, authSvc auth.Service, inventorySvc inventory.Service, catalogSvc catalog.Service, assistantCfg assistant.Config, logger *slog.Logger) *Handler {
	return &Handler{
		summarizerSvc: summarySvc,
		assistantSvc:  assistantSvc,
		authSvc:       authSvc,
		inventorySvc:  inventorySvc,
		catalogSvc:    catalogSvc,
		maxUpload:     assistantCfg.MaxDocumentBytes,
		logger:        logger.With("component", "http.handler"),
	}
}

// Summarize handles the sync summarization endpoint.
func (h *Handler) Summarize(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.summarizerSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, summaryError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SummarizeStream streams summary sentences using Server-Sent Events.
func (h *Handler) SummarizeStream(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stream, err := h.summarizerSvc.StreamSummary(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, summaryError(err))
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	for chunk := range stream {
		payload, err := json.Marshal(chunk)
		if err != nil {
			h.logger.Error("marshal chunk failed", "error", err)
			continue
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	}
}

func summaryError(err error) *HTTPError {
	status := http.StatusInternalServerError
	if apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		status = http.StatusBadRequest
	}
	return NewHTTPError(status, "summarize_failed", errMessage(err), err)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
