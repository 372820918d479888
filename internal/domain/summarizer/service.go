package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/edudigital/portal/pkg/errors"
	"github.com/edudigital/portal/pkg/metrics"
)

// Service exposes summarization capabilities.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
	StreamSummary(ctx context.Context, req Request) (<-chan StreamChunk, error)
}

type service struct {
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService is a wire provider for the summarizer domain.
func NewService(cfg Config, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{cfg: cfg, metrics: m, logger: logger.With("component", "summarizer.service")}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	if err := s.validate(req); err != nil {
		return Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	start := time.Now()
	sentences, passthrough := summarize(req.Text)
	keywords := Keywords(req.Text, s.cfg.MaxKeywords)
	s.metrics.ObserveSummary(passthrough)

	elapsed := time.Since(start)
	s.logger.Debug("summary computed",
		"inputBytes", len(req.Text),
		"sentences", len(sentences),
		"passthrough", passthrough,
		"elapsed", elapsed,
	)

	return Response{
		Sentences:   sentences,
		Keywords:    nonNil(keywords),
		Passthrough: passthrough,
		DurationMs:  elapsed.Milliseconds(),
	}, nil
}

func (s *service) StreamSummary(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	sentences, passthrough := summarize(req.Text)
	keywords := Keywords(req.Text, s.cfg.MaxKeywords)
	s.metrics.ObserveSummary(passthrough)

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		for i, sentence := range sentences {
			select {
			case <-ctx.Done():
				s.logger.Debug("summary stream cancelled", "sent", i)
				return
			case out <- StreamChunk{Index: i, Sentence: sentence}:
			}
		}
		select {
		case <-ctx.Done():
		case out <- StreamChunk{Index: len(sentences), Completed: true, Keywords: nonNil(keywords)}:
		}
	}()

	return out, nil
}

func (s *service) validate(req Request) error {
	if strings.TrimSpace(normalizeWhitespace(req.Text)) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	if s.cfg.MaxInputBytes > 0 && len(req.Text) > s.cfg.MaxInputBytes {
		return apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("text exceeds %d bytes", s.cfg.MaxInputBytes), nil)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
