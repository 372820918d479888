package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandlerExposesRecordedSeries(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/v1/catalog/news", http.StatusOK, 20*time.Millisecond)
	m.ObserveUpstream("youtube", errors.New("quota"))
	m.ObserveSummary(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	require.Contains(t, text, `edudigital_http_requests_total{method="GET",route="/api/v1/catalog/news",status="200"} 1`)
	require.Contains(t, text, `edudigital_upstream_calls_total{outcome="error",source="youtube"} 1`)
	require.Contains(t, text, `edudigital_summaries_total{mode="passthrough"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "", http.StatusOK, time.Millisecond)
		m.ObserveUpstream("openlibrary", nil)
		m.ObserveSummary(false)
	})
	require.NotNil(t, m.Handler())
}
