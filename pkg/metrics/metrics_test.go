package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/cards/:code", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for _, code := range []string{"A", "B"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cards/"+code, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/cards/:code", "200")))
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordAuthorization("metered", "granted")
	m.RecordGeneration("names", "success")
	m.RecordReport("xlsx")
	m.RecordLLMRequest("deepseek", true, 2*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CardAuthorizations.WithLabelValues("metered", "granted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NameGenerations.WithLabelValues("names", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsRendered.WithLabelValues("xlsx")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.LLMRequestDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordAuthorization("open", "granted")
		m.RecordGeneration("chat", "denied")
		m.RecordReport("html")
		m.RecordLLMRequest("gemini", false, time.Second)
	})
}
