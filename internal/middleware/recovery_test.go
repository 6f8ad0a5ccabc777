package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/straviz/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
)

func TestPanicRecovery(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("things can always get worse")
	})

	req := httptest.NewRequest(http.MethodGet, "/review/2024", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		PanicRecovery(metricsManager)(next).ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPanicRecovery_NilMetricsManager(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("no metrics, still no crash")
	})

	req := httptest.NewRequest(http.MethodGet, "/review/2024", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		PanicRecovery(nil)(next).ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
