package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(UnlockRequests.WithLabelValues("denied"))
	UnlockRequests.WithLabelValues("denied").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(UnlockRequests.WithLabelValues("denied")))
}

func TestHandler(t *testing.T) {
	SeededForecasts.WithLabelValues("sample").Add(4)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `futurecast_seeded_forecasts_total{source="sample"}`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
