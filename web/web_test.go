package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	t.Setenv("FUTURECAST_SESSION_SECRET", "router-test-secret")
	s := NewServer(nil)
	defer s.cancel()

	engine, err := s.initRouter()
	require.NoError(t, err)

	serve := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := serve("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
	assert.Empty(t, rec.Header().Get("Content-Encoding"))

	rec = serve("/dashboard")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusUnauthorized, serve("/api/forecasts/1/unlock").Code)
	assert.Equal(t, http.StatusNotFound, serve("/no-such-page").Code)
}

func TestStartTaskWithoutCron(t *testing.T) {
	t.Setenv("FUTURECAST_REFRESH_CRON", "")
	s := NewServer(nil)
	defer s.cancel()

	require.NoError(t, s.startTask())
	assert.Nil(t, s.seedService)
}
