package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("FUTURECAST_PORT", "")
	t.Setenv("FUTURECAST_DEFAULT_COUNTRY", "")
	t.Setenv("FUTURECAST_GENERATOR_DELAY", "")
	t.Setenv("FUTURECAST_DEBUG", "")
	t.Setenv("FUTURECAST_LOG_LEVEL", "")
	t.Setenv("FUTURECAST_FORECAST_YEAR", "")

	assert.Equal(t, 8080, GetPort())
	assert.Equal(t, "Nigeria", GetDefaultCountry())
	assert.Equal(t, time.Second, GetGeneratorDelay())
	assert.Equal(t, Info, GetLogLevel())
	assert.Equal(t, 2026, GetForecastYear())
	assert.Equal(t, "futurecast", GetName())
	assert.NotEmpty(t, GetVersion())
}

func TestOverrides(t *testing.T) {
	t.Setenv("FUTURECAST_PORT", "9000")
	t.Setenv("FUTURECAST_GENERATOR_DELAY", "250ms")
	t.Setenv("FUTURECAST_DEBUG", "true")
	t.Setenv("FUTURECAST_DB_FOLDER", "")

	assert.Equal(t, 9000, GetPort())
	assert.Equal(t, 250*time.Millisecond, GetGeneratorDelay())
	assert.Equal(t, Debug, GetLogLevel())
	assert.Equal(t, "db/futurecast.db", GetDBPath())
}

func TestGeminiAPIKey(t *testing.T) {
	t.Setenv("FUTURECAST_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	assert.Empty(t, GetGeminiAPIKey())

	t.Setenv("GEMINI_API_KEY", "shared")
	assert.Equal(t, "shared", GetGeminiAPIKey())

	t.Setenv("FUTURECAST_GEMINI_API_KEY", "own")
	assert.Equal(t, "own", GetGeminiAPIKey())
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("FUTURECAST_PORT", "eighty")
	t.Setenv("FUTURECAST_GENERATOR_DELAY", "-1s")

	assert.Equal(t, 8080, GetPort())
	assert.Equal(t, time.Second, GetGeneratorDelay())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FUTURECAST_TEST_ONLY_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FUTURECAST_TEST_ONLY_KEY") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("FUTURECAST_TEST_ONLY_KEY"))

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestChainConfig(t *testing.T) {
	t.Setenv("FUTURECAST_FORECAST_READER", "")
	t.Setenv("FUTURECAST_STAKING_ADDRESS", "0x4058a46b47ccda82f3c7d63beb8547437ef1a41a")

	cfg := GetChainConfig()
	assert.Equal(t, "forecasts", cfg.ReaderMethod)
	assert.Equal(t, "0x4058a46b47ccda82f3c7d63beb8547437ef1a41a", cfg.StakingAddress)
}
