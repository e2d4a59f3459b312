package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/futurecast/futurecast/config"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   config.LogLevel
		want logging.Level
	}{
		{config.Debug, logging.DEBUG},
		{config.Info, logging.INFO},
		{config.Notice, logging.NOTICE},
		{config.Warn, logging.WARNING},
		{config.Error, logging.ERROR},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FUTURECAST_LOG_FOLDER", dir)

	InitLogger(logging.INFO)
	defer CloseLogger()

	Infof("seeded %d forecasts", 4)
	Debug("debug lines reach the file backend")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "seeded 4 forecasts")
	assert.Contains(t, string(data), "debug lines reach the file backend")
}
