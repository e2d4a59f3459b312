package database

import (
	"path/filepath"
	"testing"

	"github.com/futurecast/futurecast/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitDBMigratesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "futurecast.db")
	require.NoError(t, InitDB(dbPath))
	defer CloseDB()

	migrator := GetDB().Migrator()
	assert.True(t, migrator.HasTable(&model.Forecast{}))
	assert.True(t, migrator.HasTable(&model.StagedForecast{}))
	assert.True(t, migrator.HasTable(&model.User{}))
	assert.True(t, migrator.HasTable("forecast_staging"))
}

func TestIsNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "futurecast.db")
	require.NoError(t, InitDB(dbPath))
	defer CloseDB()

	err := GetDB().First(&model.Forecast{}, 42).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(gorm.ErrInvalidData))
}

func TestForecastDetailRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "futurecast.db")
	require.NoError(t, InitDB(dbPath))
	defer CloseDB()

	f, err := model.NewForecast(12345, "Ghana", "GDP Growth 2026", "+3.1%", model.ForecastDetail{
		Detail:     "Resilient growth.",
		Confidence: 80,
		KeyDrivers: []string{"Cocoa exports", "Gold mining"},
	})
	require.NoError(t, err)
	require.NoError(t, GetDB().Create(f).Error)

	stored := &model.Forecast{}
	require.NoError(t, GetDB().First(stored, f.Id).Error)
	detail, err := stored.Detail()
	require.NoError(t, err)
	assert.Equal(t, 80, detail.Confidence)
	assert.Equal(t, []string{"Cocoa exports", "Gold mining"}, detail.KeyDrivers)
}
