// Package config exposes the FutureCast runtime settings. Every value is read from the
// environment (optionally primed from a .env file) and falls back to a sane default.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 8080
	defaultSessionMaxAge = 120
	defaultCountry       = "Nigeria"
	defaultForecastYear  = 2026
	defaultGeneratorCmd  = "python3"
	defaultGeneratorPath = "gemini_forecast.py"
	defaultGeneratorWait = time.Second
)

// LoadEnvFile primes the process environment from a dotenv file. A missing file is not an
// error; variables already present in the environment win.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("FUTURECAST_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("FUTURECAST_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("FUTURECAST_DB_FOLDER")
	if dbFolderPath == "" {
		if IsDebug() {
			return "db"
		}
		dbFolderPath = "/etc/futurecast"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("FUTURECAST_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("FUTURECAST_LISTEN")
}

func GetPort() int {
	return envInt("FUTURECAST_PORT", defaultPort)
}

func GetCertFile() string {
	return os.Getenv("FUTURECAST_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("FUTURECAST_KEY_FILE")
}

// GetSessionSecret returns the cookie signing secret. An empty value means the caller must
// generate an ephemeral one.
func GetSessionSecret() string {
	return os.Getenv("FUTURECAST_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	return envInt("FUTURECAST_SESSION_MAX_AGE", defaultSessionMaxAge)
}

func GetDefaultCountry() string {
	return envString("FUTURECAST_DEFAULT_COUNTRY", defaultCountry)
}

func GetForecastYear() int {
	return envInt("FUTURECAST_FORECAST_YEAR", defaultForecastYear)
}

func GetGeneratorCommand() string {
	return envString("FUTURECAST_GENERATOR_CMD", defaultGeneratorCmd)
}

func GetGeneratorScript() string {
	return envString("FUTURECAST_GENERATOR_SCRIPT", defaultGeneratorPath)
}

func GetGeneratorDelay() time.Duration {
	raw := os.Getenv("FUTURECAST_GENERATOR_DELAY")
	if raw == "" {
		return defaultGeneratorWait
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return defaultGeneratorWait
	}
	return d
}

// GetGeminiAPIKey returns the key for in-process generation. When set it takes precedence
// over the external generator command.
func GetGeminiAPIKey() string {
	return envString("FUTURECAST_GEMINI_API_KEY", strings.TrimSpace(os.Getenv("GEMINI_API_KEY")))
}

func GetGeminiModel() string {
	return os.Getenv("FUTURECAST_GEMINI_MODEL")
}

// GetRefreshCron returns the cron spec for in-process regeneration, empty when disabled.
func GetRefreshCron() string {
	return os.Getenv("FUTURECAST_REFRESH_CRON")
}

// ChainConfig groups the settings needed to talk to the staking and token contracts.
type ChainConfig struct {
	RPCURL         string
	TokenAddress   string
	StakingAddress string
	ReaderMethod   string
	StakerKey      string
}

func GetChainConfig() ChainConfig {
	return ChainConfig{
		RPCURL:         os.Getenv("FUTURECAST_RPC_URL"),
		TokenAddress:   os.Getenv("FUTURECAST_TOKEN_ADDRESS"),
		StakingAddress: os.Getenv("FUTURECAST_STAKING_ADDRESS"),
		ReaderMethod:   envString("FUTURECAST_FORECAST_READER", "forecasts"),
		StakerKey:      os.Getenv("FUTURECAST_STAKER_KEY"),
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
