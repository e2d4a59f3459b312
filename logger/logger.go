// Package logger provides leveled logging for FutureCast with a console (stderr or syslog)
// backend and a file backend that always records at DEBUG.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/futurecast/futurecast/config"
	"github.com/op/go-logging"
)

const (
	moduleName  = "futurecast"
	logFileName = "futurecast.log"
	timeFormat  = "2006/01/02 15:04:05"
)

var (
	// Usable before InitLogger: go-logging falls back to its stderr default backend.
	logger  = logging.MustGetLogger(moduleName)
	logFile *os.File
)

// ParseLevel maps a configured log level onto a go-logging level.
func ParseLevel(level config.LogLevel) (logging.Level, error) {
	switch level {
	case config.Debug:
		return logging.DEBUG, nil
	case config.Info:
		return logging.INFO, nil
	case config.Notice:
		return logging.NOTICE, nil
	case config.Warn:
		return logging.WARNING, nil
	case config.Error:
		return logging.ERROR, nil
	}
	return logging.INFO, fmt.Errorf("unknown log level: %s", level)
}

// InitLogger installs the console and file backends. The console uses level, the file
// backend keeps everything from DEBUG up.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger(moduleName)
	backends := make([]logging.Backend, 0, 2)

	if consoleBackend := initDefaultBackend(); consoleBackend != nil {
		leveled := logging.AddModuleLevel(consoleBackend)
		leveled.SetLevel(level, moduleName)
		backends = append(backends, leveled)
	}

	if fileBackend := initFileBackend(); fileBackend != nil {
		leveled := logging.AddModuleLevel(fileBackend)
		leveled.SetLevel(logging.DEBUG, moduleName)
		backends = append(backends, leveled)
	}

	newLogger.SetBackend(logging.MultiLogger(backends...))
	logger = newLogger
}

func initDefaultBackend() logging.Backend {
	var backend logging.Backend
	includeTime := false

	if runtime.GOOS == "windows" {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = true
	} else if syslogBackend, err := logging.NewSyslogBackend(""); err != nil {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = os.Getppid() > 0
	} else {
		backend = syslogBackend
	}

	return logging.NewBackendFormatter(backend, newFormatter(includeTime))
}

func initFileBackend() logging.Backend {
	logDir := config.GetLogFolder()
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	backend := logging.NewLogBackend(file, "", 0)
	return logging.NewBackendFormatter(backend, newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// CloseLogger closes the log file. Call it on shutdown.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Notice(args ...any) {
	logger.Notice(args...)
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
