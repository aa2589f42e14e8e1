package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"polargrow-server/internal/dataset"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// DataDir is the absolute path to the directory holding the per-school
	// environment CSV files and the growth workbook. Set via DATA_DIR
	// (relative paths are resolved against the process working directory
	// at startup).
	DataDir string

	// ECTargets maps group label to target EC level. Defaults to the
	// study's configured treatment levels; EC_TARGETS overrides the whole
	// mapping ("송도고=1.0,하늘고=2.0,...").
	ECTargets dataset.ECTargets
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "data"
	}
	dataDir, err = filepath.Abs(dataDir)
	if err != nil {
		return Config{}, fmt.Errorf("DATA_DIR %q: %w", dataDir, err)
	}

	targets := dataset.DefaultECTargets()
	if s := strings.TrimSpace(os.Getenv("EC_TARGETS")); s != "" {
		targets, err = dataset.ParseECTargets(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EC_TARGETS: %w", err)
		}
	}

	return Config{
		AppEnv:    appEnv,
		LogLevel:  level,
		HTTPAddr:  httpAddr,
		DataDir:   dataDir,
		ECTargets: targets,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
