package env

import (
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/pkg/logger"
	"os"
	"strconv"
	"strings"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logModeEnvName  = "LOG_MODE"
	logDirEnvName   = "LOG_DIR"
	logFileEnvName  = "LOG_FILE"

	appName = "fortune_wheel"
)

type logConfig struct {
	cfg logger.Config
}

// NewLogConfig Все переменные необязательные, по умолчанию dev режим и уровень info
func NewLogConfig() (config.LogConfig, error) {
	cfg := logger.Config{
		Mode:  logger.Dev,
		Level: "info",
		App:   appName,
		Dir:   os.Getenv(logDirEnvName),
	}

	if level := os.Getenv(logLevelEnvName); len(level) > 0 {
		cfg.Level = level
	}

	switch mode := strings.ToLower(os.Getenv(logModeEnvName)); mode {
	case "", "dev":
	case "prod":
		cfg.Mode = logger.Prod
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}

	if file := os.Getenv(logFileEnvName); len(file) > 0 {
		enabled, err := strconv.ParseBool(file)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", logFileEnvName, err)
		}
		cfg.File = enabled
	}

	return &logConfig{cfg: cfg}, nil
}

func (l *logConfig) Logger() *logger.Config {
	cfg := l.cfg
	return &cfg
}
