package config

import (
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/logger"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// WheelConfig Колесо по умолчанию из config.yaml
type WheelConfig interface {
	Definition() model.WheelDefinition
}

type HTTPConfig interface {
	Address() string
}

// PGConfig DSN может быть пустым, тогда колеса хранятся в памяти
type PGConfig interface {
	DSN() string
	Enabled() bool
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type LogConfig interface {
	Logger() *logger.Config
}
