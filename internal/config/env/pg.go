package env

import (
	"fortune_wheel/internal/config"
	"os"
)

const (
	dsnName = "PG_DSN"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig Пустой PG_DSN не ошибка: сервис работает с колесами в памяти
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) Enabled() bool {
	return len(cfg.dsn) > 0
}
