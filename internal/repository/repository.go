package repository

import (
	"context"
	"errors"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/wheel"
)

var ErrWheelNotFound = errors.New("wheel not found")

// WheelRepository Хранилище описаний колес. Результаты спинов не хранятся.
type WheelRepository interface {
	Create(ctx context.Context, def model.WheelDefinition) (int64, error)
	Get(ctx context.Context, id int64) (*model.WheelDefinition, error)
	List(ctx context.Context) ([]model.WheelDefinition, error)
}

// SessionKey Спин одного игрока на одном колесе
type SessionKey struct {
	PlayerID int
	WheelID  int64
}

// SpinStateRepository Текущие спины в памяти процесса
type SpinStateRepository interface {
	// Do выполняет fn над сессией под блокировкой, создавая ее при необходимости
	Do(key SessionKey, g wheel.Geometry, fn func(spin *model.Spin) error) error
	Stats() model.SpinStats
}
