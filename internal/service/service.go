package service

import (
	"context"
	"errors"
	"fortune_wheel/internal/model"
)

var ErrNoPlayer = errors.New("player id not found in context")

type WheelService interface {
	ListWheels(ctx context.Context) ([]model.WheelDefinition, error)
	CreateWheel(ctx context.Context, def model.WheelDefinition) (int64, error)
	Layout(ctx context.Context, wheelID int64) (*model.WheelLayout, error)
	Bounce(ctx context.Context, wheelID int64, angle float64) (float64, error)

	StartSpin(ctx context.Context, req model.SpinStart) (*model.SpinPlan, error)
	Tick(ctx context.Context, req model.SpinTick) (*model.KnobState, error)
	CompleteSpin(ctx context.Context, req model.SpinComplete) (*model.SpinOutcome, error)
	Simulate(ctx context.Context, req model.SpinStart) (*model.SpinOutcome, error)

	Stats() model.SpinStats
}
