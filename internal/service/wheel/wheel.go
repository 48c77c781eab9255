package wheel

import (
	"context"
	"fmt"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/wheel"

	"go.uber.org/zap"
)

// definition Колесо из хранилища вместе с его геометрией
func (s *serv) definition(ctx context.Context, wheelID int64) (*model.WheelDefinition, wheel.Geometry, error) {
	def, err := s.wheelRepo.Get(ctx, wheelID)
	if err != nil {
		return nil, wheel.Geometry{}, err
	}
	g, err := def.Config().Validate()
	if err != nil {
		return nil, wheel.Geometry{}, fmt.Errorf("wheel %d: %w", wheelID, err)
	}
	return def, g, nil
}

func (s *serv) ListWheels(ctx context.Context) ([]model.WheelDefinition, error) {
	return s.wheelRepo.List(ctx)
}

// CreateWheel Проверяет разметку и сохраняет колесо в одной транзакции с призами
func (s *serv) CreateWheel(ctx context.Context, def model.WheelDefinition) (int64, error) {
	if def.DurationMs == 0 {
		def.DurationMs = wheel.DefaultDurationMs
	}
	if err := wheel.CheckDuration(def.DurationMs); err != nil {
		return 0, err
	}
	if def.InnerRadius == 0 {
		def.InnerRadius = wheel.DefaultInnerRadius
	}
	if _, err := wheel.Layout(def.Config()); err != nil {
		return 0, err
	}

	var id int64
	err := s.inTx(ctx, func(txCtx context.Context) error {
		var err error
		id, err = s.wheelRepo.Create(txCtx, def)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("wheel created", zap.Int64("wheel_id", id), zap.Int("segments", len(def.Rewards)))
	return id, nil
}

func (s *serv) Layout(ctx context.Context, wheelID int64) (*model.WheelLayout, error) {
	def, g, err := s.definition(ctx, wheelID)
	if err != nil {
		return nil, err
	}

	segments, err := wheel.Layout(def.Config())
	if err != nil {
		return nil, err
	}

	return &model.WheelLayout{
		WheelID:        def.ID,
		Name:           def.Name,
		AngleBySegment: g.AngleBySegment(),
		AngleOffset:    g.AngleOffset(),
		DurationMs:     def.DurationMs,
		KnobSize:       def.KnobSize,
		Segments:       segments,
	}, nil
}

// Bounce Отклонение язычка для произвольного угла, без сессии
func (s *serv) Bounce(ctx context.Context, wheelID int64, angle float64) (float64, error) {
	_, g, err := s.definition(ctx, wheelID)
	if err != nil {
		return 0, err
	}
	return g.Bounce(angle), nil
}
