package wheel

import (
	"context"
	"errors"
	"fortune_wheel/internal/metrics"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/wheel"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func sessionKey(ctx context.Context, wheelID int64) (repository.SessionKey, error) {
	playerID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return repository.SessionKey{}, service.ErrNoPlayer
	}
	return repository.SessionKey{PlayerID: playerID, WheelID: wheelID}, nil
}

// StartSpin выбирает победителя (явного или случайного) и планирует спин.
// Пока предыдущий спин игрока на этом колесе не завершен, новый не начинается.
func (s *serv) StartSpin(ctx context.Context, req model.SpinStart) (*model.SpinPlan, error) {
	key, err := sessionKey(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	def, g, err := s.definition(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	duration, err := spinDuration(req.DurationMs, def.DurationMs)
	if err != nil {
		return nil, err
	}

	var plan *model.SpinPlan
	err = s.stateRepo.Do(key, g, func(spin *model.Spin) error {
		// Проверяем до выбора победителя, чтобы не тратить значения генератора
		if spin.Session.State() == wheel.StateSpinning {
			return wheel.ErrSpinInProgress
		}

		winner, err := s.selector.Choose(req.Winner, g.SegmentCount())
		if err != nil {
			return err
		}

		p, err := spin.Session.Start(wheel.SpinRequest{
			Winner:     &winner,
			DurationMs: duration,
			Direction:  req.Direction,
		})
		if err != nil {
			return err
		}

		spin.ID = uuid.New()
		plan = &model.SpinPlan{
			SpinID:     spin.ID,
			WheelID:    req.WheelID,
			Winner:     p.Winner,
			Target:     p.Target,
			DurationMs: p.DurationMs,
			Direction:  p.Direction,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SpinStarted(req.WheelID)
	s.log.Info("spin started",
		zap.Stringer("spin_id", plan.SpinID),
		zap.Int("player_id", key.PlayerID),
		zap.Int64("wheel_id", req.WheelID),
		zap.Int("winner", plan.Winner),
		zap.Bool("random", req.Winner == nil),
		zap.Float64("target", plan.Target),
	)

	return plan, nil
}

// Tick Текущий угол от драйвера анимации
func (s *serv) Tick(ctx context.Context, req model.SpinTick) (*model.KnobState, error) {
	key, err := sessionKey(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	_, g, err := s.definition(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	var state *model.KnobState
	err = s.stateRepo.Do(key, g, func(spin *model.Spin) error {
		deflection, err := spin.Session.Observe(req.Angle)
		if err != nil {
			return err
		}
		state = &model.KnobState{
			Deflection: deflection,
			Settled:    spin.Session.Settled(),
			Ticks:      spin.Session.Ticks(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

// CompleteSpin Драйвер закончил анимацию на угле req.Angle.
// Несовпадение с запланированным победителем - нарушение контракта драйвера:
// итог возвращается как есть вместе с ошибкой.
func (s *serv) CompleteSpin(ctx context.Context, req model.SpinComplete) (*model.SpinOutcome, error) {
	key, err := sessionKey(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	def, g, err := s.definition(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	var result *model.SpinOutcome
	err = s.stateRepo.Do(key, g, func(spin *model.Spin) error {
		out, err := spin.Session.Complete(req.Angle)
		if err != nil && !errors.Is(err, wheel.ErrTargetMismatch) {
			return err
		}
		result = toOutcome(spin.ID, def, out, spin.Session.Ticks())
		return err
	})
	if result == nil {
		return nil, err
	}

	metrics.SpinSettled(req.WheelID, result.Matched, result.Frames)

	if err != nil {
		s.log.Error("driver contract violation",
			zap.Stringer("spin_id", result.SpinID),
			zap.Int("player_id", key.PlayerID),
			zap.Int64("wheel_id", req.WheelID),
			zap.Int("winner", result.Planned),
			zap.Int("resolved", result.Index),
			zap.Float64("final_angle", req.Angle),
			zap.Error(err),
		)
		return result, err
	}

	s.log.Info("spin settled",
		zap.Stringer("spin_id", result.SpinID),
		zap.Int("player_id", key.PlayerID),
		zap.Int64("wheel_id", req.WheelID),
		zap.Int("index", result.Index),
		zap.String("reward", result.Reward.Value),
	)
	return result, nil
}

// spinDuration Длительность из запроса или колеса, не больше wheel.MaxDurationMs
func spinDuration(requested, fallback float64) (float64, error) {
	duration := requested
	if duration == 0 {
		duration = fallback
	}
	if err := wheel.CheckDuration(duration); err != nil {
		return 0, err
	}
	return duration, nil
}

func toOutcome(spinID uuid.UUID, def *model.WheelDefinition, out wheel.Outcome, frames int) *model.SpinOutcome {
	result := &model.SpinOutcome{
		SpinID:     spinID,
		WheelID:    def.ID,
		Index:      out.Resolved,
		Planned:    out.Plan.Winner,
		FinalAngle: out.FinalAngle,
		Matched:    out.Matched,
		Frames:     frames,
	}
	if out.Resolved < len(def.Rewards) {
		result.Reward = def.Rewards[out.Resolved]
	}
	return result
}

func (s *serv) Stats() model.SpinStats {
	return s.stateRepo.Stats()
}
