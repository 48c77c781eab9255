package wheel

import (
	"context"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/wheel"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Simulate Полный цикл спина на эталонном таймлайне без задержек.
// Сессии игроков не трогает.
func (s *serv) Simulate(ctx context.Context, req model.SpinStart) (*model.SpinOutcome, error) {
	def, g, err := s.definition(ctx, req.WheelID)
	if err != nil {
		return nil, err
	}

	duration, err := spinDuration(req.DurationMs, def.DurationMs)
	if err != nil {
		return nil, err
	}

	winner, err := s.selector.Choose(req.Winner, g.SegmentCount())
	if err != nil {
		return nil, err
	}

	session := wheel.NewSession(g)
	plan, err := session.Start(wheel.SpinRequest{Winner: &winner, DurationMs: duration, Direction: req.Direction})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan float64, wheel.DefaultFPS)
	go wheel.NewTimeline(plan).Push(ctx, frames)

	out, err := session.Follow(ctx, frames, nil)
	if session.State() != wheel.StateSettled {
		return nil, err
	}

	result := toOutcome(uuid.New(), def, out, session.Ticks())
	s.log.Debug("spin simulated",
		zap.Int64("wheel_id", def.ID),
		zap.Int("winner", winner),
		zap.Int("resolved", result.Index),
		zap.Int("frames", result.Frames),
	)
	return result, err
}
