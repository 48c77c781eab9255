package converter

import (
	"fmt"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/wheel"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func ToRewardDTO(r wheel.Reward) dto.Reward {
	res := dto.Reward{
		Kind:    string(r.Kind),
		Value:   r.Value,
		Initial: r.Initial(),
	}
	if !r.Amount.IsZero() {
		res.Amount = r.Amount.String()
	}
	return res
}

func ToReward(r dto.Reward) (wheel.Reward, error) {
	kind := wheel.RewardKind(r.Kind)
	switch kind {
	case "":
		kind = wheel.RewardText
	case wheel.RewardText, wheel.RewardImage:
	default:
		return wheel.Reward{}, fmt.Errorf("%w: unknown reward kind %q", wheel.ErrInvalidConfiguration, r.Kind)
	}

	amount := decimal.Zero
	if r.Amount != "" {
		var err error
		amount, err = decimal.NewFromString(r.Amount)
		if err != nil {
			return wheel.Reward{}, fmt.Errorf("%w: invalid amount %q", wheel.ErrInvalidConfiguration, r.Amount)
		}
	}

	return wheel.Reward{Kind: kind, Value: r.Value, Amount: amount}, nil
}

func ToLayoutResponse(l model.WheelLayout) dto.LayoutResponse {
	return dto.LayoutResponse{
		WheelID:        l.WheelID,
		Name:           l.Name,
		AngleBySegment: l.AngleBySegment,
		AngleOffset:    l.AngleOffset,
		DurationMs:     l.DurationMs,
		KnobSize:       l.KnobSize,
		Segments: lo.Map(l.Segments, func(s wheel.Segment, _ int) dto.Segment {
			return dto.Segment{
				Index:         s.Index,
				Reward:        ToRewardDTO(s.Value),
				Color:         s.Color,
				StartAngle:    s.StartAngle,
				EndAngle:      s.EndAngle,
				ArcStart:      s.ArcStart,
				ArcEnd:        s.ArcEnd,
				Centroid:      dto.Point{X: s.Centroid.X, Y: s.Centroid.Y},
				LabelRotation: s.LabelRotation,
			}
		}),
	}
}

func ToWheelDTO(def model.WheelDefinition) dto.Wheel {
	padding := def.PaddingAngle
	return dto.Wheel{
		ID:           def.ID,
		Name:         def.Name,
		Rewards:      lo.Map(def.Rewards, func(r wheel.Reward, _ int) dto.Reward { return ToRewardDTO(r) }),
		Colors:       def.Colors,
		InnerRadius:  def.InnerRadius,
		OuterRadius:  def.OuterRadius,
		PaddingAngle: &padding,
		DurationMs:   def.DurationMs,
		KnobSize:     def.KnobSize,
	}
}

// ToWheelDefinition Без padding_angle берется зазор по умолчанию
func ToWheelDefinition(w dto.Wheel) (model.WheelDefinition, error) {
	rewards := make([]wheel.Reward, 0, len(w.Rewards))
	for i, r := range w.Rewards {
		reward, err := ToReward(r)
		if err != nil {
			return model.WheelDefinition{}, fmt.Errorf("reward %d: %w", i, err)
		}
		rewards = append(rewards, reward)
	}

	padding := wheel.DefaultPaddingAngle
	if w.PaddingAngle != nil {
		padding = *w.PaddingAngle
	}

	return model.WheelDefinition{
		Name:         w.Name,
		Rewards:      rewards,
		Colors:       w.Colors,
		InnerRadius:  w.InnerRadius,
		OuterRadius:  w.OuterRadius,
		PaddingAngle: padding,
		DurationMs:   w.DurationMs,
		KnobSize:     w.KnobSize,
	}, nil
}

func ToSpinStart(wheelID int64, req dto.SpinRequest) (model.SpinStart, error) {
	dir, err := wheel.ParseDirection(req.Direction)
	if err != nil {
		return model.SpinStart{}, err
	}
	return model.SpinStart{
		WheelID:    wheelID,
		Winner:     req.Winner,
		DurationMs: req.DurationMs,
		Direction:  dir,
	}, nil
}

func ToSpinResponse(p model.SpinPlan) dto.SpinResponse {
	return dto.SpinResponse{
		SpinID:     p.SpinID.String(),
		WheelID:    p.WheelID,
		Winner:     p.Winner,
		Target:     p.Target,
		DurationMs: p.DurationMs,
		Direction:  p.Direction.String(),
	}
}

func ToKnobResponse(k model.KnobState) dto.KnobResponse {
	return dto.KnobResponse{
		Deflection: k.Deflection,
		Settled:    k.Settled,
		Ticks:      k.Ticks,
	}
}

func ToOutcomeResponse(o model.SpinOutcome) dto.OutcomeResponse {
	return dto.OutcomeResponse{
		SpinID:     o.SpinID.String(),
		WheelID:    o.WheelID,
		Index:      o.Index,
		Reward:     ToRewardDTO(o.Reward),
		Planned:    o.Planned,
		FinalAngle: o.FinalAngle,
		Matched:    o.Matched,
		Frames:     o.Frames,
	}
}

func ToStatsResponse(s model.SpinStats) dto.StatsResponse {
	return dto.StatsResponse{
		Sessions:   s.Sessions,
		Started:    s.Started,
		Settled:    s.Settled,
		Mismatched: s.Mismatched,
		Active:     s.Active,
	}
}
