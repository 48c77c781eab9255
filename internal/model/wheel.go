package model

import (
	"fortune_wheel/pkg/wheel"

	"github.com/google/uuid"
)

// WheelDefinition Описание колеса, хранится в БД или берется из config.yaml
type WheelDefinition struct {
	ID           int64
	Name         string
	Rewards      []wheel.Reward
	Colors       []string
	InnerRadius  float64
	OuterRadius  float64
	PaddingAngle float64
	DurationMs   float64
	KnobSize     float64
}

// Config Геометрия колеса для движка
func (d WheelDefinition) Config() wheel.Config {
	return wheel.Config{
		Rewards:      d.Rewards,
		Colors:       d.Colors,
		InnerRadius:  d.InnerRadius,
		OuterRadius:  d.OuterRadius,
		PaddingAngle: d.PaddingAngle,
	}
}

type WheelLayout struct {
	WheelID        int64
	Name           string
	AngleBySegment float64
	AngleOffset    float64
	DurationMs     float64
	KnobSize       float64
	Segments       []wheel.Segment
}

type SpinStart struct {
	WheelID    int64
	Winner     *int
	DurationMs float64
	Direction  wheel.Direction
}

type SpinPlan struct {
	SpinID     uuid.UUID
	WheelID    int64
	Winner     int
	Target     float64
	DurationMs float64
	Direction  wheel.Direction
}

type SpinTick struct {
	WheelID int64
	Angle   float64
}

// KnobState Отклонение язычка на текущем кадре
type KnobState struct {
	Deflection float64
	Settled    bool
	Ticks      int
}

type SpinComplete struct {
	WheelID int64
	Angle   float64
}

// SpinOutcome Результат спина: выигрышный приз и его индекс
type SpinOutcome struct {
	SpinID     uuid.UUID
	WheelID    int64
	Index      int
	Reward     wheel.Reward
	Planned    int
	FinalAngle float64
	Matched    bool
	Frames     int
}

// SpinStats Счетчики спинов с момента запуска
type SpinStats struct {
	Sessions   int
	Started    int
	Settled    int
	Mismatched int
	Active     int
}

// Spin Текущий спин игрока: идентификатор и цикл состояний колеса
type Spin struct {
	ID      uuid.UUID
	Session *wheel.Session
}
