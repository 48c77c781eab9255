package wheel

import (
	"fmt"
	"math"
	"strings"
)

// Direction Направление вращения колеса
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// ParseDirection Пустая строка означает вращение по часовой стрелке
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cw", "clockwise":
		return Clockwise, nil
	case "ccw", "counterclockwise", "counter-clockwise":
		return CounterClockwise, nil
	}
	return Clockwise, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfiguration, s)
}

// SpinRequest Параметры одного спина. Winner == nil - победитель выбирается случайно.
type SpinRequest struct {
	Winner     *int
	DurationMs float64
	Direction  Direction
}

// Plan Запланированный спин: куда должен докрутить аниматор
type Plan struct {
	Winner     int
	DurationMs float64
	Direction  Direction
	Target     float64
}

// CheckDuration Длительность спина должна быть в (0, MaxDurationMs].
// Planner сам верхнюю границу не проверяет.
func CheckDuration(durationMs float64) error {
	if math.IsNaN(durationMs) || durationMs <= 0 || durationMs > MaxDurationMs {
		return fmt.Errorf("%w: %v ms not in (0, %d]", ErrInvalidDuration, durationMs, MaxDurationMs)
	}
	return nil
}

// PlanSpin Целевой угол для вращения по часовой стрелке.
// Количество полных оборотов округляется вверх до целых секунд,
// поэтому цель одинакова для 1 мс и 1000 мс и растет ступенями по 360° на каждую начатую секунду.
func (g Geometry) PlanSpin(winner int, durationMs float64) (float64, error) {
	p, err := g.plan(winner, durationMs, Clockwise)
	if err != nil {
		return 0, err
	}
	return p.Target, nil
}

// Plan считает целевой угол для запроса. Winner в запросе обязателен,
// случайный выбор делает Selector. Цель квантуется по целым секундам, как в PlanSpin.
func (g Geometry) Plan(req SpinRequest) (Plan, error) {
	if req.Winner == nil {
		return Plan{}, fmt.Errorf("%w: winner is not chosen", ErrOutOfRange)
	}
	return g.plan(*req.Winner, req.DurationMs, req.Direction)
}

func (g Geometry) plan(winner int, durationMs float64, dir Direction) (Plan, error) {
	if !g.validIndex(winner) {
		return Plan{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, winner, g.segmentCount)
	}
	if math.IsNaN(durationMs) || math.IsInf(durationMs, 0) || durationMs <= 0 {
		return Plan{}, fmt.Errorf("%w: got %v ms", ErrInvalidDuration, durationMs)
	}

	// Полных оборотов столько, сколько начатых секунд.
	// Дробный оборот сдвинул бы остановку в соседний сегмент.
	turns := math.Ceil(durationMs / 1000)
	shift := float64(winner) * g.angleBySegment

	target := BaseOvershoot - shift + FullTurn*turns
	if dir == CounterClockwise {
		target = -(BaseOvershoot + shift + FullTurn*turns)
	}

	return Plan{
		Winner:     winner,
		DurationMs: durationMs,
		Direction:  dir,
		Target:     target,
	}, nil
}
