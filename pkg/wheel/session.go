package wheel

import (
	"context"
	"fmt"
)

// State Состояние колеса в цикле спина
type State int

const (
	StateIdle State = iota
	StateSpinning
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateSpinning:
		return "spinning"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Outcome Итог спина
type Outcome struct {
	Plan       Plan
	FinalAngle float64
	Resolved   int
	Matched    bool
}

// Session Цикл спина одного колеса: Idle -> Spinning -> Settled.
// Не потокобезопасна, синхронизация на стороне владельца.
type Session struct {
	geometry Geometry
	state    State
	plan     Plan
	settled  bool
	ticks    int
	last     float64
	outcome  *Outcome
}

func NewSession(g Geometry) *Session {
	return &Session{geometry: g, state: StateIdle}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Geometry() Geometry {
	return s.geometry
}

// Plan Текущий (или последний) запланированный спин
func (s *Session) Plan() (Plan, bool) {
	return s.plan, s.state != StateIdle
}

// Settled Показывать ли результат. Сбрасывается каждым тиком во время спина.
func (s *Session) Settled() bool {
	return s.settled
}

// Ticks Количество значений, полученных от драйвера за текущий спин
func (s *Session) Ticks() int {
	return s.ticks
}

// LastOutcome Итог последнего завершенного спина
func (s *Session) LastOutcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Start начинает новый спин. Победитель в запросе должен быть уже выбран.
func (s *Session) Start(req SpinRequest) (Plan, error) {
	if s.state == StateSpinning {
		return Plan{}, ErrSpinInProgress
	}

	plan, err := s.geometry.Plan(req)
	if err != nil {
		return Plan{}, err
	}

	s.state = StateSpinning
	s.plan = plan
	s.settled = false
	s.ticks = 0
	s.last = 0
	s.outcome = nil
	return plan, nil
}

// Observe принимает текущее значение угла от драйвера и возвращает отклонение язычка
func (s *Session) Observe(liveAngle float64) (float64, error) {
	if s.state != StateSpinning {
		return 0, ErrNotSpinning
	}
	s.settled = false
	s.ticks++
	s.last = liveAngle
	return s.geometry.Bounce(liveAngle), nil
}

// Complete завершает спин по итоговому углу.
// Если колесо остановилось не на запланированном сегменте, итог все равно фиксируется,
// а вместе с ним возвращается ErrTargetMismatch.
func (s *Session) Complete(finalAngle float64) (Outcome, error) {
	if s.state != StateSpinning {
		return Outcome{}, ErrNotSpinning
	}

	resolved := s.geometry.Resolve(finalAngle)
	out := Outcome{
		Plan:       s.plan,
		FinalAngle: finalAngle,
		Resolved:   resolved,
		Matched:    resolved == s.plan.Winner,
	}

	s.state = StateSettled
	s.settled = true
	s.last = finalAngle
	s.outcome = &out

	if !out.Matched {
		return out, fmt.Errorf("%w: planned %d, resolved %d at %.2f",
			ErrTargetMismatch, s.plan.Winner, resolved, finalAngle)
	}
	return out, nil
}

// Follow читает значения угла из потока драйвера до закрытия канала.
// Последнее значение считается итоговым. onBounce (может быть nil) получает
// отклонение язычка на каждом кадре.
func (s *Session) Follow(ctx context.Context, frames <-chan float64, onBounce func(angle, deflection float64)) (Outcome, error) {
	if s.state != StateSpinning {
		return Outcome{}, ErrNotSpinning
	}

	received := false
	for {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case angle, ok := <-frames:
			if !ok {
				if !received {
					return Outcome{}, ErrNoFrames
				}
				return s.Complete(s.last)
			}
			received = true
			deflection, err := s.Observe(angle)
			if err != nil {
				return Outcome{}, err
			}
			if onBounce != nil {
				onBounce(angle, deflection)
			}
		}
	}
}
