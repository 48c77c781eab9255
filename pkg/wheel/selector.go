package wheel

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RNG Источник случайных чисел, IntN возвращает значение из [0, n)
type RNG interface {
	IntN(n int) int
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// Selector выбирает выигрышный сегмент, если победитель не задан явно.
// Безопасен для конкурентного использования.
type Selector struct {
	mu  sync.Mutex
	rng RNG
}

func NewSelector(rng RNG) *Selector {
	if rng == nil {
		rng = globalRNG{}
	}
	return &Selector{rng: rng}
}

// NewRandomSelector Селектор на глобальном генераторе math/rand/v2
func NewRandomSelector() *Selector {
	return NewSelector(globalRNG{})
}

// NewSeededSelector Воспроизводимый селектор (тесты, симуляции)
func NewSeededSelector(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, 0)))
}

// Pick возвращает равномерно распределенный индекс из [0, segmentCount)
func (s *Selector) Pick(segmentCount int) (int, error) {
	if segmentCount < 1 {
		return 0, fmt.Errorf("%w: segment count %d", ErrInvalidConfiguration, segmentCount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(segmentCount), nil
}

// Choose берет явно заданного победителя или выбирает случайного, если он не задан
func (s *Selector) Choose(winner *int, segmentCount int) (int, error) {
	if winner == nil {
		return s.Pick(segmentCount)
	}
	if *winner < 0 || *winner >= segmentCount {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, *winner, segmentCount)
	}
	return *winner, nil
}
