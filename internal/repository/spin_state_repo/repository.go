package spin_state_repo

import (
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/pkg/wheel"
	"sync"
)

// StateRepo Реализация хранилища текущих спинов в памяти.
// Одна сессия на пару игрок/колесо, история не сохраняется.
type StateRepo struct {
	mtx   sync.RWMutex
	spins map[repository.SessionKey]*model.Spin
	stats model.SpinStats
}

// NewSpinStateRepository Конструктор пустого хранилища
func NewSpinStateRepository() *StateRepo {
	return &StateRepo{
		spins: make(map[repository.SessionKey]*model.Spin),
	}
}

// Do выполняет fn над сессией под блокировкой.
// Если колесо поменялось (другая геометрия), а спин не идет, сессия создается заново.
func (r *StateRepo) Do(key repository.SessionKey, g wheel.Geometry, fn func(spin *model.Spin) error) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	spin, ok := r.spins[key]
	if !ok || (spin.Session.Geometry() != g && spin.Session.State() != wheel.StateSpinning) {
		spin = &model.Spin{Session: wheel.NewSession(g)}
		r.spins[key] = spin
	}

	before := spin.Session.State()
	err := fn(spin)
	r.track(before, spin.Session)

	return err
}

// track Обновление счетчиков по переходу состояния
func (r *StateRepo) track(before wheel.State, s *wheel.Session) {
	after := s.State()
	switch {
	case before != wheel.StateSpinning && after == wheel.StateSpinning:
		r.stats.Started++
		r.stats.Active++
	case before == wheel.StateSpinning && after == wheel.StateSettled:
		r.stats.Settled++
		r.stats.Active--
		if out, ok := s.LastOutcome(); ok && !out.Matched {
			r.stats.Mismatched++
		}
	}
}

// Stats Копия счетчиков
func (r *StateRepo) Stats() model.SpinStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	stats := r.stats
	stats.Sessions = len(r.spins)
	return stats
}
