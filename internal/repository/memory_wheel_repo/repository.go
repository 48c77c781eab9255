package memory_wheel_repo

import (
	"context"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// repo Колеса в памяти процесса, когда PG_DSN не задан
type repo struct {
	mtx    sync.RWMutex
	wheels map[int64]model.WheelDefinition
	nextID int64
}

// NewWheelRepository Хранилище с начальными колесами (обычно колесо из config.yaml)
func NewWheelRepository(seed ...model.WheelDefinition) repository.WheelRepository {
	r := &repo{
		wheels: make(map[int64]model.WheelDefinition, len(seed)),
		nextID: 1,
	}
	for _, def := range seed {
		if def.ID == 0 {
			def.ID = r.nextID
		}
		r.wheels[def.ID] = def
		if def.ID >= r.nextID {
			r.nextID = def.ID + 1
		}
	}
	return r
}

func (r *repo) Create(_ context.Context, def model.WheelDefinition) (int64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	def.ID = r.nextID
	r.nextID++
	r.wheels[def.ID] = def
	return def.ID, nil
}

func (r *repo) Get(_ context.Context, id int64) (*model.WheelDefinition, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	def, ok := r.wheels[id]
	if !ok {
		return nil, repository.ErrWheelNotFound
	}
	return &def, nil
}

// List Колеса по возрастанию id
func (r *repo) List(_ context.Context) ([]model.WheelDefinition, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	list := lo.Values(r.wheels)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
