package wheel

import (
	"context"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/wheel"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type serv struct {
	wheelRepo repository.WheelRepository
	stateRepo repository.SpinStateRepository
	selector  *wheel.Selector
	txManager trm.Manager
	log       *zap.Logger
}

// NewWheelService Сервис колеса фортуны.
// txManager может быть nil, если колеса хранятся в памяти.
func NewWheelService(
	wheelRepo repository.WheelRepository,
	stateRepo repository.SpinStateRepository,
	selector *wheel.Selector,
	txManager trm.Manager,
	log *zap.Logger,
) service.WheelService {
	if selector == nil {
		selector = wheel.NewRandomSelector()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		wheelRepo: wheelRepo,
		stateRepo: stateRepo,
		selector:  selector,
		txManager: txManager,
		log:       log,
	}
}

func (s *serv) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.Do(ctx, fn)
}
