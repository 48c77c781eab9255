package wheel

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid wheel configuration")
	ErrOutOfRange           = errors.New("winner index out of range")
	ErrInvalidDuration      = errors.New("spin duration must be positive")
	ErrSpinInProgress       = errors.New("spin already in progress")
	ErrNotSpinning          = errors.New("wheel is not spinning")
	// ErrTargetMismatch драйвер анимации остановил колесо не на запланированном сегменте
	ErrTargetMismatch = errors.New("final angle does not match planned winner")
	ErrNoFrames       = errors.New("driver closed the stream without frames")
)
