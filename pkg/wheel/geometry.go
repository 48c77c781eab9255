package wheel

import "fmt"

const (
	// FullTurn Полный оборот колеса в градусах
	FullTurn = 360.0
	// BaseOvershoot Базовый запас вращения, чтобы указатель остановился внутри сегмента, а не на его границе
	BaseOvershoot = 365.0
	// MaxSegments При большем количестве сегментов запас в 5° выходит за пределы сегмента
	MaxSegments = 64
	// DefaultDurationMs Длительность спина по умолчанию
	DefaultDurationMs = 10000
	// MaxDurationMs Верхняя граница длительности для сервиса, конфига и симуляций
	MaxDurationMs = 60000
)

// Geometry Угловая разметка колеса из N равных сегментов.
// Не хранит состояние спина, все методы чистые.
type Geometry struct {
	segmentCount   int
	angleBySegment float64
	angleOffset    float64
}

// NewGeometry возвращает разметку для segmentCount сегментов
func NewGeometry(segmentCount int) (Geometry, error) {
	if segmentCount < 1 || segmentCount > MaxSegments {
		return Geometry{}, fmt.Errorf("%w: segment count %d not in [1, %d]", ErrInvalidConfiguration, segmentCount, MaxSegments)
	}

	angle := FullTurn / float64(segmentCount)
	return Geometry{
		segmentCount:   segmentCount,
		angleBySegment: angle,
		angleOffset:    angle / 2,
	}, nil
}

func (g Geometry) SegmentCount() int {
	return g.segmentCount
}

// AngleBySegment Угловая ширина одного сегмента
func (g Geometry) AngleBySegment() float64 {
	return g.angleBySegment
}

// AngleOffset Половина сегмента. На эту величину повернуто колесо в покое,
// чтобы указатель смотрел в центр сегмента, а не на границу.
func (g Geometry) AngleOffset() float64 {
	return g.angleOffset
}

func (g Geometry) validIndex(index int) bool {
	return index >= 0 && index < g.segmentCount
}
