package wheel

import (
	"math"
	"sort"
)

// KnobDeflection Максимальное отклонение язычка в градусах
const KnobDeflection = 35.0

const knobSnap = 0.0001

// Опорные точки отклонения язычка по позиции внутри сегмента.
// 0 и 1 - граница сегмента, 0.5 - центр.
var (
	knobInput  = []float64{0, knobSnap, 0.5, 1 - knobSnap, 1}
	knobOutput = []float64{0, -KnobDeflection, 0, KnobDeflection, 0}
)

// PositionInSegment Позиция указателя внутри сегмента в [0, 1)
func (g Geometry) PositionInSegment(liveAngle float64) float64 {
	m := math.Mod(liveAngle-g.angleOffset, g.angleBySegment)
	if m < 0 {
		m += g.angleBySegment
	}
	pos := m / g.angleBySegment
	if pos >= 1 {
		return 0
	}
	return pos
}

// Bounce Отклонение язычка для текущего угла. В центре сегмента 0,
// у границы до ±35° с разными знаками по разные стороны границы.
func (g Geometry) Bounce(liveAngle float64) float64 {
	if math.IsNaN(liveAngle) || math.IsInf(liveAngle, 0) {
		return 0
	}
	return interpolate(g.PositionInSegment(liveAngle), knobInput, knobOutput)
}

// interpolate Кусочно-линейная интерполяция с ограничением по краям
func interpolate(x float64, in, out []float64) float64 {
	if x <= in[0] {
		return out[0]
	}
	last := len(in) - 1
	if x >= in[last] {
		return out[last]
	}

	i := sort.SearchFloat64s(in, x)
	if in[i] == x {
		return out[i]
	}
	x0, x1 := in[i-1], in[i]
	y0, y1 := out[i-1], out[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
