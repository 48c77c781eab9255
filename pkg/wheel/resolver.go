package wheel

import "math"

// Resolve возвращает индекс сегмента под указателем для итогового угла поворота.
//
// Угол сначала округляется (math.Round, половина от нуля), потом берется по модулю 360.
// Остановка ровно на границе уходит в тот сегмент, куда ее сдвинуло округление.
// Для отрицательного угла (против часовой) индекс берется напрямую,
// для неотрицательного - дополнение, так как указатель проходит сегменты в обратном порядке.
func (g Geometry) Resolve(finalAngle float64) int {
	normalized := math.Abs(math.Mod(math.Round(finalAngle), FullTurn))
	passed := int(math.Floor(normalized / g.angleBySegment))

	if finalAngle < 0 {
		return passed % g.segmentCount
	}
	return (g.segmentCount - passed%g.segmentCount) % g.segmentCount
}
