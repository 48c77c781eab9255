package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelWheelID = "wheel_id"
	labelResult  = "result"

	ResultMatched  = "matched"
	ResultMismatch = "mismatch"
)

// Имена метрик: wheel_<name>, метка wheel_id

var (
	spinsStarted = newCounter("wheel_spins_started_total", "Запущено спинов", labelWheelID)
	spinsSettled = newCounter("wheel_spins_settled_total", "Завершено спинов", labelWheelID, labelResult)
	activeSpins  = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wheel_active_spins",
		Help: "Спины в состоянии Spinning",
	}, []string{labelWheelID})
	spinTicks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wheel_spin_ticks",
		Help:    "Кадров от драйвера за спин",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{labelWheelID})
)

func newCounter(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
}

func wheelLabel(id int64) string {
	return strconv.FormatInt(id, 10)
}

func SpinStarted(wheelID int64) {
	spinsStarted.WithLabelValues(wheelLabel(wheelID)).Inc()
	activeSpins.WithLabelValues(wheelLabel(wheelID)).Inc()
}

// SpinSettled Итог спина. ticks - сколько кадров прислал драйвер.
func SpinSettled(wheelID int64, matched bool, ticks int) {
	result := ResultMatched
	if !matched {
		result = ResultMismatch
	}
	id := wheelLabel(wheelID)
	spinsSettled.WithLabelValues(id, result).Inc()
	activeSpins.WithLabelValues(id).Dec()
	spinTicks.WithLabelValues(id).Observe(float64(ticks))
}
