package wheel

import (
	"context"
	"iter"
	"math"
	"time"
)

// Easing Функция сглаживания на отрезке [0, 1]
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

// EaseInOutCubic Плавный разгон и торможение
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

const DefaultFPS = 60

// maxFrames Больше кадров таймлайн не выдает, интервал между кадрами растет
const maxFrames = 1 << 16

// Timeline Эталонный драйвер анимации: угол от From до To за Duration.
// Используется в симуляциях и тестах, рендеринг не входит.
type Timeline struct {
	From     float64
	To       float64
	Duration time.Duration
	FPS      int
	Easing   Easing
}

// NewTimeline Таймлайн от 0 до цели плана с длительностью плана.
// Длительность сверх диапазона time.Duration обрезается.
func NewTimeline(p Plan) Timeline {
	ms := math.Min(p.DurationMs, float64(math.MaxInt64/int64(time.Millisecond)))
	return Timeline{
		To:       p.Target,
		Duration: time.Duration(ms) * time.Millisecond,
		FPS:      DefaultFPS,
		Easing:   EaseInOutCubic,
	}
}

func (t Timeline) frameCount() int {
	fps := t.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	frames := math.Ceil(t.Duration.Seconds() * float64(fps))
	if frames > maxFrames {
		return maxFrames
	}
	if frames < 1 {
		return 1
	}
	return int(frames)
}

func (t Timeline) interval() time.Duration {
	d := t.Duration / time.Duration(t.frameCount())
	if d <= 0 {
		return time.Millisecond
	}
	return d
}

// Frames Значения угла по кадрам. Последний кадр всегда ровно To.
func (t Timeline) Frames() iter.Seq[float64] {
	ease := t.Easing
	if ease == nil {
		ease = EaseInOutCubic
	}
	n := t.frameCount()

	return func(yield func(float64) bool) {
		for i := 1; i <= n; i++ {
			if i == n {
				yield(t.To)
				return
			}
			progress := ease(float64(i) / float64(n))
			if !yield(t.From + (t.To-t.From)*progress) {
				return
			}
		}
	}
}

// Play отправляет кадры в out с реальным темпом и закрывает канал после последнего кадра.
// При отмене контекста канал не закрывается: закрытие означает завершение спина.
func (t Timeline) Play(ctx context.Context, out chan<- float64) {
	ticker := time.NewTicker(t.interval())
	defer ticker.Stop()

	for v := range t.Frames() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		select {
		case <-ctx.Done():
			return
		case out <- v:
		}
	}
	close(out)
}

// Push отправляет все кадры без задержек, закрытие канала как в Play
func (t Timeline) Push(ctx context.Context, out chan<- float64) {
	for v := range t.Frames() {
		select {
		case <-ctx.Done():
			return
		case out <- v:
		}
	}
	close(out)
}
