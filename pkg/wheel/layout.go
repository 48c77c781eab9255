package wheel

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	// DefaultInnerRadius Внутренний радиус по умолчанию
	DefaultInnerRadius = 100.0
	// DefaultPaddingAngle Зазор между сегментами (0.01 рад) в градусах
	DefaultPaddingAngle = 0.01 * 180 / math.Pi
)

// DefaultColors Палитра, если цвета не заданы
var DefaultColors = []string{
	"#E07026", "#E8C22E", "#ABC937", "#4F991D", "#22AFD3",
	"#5858D0", "#7B48C8", "#D843B9", "#E23B80", "#D82B2B",
}

type RewardKind string

const (
	RewardText  RewardKind = "text"
	RewardImage RewardKind = "image"
)

// Reward Приз на сегменте. Value - текст или ссылка на картинку.
type Reward struct {
	Kind   RewardKind
	Value  string
	Amount decimal.Decimal
}

// Initial Первая буква текстового приза в верхнем регистре, для картинки пусто
func (r Reward) Initial() string {
	if r.Kind == RewardImage {
		return ""
	}
	s := strings.TrimSpace(r.Value)
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(first))
}

// Config Конфигурация колеса. Количество сегментов равно количеству призов.
type Config struct {
	Rewards      []Reward
	Colors       []string
	InnerRadius  float64
	OuterRadius  float64
	PaddingAngle float64 // в градусах
}

type Point struct {
	X float64
	Y float64
}

// Segment Один сектор колеса.
// StartAngle/EndAngle - границы слота, ArcStart/ArcEnd - нарисованная дуга с учетом зазора.
type Segment struct {
	Index         int
	Value         Reward
	Color         string
	StartAngle    float64
	EndAngle      float64
	ArcStart      float64
	ArcEnd        float64
	Centroid      Point
	LabelRotation float64
}

// Span Угловая ширина нарисованной дуги
func (s Segment) Span() float64 {
	return s.ArcEnd - s.ArcStart
}

// Validate проверяет конфигурацию и возвращает разметку колеса
func (c Config) Validate() (Geometry, error) {
	g, err := NewGeometry(len(c.Rewards))
	if err != nil {
		return Geometry{}, err
	}
	if c.InnerRadius < 0 || c.InnerRadius >= c.OuterRadius {
		return Geometry{}, fmt.Errorf("%w: inner radius %.2f must be in [0, outer radius %.2f)",
			ErrInvalidConfiguration, c.InnerRadius, c.OuterRadius)
	}
	if c.PaddingAngle < 0 || c.PaddingAngle >= g.AngleBySegment() {
		return Geometry{}, fmt.Errorf("%w: padding angle %.4f must be in [0, %.4f)",
			ErrInvalidConfiguration, c.PaddingAngle, g.AngleBySegment())
	}
	return g, nil
}

// Layout разбивает список призов на равные сегменты.
// Порядок сегментов совпадает с порядком призов, индекс сегмента - индекс приза.
func Layout(cfg Config) ([]Segment, error) {
	g, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	colors := cfg.Colors
	if len(colors) == 0 {
		colors = DefaultColors
	}

	// Центроид на середине радиуса, как у d3 arc.centroid
	r := (cfg.InnerRadius + cfg.OuterRadius) / 2
	a := g.AngleBySegment()
	pad := cfg.PaddingAngle / 2

	return lo.Map(cfg.Rewards, func(reward Reward, i int) Segment {
		start := float64(i) * a
		end := start + a
		mid := (start + end) / 2 * math.Pi / 180

		return Segment{
			Index:      i,
			Value:      reward,
			Color:      colors[i%len(colors)],
			StartAngle: start,
			EndAngle:   end,
			ArcStart:   start + pad,
			ArcEnd:     end - pad,
			Centroid: Point{
				X: r * math.Sin(mid),
				Y: -r * math.Cos(mid),
			},
			LabelRotation: start + g.AngleOffset(),
		}
	}), nil
}
