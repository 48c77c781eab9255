package env

import (
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/wheel"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	wheelConfigPathEnvName = "WHEEL_CONFIG_PATH"
	defaultWheelConfigPath = "config.yaml"

	defaultKnobSize = 20
)

type rewardYAML struct {
	Kind   string `yaml:"kind"`
	Value  string `yaml:"value"`
	Amount string `yaml:"amount"`
}

type wheelYAML struct {
	Name         string       `yaml:"name"`
	Rewards      []rewardYAML `yaml:"rewards"`
	Colors       []string     `yaml:"colors"`
	InnerRadius  float64      `yaml:"inner_radius"`
	OuterRadius  float64      `yaml:"outer_radius"`
	Size         float64      `yaml:"size"`
	PaddingAngle *float64     `yaml:"padding_angle"`
	DurationMs   float64      `yaml:"duration_ms"`
	KnobSize     float64      `yaml:"knob_size"`
}

type fileYAML struct {
	Wheel wheelYAML `yaml:"wheel"`
}

type wheelConfig struct {
	def model.WheelDefinition
}

// WheelConfigPath Путь к конфигу колеса, по умолчанию config.yaml
func WheelConfigPath() string {
	if path := os.Getenv(wheelConfigPathEnvName); len(path) > 0 {
		return path
	}
	return defaultWheelConfigPath
}

func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}
	return ParseWheelConfig(data)
}

// ParseWheelConfig разбирает yaml и подставляет значения по умолчанию.
// Конфиг проверяется разметкой колеса, невалидный не принимается.
func ParseWheelConfig(data []byte) (config.WheelConfig, error) {
	var file fileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}
	w := file.Wheel

	rewards := make([]wheel.Reward, 0, len(w.Rewards))
	for i, r := range w.Rewards {
		reward, err := toReward(r)
		if err != nil {
			return nil, fmt.Errorf("reward %d: %w", i, err)
		}
		rewards = append(rewards, reward)
	}

	def := model.WheelDefinition{
		ID:           1,
		Name:         w.Name,
		Rewards:      rewards,
		Colors:       w.Colors,
		InnerRadius:  w.InnerRadius,
		OuterRadius:  w.OuterRadius,
		PaddingAngle: wheel.DefaultPaddingAngle,
		DurationMs:   w.DurationMs,
		KnobSize:     w.KnobSize,
	}
	if def.Name == "" {
		def.Name = "default"
	}
	if def.InnerRadius == 0 {
		def.InnerRadius = wheel.DefaultInnerRadius
	}
	if def.OuterRadius == 0 {
		def.OuterRadius = w.Size / 2
	}
	if w.PaddingAngle != nil {
		def.PaddingAngle = *w.PaddingAngle
	}
	if def.DurationMs == 0 {
		def.DurationMs = wheel.DefaultDurationMs
	}
	if def.KnobSize == 0 {
		def.KnobSize = defaultKnobSize
	}

	if err := wheel.CheckDuration(def.DurationMs); err != nil {
		return nil, fmt.Errorf("duration_ms: %w", err)
	}
	if _, err := wheel.Layout(def.Config()); err != nil {
		return nil, err
	}

	return &wheelConfig{def: def}, nil
}

func toReward(r rewardYAML) (wheel.Reward, error) {
	kind := wheel.RewardKind(r.Kind)
	switch kind {
	case "":
		kind = wheel.RewardText
	case wheel.RewardText, wheel.RewardImage:
	default:
		return wheel.Reward{}, fmt.Errorf("unknown reward kind %q", r.Kind)
	}

	amount := decimal.Zero
	if r.Amount != "" {
		var err error
		amount, err = decimal.NewFromString(r.Amount)
		if err != nil {
			return wheel.Reward{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
		}
	}

	return wheel.Reward{Kind: kind, Value: r.Value, Amount: amount}, nil
}

func (c *wheelConfig) Definition() model.WheelDefinition {
	return c.def
}
