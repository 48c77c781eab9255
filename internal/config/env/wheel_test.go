package env_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fortune_wheel/internal/config/env"
	"fortune_wheel/pkg/wheel"
)

const sampleConfig = `
wheel:
  name: promo
  rewards:
    - {kind: text, value: "%10", amount: "10.50"}
    - {value: "free spin"}
    - {kind: image, value: "https://cdn.example.com/gift.png"}
  colors: ["#111111", "#222222"]
  outer_radius: 180
  duration_ms: 8000
`

func TestParseWheelConfig(t *testing.T) {
	cfg, err := env.ParseWheelConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := cfg.Definition()

	if def.Name != "promo" || len(def.Rewards) != 3 {
		t.Fatalf("unexpected definition %+v", def)
	}
	if def.Rewards[1].Kind != wheel.RewardText {
		t.Errorf("expected default kind text, got %q", def.Rewards[1].Kind)
	}
	if def.Rewards[2].Kind != wheel.RewardImage {
		t.Errorf("expected image kind, got %q", def.Rewards[2].Kind)
	}
	if def.Rewards[0].Amount.String() != "10.5" {
		t.Errorf("unexpected amount %s", def.Rewards[0].Amount)
	}
	if def.InnerRadius != wheel.DefaultInnerRadius {
		t.Errorf("expected default inner radius, got %v", def.InnerRadius)
	}
	if def.PaddingAngle != wheel.DefaultPaddingAngle {
		t.Errorf("expected default padding, got %v", def.PaddingAngle)
	}
	if def.DurationMs != 8000 || def.KnobSize != 20 {
		t.Errorf("unexpected duration %v / knob %v", def.DurationMs, def.KnobSize)
	}
}

func TestParseWheelConfig_SizeAndZeroPadding(t *testing.T) {
	cfg, err := env.ParseWheelConfig([]byte(`
wheel:
  rewards: [{value: a}, {value: b}]
  size: 400
  padding_angle: 0
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := cfg.Definition()
	if def.OuterRadius != 200 {
		t.Errorf("expected outer radius from size, got %v", def.OuterRadius)
	}
	if def.PaddingAngle != 0 {
		t.Errorf("expected explicit zero padding, got %v", def.PaddingAngle)
	}
	if def.DurationMs != wheel.DefaultDurationMs {
		t.Errorf("expected default duration, got %v", def.DurationMs)
	}
}

func TestParseWheelConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "no rewards", data: "wheel: {outer_radius: 180}", want: wheel.ErrInvalidConfiguration},
		{name: "no radius", data: "wheel: {rewards: [{value: a}]}", want: wheel.ErrInvalidConfiguration},
		{name: "negative duration", data: "wheel: {rewards: [{value: a}], outer_radius: 180, duration_ms: -1}", want: wheel.ErrInvalidDuration},
		{name: "too long duration", data: "wheel: {rewards: [{value: a}], outer_radius: 180, duration_ms: 600000}", want: wheel.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.ParseWheelConfig([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := env.ParseWheelConfig([]byte("wheel: {rewards: [{kind: video, value: a}], outer_radius: 180}")); err == nil {
		t.Fatalf("expected error for unknown reward kind")
	}
}

func TestNewWheelConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := env.NewWheelConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Definition().ID != 1 {
		t.Fatalf("default wheel must have id 1, got %d", cfg.Definition().ID)
	}

	if _, err := env.NewWheelConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWheelConfigPath(t *testing.T) {
	t.Setenv("WHEEL_CONFIG_PATH", "")
	if got := env.WheelConfigPath(); got != "config.yaml" {
		t.Fatalf("expected default path, got %s", got)
	}
	t.Setenv("WHEEL_CONFIG_PATH", "/etc/wheel.yaml")
	if got := env.WheelConfigPath(); got != "/etc/wheel.yaml" {
		t.Fatalf("unexpected path %s", got)
	}
}
