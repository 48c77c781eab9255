package wheel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/repository/memory_wheel_repo"
	"fortune_wheel/internal/repository/spin_state_repo"
	"fortune_wheel/internal/service"
	wheelServ "fortune_wheel/internal/service/wheel"
	"fortune_wheel/pkg/wheel"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixedRNG struct{ val int }

func (r fixedRNG) IntN(n int) int { return r.val % n }

func defaultWheel() model.WheelDefinition {
	return model.WheelDefinition{
		ID:   1,
		Name: "default",
		Rewards: []wheel.Reward{
			{Kind: wheel.RewardText, Value: "10%"},
			{Kind: wheel.RewardText, Value: "free spin"},
			{Kind: wheel.RewardImage, Value: "https://cdn.example.com/gift.png"},
			{Kind: wheel.RewardText, Value: "nothing"},
		},
		InnerRadius:  100,
		OuterRadius:  180,
		PaddingAngle: wheel.DefaultPaddingAngle,
		DurationMs:   10000,
		KnobSize:     20,
	}
}

func newService(t *testing.T, rngVal int) (service.WheelService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	serv := wheelServ.NewWheelService(
		memory_wheel_repo.NewWheelRepository(defaultWheel()),
		spin_state_repo.NewSpinStateRepository(),
		wheel.NewSelector(fixedRNG{val: rngVal}),
		nil,
		zap.New(core),
	)
	return serv, logs
}

func playerCtx(id int) context.Context {
	return middleware.WithUserID(context.Background(), id)
}

func TestStartSpin_ExplicitWinner(t *testing.T) {
	serv, _ := newService(t, 0)
	winner := 1

	plan, err := serv.StartSpin(playerCtx(1), model.SpinStart{WheelID: 1, Winner: &winner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Winner != 1 || plan.Target != 3875 || plan.DurationMs != 10000 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if plan.SpinID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected spin id")
	}

	if _, err := serv.StartSpin(playerCtx(1), model.SpinStart{WheelID: 1}); !errors.Is(err, wheel.ErrSpinInProgress) {
		t.Fatalf("expected ErrSpinInProgress, got %v", err)
	}

	// другой игрок крутит независимо
	if _, err := serv.StartSpin(playerCtx(2), model.SpinStart{WheelID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStartSpin_RandomWinner(t *testing.T) {
	serv, _ := newService(t, 2)

	plan, err := serv.StartSpin(playerCtx(1), model.SpinStart{WheelID: 1, DurationMs: 3000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Winner != 2 || plan.DurationMs != 3000 {
		t.Fatalf("unexpected plan %+v", plan)
	}
}

func TestStartSpin_Errors(t *testing.T) {
	serv, _ := newService(t, 0)
	tooBig := 4

	tests := []struct {
		name string
		ctx  context.Context
		req  model.SpinStart
		want error
	}{
		{name: "no player", ctx: context.Background(), req: model.SpinStart{WheelID: 1}, want: service.ErrNoPlayer},
		{name: "unknown wheel", ctx: playerCtx(1), req: model.SpinStart{WheelID: 9}, want: repository.ErrWheelNotFound},
		{name: "winner out of range", ctx: playerCtx(1), req: model.SpinStart{WheelID: 1, Winner: &tooBig}, want: wheel.ErrOutOfRange},
		{name: "negative duration", ctx: playerCtx(1), req: model.SpinStart{WheelID: 1, DurationMs: -1}, want: wheel.ErrInvalidDuration},
		{name: "too long duration", ctx: playerCtx(1), req: model.SpinStart{WheelID: 1, DurationMs: wheel.MaxDurationMs + 1}, want: wheel.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serv.StartSpin(tt.ctx, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if stats := serv.Stats(); stats.Started != 0 {
		t.Fatalf("failed starts must not be counted, got %+v", stats)
	}
}

func TestSpinCycle(t *testing.T) {
	serv, logs := newService(t, 0)
	ctx := playerCtx(1)
	winner := 1

	if _, err := serv.Tick(ctx, model.SpinTick{WheelID: 1, Angle: 10}); !errors.Is(err, wheel.ErrNotSpinning) {
		t.Fatalf("expected ErrNotSpinning, got %v", err)
	}

	plan, err := serv.StartSpin(ctx, model.SpinStart{WheelID: 1, Winner: &winner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	knob, err := serv.Tick(ctx, model.SpinTick{WheelID: 1, Angle: 45 + 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if knob.Settled || knob.Ticks != 1 || knob.Deflection >= 0 {
		t.Fatalf("unexpected knob state %+v", knob)
	}

	out, err := serv.CompleteSpin(ctx, model.SpinComplete{WheelID: 1, Angle: plan.Target})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Matched || out.Index != 1 || out.Reward.Value != "free spin" || out.SpinID != plan.SpinID {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if logs.FilterMessage("spin settled").Len() != 1 {
		t.Fatalf("expected settle log entry")
	}

	if _, err := serv.CompleteSpin(ctx, model.SpinComplete{WheelID: 1, Angle: plan.Target}); !errors.Is(err, wheel.ErrNotSpinning) {
		t.Fatalf("expected ErrNotSpinning on second completion, got %v", err)
	}

	stats := serv.Stats()
	if stats.Started != 1 || stats.Settled != 1 || stats.Mismatched != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCompleteSpin_Mismatch(t *testing.T) {
	serv, logs := newService(t, 0)
	ctx := playerCtx(3)
	winner := 2

	plan, err := serv.StartSpin(ctx, model.SpinStart{WheelID: 1, Winner: &winner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := serv.CompleteSpin(ctx, model.SpinComplete{WheelID: 1, Angle: plan.Target + 90})
	if !errors.Is(err, wheel.ErrTargetMismatch) {
		t.Fatalf("expected ErrTargetMismatch, got %v", err)
	}
	if out == nil || out.Matched || out.Planned != 2 || out.Index != 1 {
		t.Fatalf("unexpected outcome %+v", out)
	}

	entries := logs.FilterMessage("driver contract violation").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error log entry, got %+v", entries)
	}
	if serv.Stats().Mismatched != 1 {
		t.Fatalf("expected mismatch to be counted")
	}

	// после несовпадения можно крутить снова
	if _, err := serv.StartSpin(ctx, model.SpinStart{WheelID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSimulate(t *testing.T) {
	serv, _ := newService(t, 3)

	for _, dir := range []wheel.Direction{wheel.Clockwise, wheel.CounterClockwise} {
		out, err := serv.Simulate(context.Background(), model.SpinStart{WheelID: 1, Direction: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Matched || out.Index != 3 || out.Frames != 600 {
			t.Fatalf("%s: unexpected outcome %+v", dir, out)
		}
	}

	if stats := serv.Stats(); stats.Started != 0 {
		t.Fatalf("simulation must not touch player sessions, got %+v", stats)
	}
}

func TestSimulate_DurationLimit(t *testing.T) {
	serv, _ := newService(t, 0)

	for _, d := range []float64{1e9, 1e13, -1} {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		started := time.Now()
		out, err := serv.Simulate(ctx, model.SpinStart{WheelID: 1, DurationMs: d})
		cancel()

		if !errors.Is(err, wheel.ErrInvalidDuration) || out != nil {
			t.Fatalf("duration %v: expected ErrInvalidDuration, got %v (%+v)", d, err, out)
		}
		if elapsed := time.Since(started); elapsed > 100*time.Millisecond {
			t.Fatalf("duration %v: rejection took %v", d, elapsed)
		}
	}

	out, err := serv.Simulate(context.Background(), model.SpinStart{WheelID: 1, DurationMs: wheel.MaxDurationMs})
	if err != nil || !out.Matched || out.Frames != wheel.MaxDurationMs/1000*wheel.DefaultFPS {
		t.Fatalf("longest allowed spin must settle, got %+v (%v)", out, err)
	}
}

func TestCreateWheelAndLayout(t *testing.T) {
	serv, _ := newService(t, 0)
	ctx := context.Background()

	def := model.WheelDefinition{
		Name: "promo",
		Rewards: []wheel.Reward{
			{Kind: wheel.RewardText, Value: "a"},
			{Kind: wheel.RewardText, Value: "b"},
			{Kind: wheel.RewardText, Value: "c"},
		},
		Colors:      []string{"#000", "#fff"},
		OuterRadius: 150,
	}

	id, err := serv.CreateWheel(ctx, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected id 2, got %d", id)
	}

	layout, err := serv.Layout(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(layout.Segments) != 3 || layout.AngleBySegment != 120 || layout.AngleOffset != 60 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if layout.DurationMs != wheel.DefaultDurationMs {
		t.Fatalf("expected default duration, got %v", layout.DurationMs)
	}
	if layout.Segments[2].Color != "#000" {
		t.Fatalf("expected cycled color, got %s", layout.Segments[2].Color)
	}

	list, err := serv.ListWheels(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 wheels, got %d (%v)", len(list), err)
	}

	bad := def
	bad.OuterRadius = 50
	if _, err := serv.CreateWheel(ctx, bad); !errors.Is(err, wheel.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}

	slow := def
	slow.DurationMs = wheel.MaxDurationMs * 2
	if _, err := serv.CreateWheel(ctx, slow); !errors.Is(err, wheel.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestBounce(t *testing.T) {
	serv, _ := newService(t, 0)
	ctx := context.Background()

	center, err := serv.Bounce(ctx, 1, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if center != 0 {
		t.Fatalf("expected neutral knob at segment center, got %v", center)
	}

	near, err := serv.Bounce(ctx, 1, 46)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if near >= 0 {
		t.Fatalf("expected negative deflection right after boundary, got %v", near)
	}

	if _, err := serv.Bounce(ctx, 5, 0); !errors.Is(err, repository.ErrWheelNotFound) {
		t.Fatalf("expected ErrWheelNotFound, got %v", err)
	}
}
