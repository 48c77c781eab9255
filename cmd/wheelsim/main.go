package main

import (
	"context"
	"flag"
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/config/env"
	"fortune_wheel/pkg/logger"
	"fortune_wheel/pkg/wheel"
	"os"
	"time"

	"go.uber.org/zap"
)

type options struct {
	segments   int
	winner     int
	durationMs float64
	seed       uint64
	ccw        bool
	fps        int
	samples    int
	realtime   bool
}

func main() {
	segments := flag.Int("segments", 8, "number of segments")
	winner := flag.Int("winner", -1, "winning segment, -1 for random")
	duration := flag.Float64("duration", wheel.DefaultDurationMs, "spin duration in ms")
	seed := flag.Uint64("seed", 0, "selector seed, 0 for random")
	ccw := flag.Bool("ccw", false, "spin counter-clockwise")
	fps := flag.Int("fps", wheel.DefaultFPS, "frames per second")
	samples := flag.Int("samples", 10, "knob deflection samples to print")
	realtime := flag.Bool("realtime", false, "play frames with real delays")
	level := flag.String("log-level", "info", "log level")
	player := flag.Int("player", 0, "print an access token for this player id and exit")
	envPath := flag.String("env", ".env", "env file with ACCESS_TOKEN and ACCESS_TOKEN_DURATION")
	flag.Parse()

	log := logger.New(&logger.Config{Mode: logger.Dev, Level: *level, App: "wheelsim"})
	defer func() { _ = log.Sync() }()

	if *player != 0 {
		if err := config.Load(*envPath); err != nil {
			log.Warn("error loading env file", zap.String("path", *envPath), zap.Error(err))
		}
		cfg, err := env.NewJWTConfig()
		if err != nil {
			log.Error("jwt config", zap.Error(err))
			os.Exit(1)
		}
		tok, err := issueToken(cfg, *player)
		if err != nil {
			log.Error("issue token", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println(tok)
		return
	}

	opts := options{
		segments:   *segments,
		winner:     *winner,
		durationMs: *duration,
		seed:       *seed,
		ccw:        *ccw,
		fps:        *fps,
		samples:    *samples,
		realtime:   *realtime,
	}

	if err := run(context.Background(), opts, log); err != nil {
		log.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *zap.Logger) error {
	if err := wheel.CheckDuration(opts.durationMs); err != nil {
		return err
	}

	g, err := wheel.NewGeometry(opts.segments)
	if err != nil {
		return err
	}

	selector := wheel.NewRandomSelector()
	if opts.seed != 0 {
		selector = wheel.NewSeededSelector(opts.seed)
	}

	var explicit *int
	if opts.winner >= 0 {
		explicit = &opts.winner
	}
	winner, err := selector.Choose(explicit, g.SegmentCount())
	if err != nil {
		return err
	}

	dir := wheel.Clockwise
	if opts.ccw {
		dir = wheel.CounterClockwise
	}

	session := wheel.NewSession(g)
	plan, err := session.Start(wheel.SpinRequest{Winner: &winner, DurationMs: opts.durationMs, Direction: dir})
	if err != nil {
		return err
	}

	fmt.Printf("segments=%d angle_by_segment=%.3f offset=%.3f\n", g.SegmentCount(), g.AngleBySegment(), g.AngleOffset())
	fmt.Printf("winner=%d direction=%s target=%.3f duration=%.0fms\n", plan.Winner, plan.Direction, plan.Target, plan.DurationMs)

	timeline := wheel.NewTimeline(plan)
	timeline.FPS = opts.fps

	frames := make(chan float64, timeline.FPS)
	if opts.realtime {
		go timeline.Play(ctx, frames)
	} else {
		go timeline.Push(ctx, frames)
	}

	// Печатаем каждый step-й кадр
	total := int(plan.DurationMs / 1000 * float64(timeline.FPS))
	step := 1
	if opts.samples > 0 && total > opts.samples {
		step = total / opts.samples
	}

	frame := 0
	started := time.Now()
	out, err := session.Follow(ctx, frames, func(angle, deflection float64) {
		if opts.samples > 0 && frame%step == 0 {
			fmt.Printf("  frame=%-5d angle=%10.3f knob=%7.3f\n", frame, angle, deflection)
		}
		frame++
	})

	log.Debug("timeline finished",
		zap.Int("frames", session.Ticks()),
		zap.Duration("elapsed", time.Since(started)),
	)

	if session.State() != wheel.StateSettled {
		return err
	}

	fmt.Printf("final=%.3f resolved=%d matched=%t\n", out.FinalAngle, out.Resolved, out.Matched)
	if err != nil {
		log.Warn("resolved segment differs from planned winner", zap.Int("planned", plan.Winner), zap.Int("resolved", out.Resolved))
	}
	return err
}
