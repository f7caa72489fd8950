package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/skyscape/assets"
	"github.com/milk9111/skyscape/background"
	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
	"github.com/milk9111/skyscape/prefabs"
)

type SimulateOptions struct {
	Logger *zap.Logger
	Tour   string
	Frames int
	Seed   uint64
	Width  float64
	Height float64
	TPS    int
}

type Summary struct {
	Frames    int
	Started   int
	Restarted int
	Finished  int
	Final     component.BackgroundTransition
}

// Simulate plays a tour against a background on a simulated clock. Assets are
// fully loaded before the first frame so runs with the same seed repeat.
func Simulate(ctx context.Context, opts SimulateOptions) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Frames <= 0 {
		return Summary{}, fmt.Errorf("simulate: frames must be positive, got %d", opts.Frames)
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = baseWidth, baseHeight
	}

	settings, err := loadSceneSettings()
	if err != nil {
		return Summary{}, err
	}
	tour, err := prefabs.LoadTour(opts.Tour)
	if err != nil {
		return Summary{}, err
	}
	batch, err := preload(ctx, logger)
	if err != nil {
		return Summary{}, err
	}

	frameTime := time.Second / time.Duration(opts.TPS)
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	frame := 0
	var summary Summary

	bg := background.New(background.Options{
		Logger:   logger,
		Now:      func() time.Time { return now },
		Seed:     opts.Seed,
		Settings: &settings,
		OnEvent: func(evt ecs.Event) {
			data, ok := evt.Data.(component.TransitionEvent)
			if !ok {
				return
			}
			switch evt.Type {
			case ecs.EventTransitionStarted:
				summary.Started++
			case ecs.EventTransitionRestarted:
				summary.Restarted++
			case ecs.EventTransitionFinished:
				summary.Finished++
			}
			logger.Info(evt.Type,
				zap.Int("frame", frame),
				zap.Duration("at", now.Sub(start)),
				zap.Stringer("from", data.From),
				zap.Stringer("to", data.To),
			)
		},
	})
	if err := bg.Mount(opts.Width, opts.Height, batch); err != nil {
		return Summary{}, err
	}
	defer bg.Unmount()

	for frame = 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		bg.SetPage(tour.PageAt(now.Sub(start)))
		if err := bg.Update(); err != nil {
			return summary, err
		}
		now = now.Add(frameTime)
	}

	summary.Frames = opts.Frames
	summary.Final = bg.Transition()
	return summary, nil
}

// preload waits for every asset and replays the results on a closed channel.
func preload(ctx context.Context, logger *zap.Logger) (assets.Batch, error) {
	loader := &assets.Loader{Logger: logger}
	batch, err := loader.Start(ctx)
	if err != nil {
		return assets.Batch{}, err
	}
	var results []assets.Result
	for res := range batch.Results {
		results = append(results, res)
	}
	ch := make(chan assets.Result, len(results))
	for _, res := range results {
		ch <- res
	}
	close(ch)
	batch.Results = ch
	return batch, nil
}
