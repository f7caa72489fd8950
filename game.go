package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/skyscape/assets"
	"github.com/milk9111/skyscape/background"
	"github.com/milk9111/skyscape/ecs/component"
	"github.com/milk9111/skyscape/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type GameOptions struct {
	Logger *zap.Logger
	Tour   string
	Watch  bool
	Seed   uint64
}

// Game stands in for the portfolio page: it owns the page flags and feeds
// them to the background each frame.
type Game struct {
	logger *zap.Logger
	bg     *background.Background
	cancel context.CancelFunc

	page     component.PageState
	tour     *prefabs.Tour
	tourName string
	tourAt   time.Duration
	paused   bool
	watcher  *prefabs.Watcher

	ui       *ebitenui.UI
	controls *ControlPanel
	hideUI   bool
}

func NewGame(ctx context.Context, opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	settings, err := loadSceneSettings()
	if err != nil {
		return nil, err
	}

	g := &Game{logger: logger, tourName: opts.Tour}
	if opts.Tour != "" {
		if g.tour, err = prefabs.LoadTour(opts.Tour); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	loader := &assets.Loader{Logger: logger}
	batch, err := loader.Start(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	g.cancel = cancel

	g.bg = background.New(background.Options{
		Logger:   logger,
		Seed:     opts.Seed,
		Settings: &settings,
	})
	if err := g.bg.Mount(0, 0, batch); err != nil {
		g.Close()
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(logger)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	g.controls = NewControlPanel(g)
	g.ui = g.controls.UI()
	return g, nil
}

// Close stops asset loads and the watcher and unmounts the background.
func (g *Game) Close() {
	if g == nil {
		return
	}
	if g.cancel != nil {
		g.cancel()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
	g.bg.Unmount()
}

func (g *Game) Update() error {
	g.handleKeys()
	g.pollWatcher()

	if g.tour != nil && !g.paused {
		g.tourAt += time.Second / time.Duration(ebiten.TPS())
		g.page = g.tour.PageAt(g.tourAt)
	}

	g.bg.SetPage(g.page)
	if err := g.bg.Update(); err != nil {
		return err
	}

	g.controls.Sync(g.page, g.tourStatus())
	if !g.hideUI {
		g.ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.bg.Draw(screen)
	if g.hideUI {
		return
	}
	g.ui.Draw(screen)

	tr := g.bg.Transition()
	status := g.bg.Images().Status
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s -> %s  %.2f    sprites %d/%d (%d failed)    FPS: %.1f",
		tr.From, tr.To, tr.Progress, status.Loaded, status.Attempted, status.Failed, ebiten.ActualFPS(),
	))
}

// Layout follows the window so the background always covers it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.bg.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) handleKeys() {
	toggles := []struct {
		key ebiten.Key
		fn  func(p *component.PageState)
	}{
		{ebiten.KeyL, func(p *component.PageState) { p.LoreHover = !p.LoreHover }},
		{ebiten.KeyA, func(p *component.PageState) { p.AboutOpen = !p.AboutOpen }},
		{ebiten.KeyH, func(p *component.PageState) { p.CaseStudyHover = !p.CaseStudyHover }},
		{ebiten.KeyC, func(p *component.PageState) { p.CaseStudyOpen = !p.CaseStudyOpen }},
	}
	for _, t := range toggles {
		if inpututil.IsKeyJustPressed(t.key) {
			g.togglePage(t.fn)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.togglePage(func(p *component.PageState) { *p = component.PageState{} })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleTour()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.hideUI = !g.hideUI
	}
}

// togglePage applies a manual page change. Manual input pauses a running
// tour so the two never fight over the flags.
func (g *Game) togglePage(fn func(p *component.PageState)) {
	if g.tour != nil {
		g.paused = true
	}
	fn(&g.page)
}

func (g *Game) toggleTour() {
	if g.tour == nil {
		return
	}
	g.paused = !g.paused
}

func (g *Game) tourStatus() string {
	switch {
	case g.tour == nil:
		return "no tour"
	case g.paused:
		return "tour " + g.tour.Name + " paused"
	default:
		return "tour " + g.tour.Name
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watch error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScene:
		settings, err := loadSceneSettings()
		if err != nil {
			g.logger.Warn("scene reload failed, keeping previous settings", zap.String("path", change.Path), zap.Error(err))
			return
		}
		g.bg.ApplySettings(settings)
		g.logger.Info("scene reloaded", zap.String("path", change.Path))
	case prefabs.ChangeTour:
		name := strings.TrimSuffix(filepath.Base(change.Path), filepath.Ext(change.Path))
		if g.tour == nil || name != g.tourName {
			return
		}
		tour, err := prefabs.LoadTour(name)
		if err != nil {
			g.logger.Warn("tour reload failed", zap.String("tour", name), zap.Error(err))
			return
		}
		g.tour = tour
		g.tourAt = 0
		g.logger.Info("tour reloaded", zap.String("tour", name))
	}
}
