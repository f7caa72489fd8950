// Package background owns one mounted instance of the animated backdrop: the
// ECS world, its systems and the images streaming in from the asset loader.
// Every method must be called from the game loop goroutine.
package background

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/skyscape/assets"
	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
	"github.com/milk9111/skyscape/ecs/entity"
	"github.com/milk9111/skyscape/ecs/system"
)

var ErrNotMounted = errors.New("background: not mounted")

type Options struct {
	Logger *zap.Logger
	// Now defaults to time.Now. Tests pass a fake clock.
	Now func() time.Time
	// Seed fixes the layout RNG; zero picks a random seed per mount.
	Seed     uint64
	Settings *component.SceneSettings
	// OnEvent sees every world event after it has been logged.
	OnEvent func(ecs.Event)
}

type Background struct {
	logger   *zap.Logger
	now      func() time.Time
	seed     uint64
	settings component.SceneSettings
	onEvent  func(ecs.Event)

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	entity    ecs.Entity
	results   <-chan assets.Result
	mounted   bool
}

func New(opts Options) *Background {
	b := &Background{
		logger:   opts.Logger,
		now:      opts.Now,
		seed:     opts.Seed,
		settings: component.DefaultSceneSettings(),
		onEvent:  opts.OnEvent,
		render:   system.NewRenderSystem(),
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if opts.Settings != nil {
		b.settings = *opts.Settings
	}
	return b
}

// Mount builds a fresh world sized to the viewport and starts consuming the
// batch. A zero size is fine; layout waits for the first Resize.
func (b *Background) Mount(width, height float64, batch assets.Batch) error {
	if b == nil {
		return fmt.Errorf("background: mount: nil background")
	}
	if b.mounted {
		b.Unmount()
	}

	seed := b.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	w := ecs.NewWorld()
	ent, err := entity.BuildBackground(w, b.settings, component.Viewport{Width: width, Height: height})
	if err != nil {
		return fmt.Errorf("background: mount: %w", err)
	}
	images := component.SceneImages{
		Galaxy: make([]component.Texture, len(batch.Galaxy)),
		Status: component.SpriteSetStatus{Started: true, Attempted: len(batch.Galaxy)},
	}
	if err := ecs.Add(w, ent, component.SceneImagesComponent, images); err != nil {
		return fmt.Errorf("background: mount: %w", err)
	}

	b.world = w
	b.entity = ent
	b.results = batch.Results
	b.scheduler = ecs.NewScheduler(
		system.NewLayoutSystem(rng),
		system.NewBackgroundStateSystem(b.now),
		system.NewCloudDriftSystem(),
		system.NewGalaxyDriftSystem(),
	)
	b.mounted = true
	b.logger.Info("background mounted",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("galaxy_sprites", len(batch.Galaxy)),
		zap.Uint64("seed", seed),
	)
	return nil
}

// Unmount tears the world down. Results still in flight are dropped.
func (b *Background) Unmount() {
	if b == nil || !b.mounted {
		return
	}
	b.world.Clear()
	b.render.Release()
	b.world = nil
	b.scheduler = nil
	b.results = nil
	b.entity = 0
	b.mounted = false
	b.logger.Info("background unmounted")
}

func (b *Background) Mounted() bool {
	return b != nil && b.mounted
}

// Resize records a new viewport. The galaxy field is laid out again on the
// next Update; an in-flight transition keeps its progress.
func (b *Background) Resize(width, height float64) {
	if !b.Mounted() {
		return
	}
	vp, _ := ecs.Get(b.world, b.entity, component.ViewportComponent)
	if vp.Width == width && vp.Height == height {
		return
	}
	vp.Width = width
	vp.Height = height
	vp.Generation++
	_ = ecs.Add(b.world, b.entity, component.ViewportComponent, vp)
	b.logger.Debug("viewport resized",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("generation", vp.Generation),
	)
}

func (b *Background) SetInputs(in component.BackgroundInputs) {
	if !b.Mounted() {
		return
	}
	_ = ecs.Add(b.world, b.entity, component.BackgroundInputsComponent, in)
}

// SetPage derives the inputs from the page's interaction flags.
func (b *Background) SetPage(p component.PageState) {
	b.SetInputs(p.Inputs())
}

func (b *Background) Inputs() component.BackgroundInputs {
	if !b.Mounted() {
		return component.BackgroundInputs{}
	}
	in, _ := ecs.Get(b.world, b.entity, component.BackgroundInputsComponent)
	return in
}

// ApplySettings swaps the tuning between frames. Layout already on screen
// is kept; durations and colors apply from the next frame.
func (b *Background) ApplySettings(s component.SceneSettings) {
	if b == nil {
		return
	}
	b.settings = s
	if b.mounted {
		_ = ecs.Add(b.world, b.entity, component.SceneSettingsComponent, s)
	}
}

func (b *Background) Settings() component.SceneSettings {
	if b == nil {
		return component.DefaultSceneSettings()
	}
	return b.settings
}

// Update pulls in finished image loads and advances the world one frame.
func (b *Background) Update() error {
	if !b.Mounted() {
		return ErrNotMounted
	}
	if err := b.drainAssets(); err != nil {
		return err
	}
	b.scheduler.Update(b.world)
	b.drainEvents()
	return nil
}

func (b *Background) Draw(screen *ebiten.Image) {
	if !b.Mounted() {
		return
	}
	b.render.Draw(b.world, screen)
}

// Plan returns this frame's draw ops without painting them.
func (b *Background) Plan() []system.DrawOp {
	if !b.Mounted() {
		return nil
	}
	return b.render.Plan(b.world)
}

func (b *Background) Transition() component.BackgroundTransition {
	if !b.Mounted() {
		return component.NewBackgroundTransition()
	}
	tr, _ := ecs.Get(b.world, b.entity, component.BackgroundTransitionComponent)
	return tr
}

func (b *Background) Images() component.SceneImages {
	if !b.Mounted() {
		return component.SceneImages{}
	}
	images, _ := ecs.Get(b.world, b.entity, component.SceneImagesComponent)
	return images
}

func (b *Background) World() *ecs.World {
	if b == nil {
		return nil
	}
	return b.world
}

func (b *Background) drainAssets() error {
	if b.results == nil {
		return nil
	}
	images, _ := ecs.Get(b.world, b.entity, component.SceneImagesComponent)
	changed := false
	for {
		select {
		case res, ok := <-b.results:
			if !ok {
				b.results = nil
				return b.storeImages(images, changed)
			}
			applyResult(&images, res)
			changed = true
		default:
			return b.storeImages(images, changed)
		}
	}
}

func (b *Background) storeImages(images component.SceneImages, changed bool) error {
	if !changed {
		return nil
	}
	if err := ecs.Add(b.world, b.entity, component.SceneImagesComponent, images); err != nil {
		return fmt.Errorf("background: store images: %w", err)
	}
	return nil
}

func applyResult(images *component.SceneImages, res assets.Result) {
	switch res.Kind {
	case assets.KindCloud:
		if res.Err == nil {
			images.Cloud = res.Image
		}
	case assets.KindBackdrop:
		if res.Err == nil {
			images.Backdrop = res.Image
		}
	case assets.KindGalaxy:
		if res.Index < 0 || res.Index >= len(images.Galaxy) {
			return
		}
		if res.Err != nil || res.Image == nil {
			images.Status.Failed++
			return
		}
		images.Galaxy[res.Index] = res.Image
		images.Status.Loaded++
	}
}

func (b *Background) drainEvents() {
	for _, evt := range b.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case component.TransitionEvent:
			b.logger.Debug(evt.Type,
				zap.Stringer("from", data.From),
				zap.Stringer("to", data.To),
				zap.Duration("duration", data.Duration),
				zap.Int("generation", data.Generation),
			)
		case system.LayoutEvent:
			b.logger.Debug(evt.Type, zap.String("layout", data.Kind), zap.Int("count", data.Count))
		default:
			b.logger.Debug(evt.Type)
		}
		if b.onEvent != nil {
			b.onEvent(evt)
		}
	}
}
