package system

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
	"github.com/milk9111/skyscape/ecs/entity"
)

func TestWrapCloudX(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		reverse bool
		want    float64
	}{
		{"inside", 100, false, 100},
		{"on right edge", 800, false, 800},
		{"past right edge", 801, false, -300},
		{"reverse inside", -100, true, -100},
		{"reverse on left edge", -300, true, -300},
		{"reverse past left edge", -301, true, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapCloudX(tt.x, 300, 800, tt.reverse))
		})
	}
}

func TestWrapGalaxyX(t *testing.T) {
	assert.Equal(t, 500.0, WrapGalaxyX(500, 800, 200))
	assert.Equal(t, -200.0, WrapGalaxyX(1001, 800, 200))
	assert.Equal(t, 1000.0, WrapGalaxyX(-201, 800, 200))
	assert.Equal(t, -200.0, WrapGalaxyX(-200, 800, 200), "exactly on the margin stays put")
}

func cloudAt(t *testing.T, w *ecs.World, x, speed float64, reverse bool) ecs.Entity {
	t.Helper()
	ents, err := entity.BuildClouds(w, []entity.CloudPlacement{{
		Transform: component.Transform{X: x},
		Cloud:     component.Cloud{Speed: speed, Scale: 1, Reverse: reverse},
	}})
	require.NoError(t, err)
	return ents[0]
}

func TestCloudDriftMovesAndWraps(t *testing.T) {
	w, _ := newScene(t, 800, 600)
	right := cloudAt(t, w, 10, 2, false)
	left := cloudAt(t, w, -642, -2, true)

	NewCloudDriftSystem().Update(w)

	got, _ := ecs.Get(w, right, component.TransformComponent)
	assert.Equal(t, 12.0, got.X)
	got, _ = ecs.Get(w, left, component.TransformComponent)
	assert.Equal(t, 800.0, got.X, "reverse cloud re-enters on the right")
}

func TestCloudDriftHoldsForGalaxy(t *testing.T) {
	w, e := newScene(t, 800, 600)
	c := cloudAt(t, w, 10, 2, false)
	tr := component.NewBackgroundTransition()
	tr.To = component.BackgroundGalaxy
	require.NoError(t, ecs.Add(w, e, component.BackgroundTransitionComponent, tr))

	NewCloudDriftSystem().Update(w)

	got, _ := ecs.Get(w, c, component.TransformComponent)
	assert.Equal(t, 10.0, got.X)
}

func TestGalaxyDriftOnlyWhileShown(t *testing.T) {
	w, e := newScene(t, 800, 600)
	ents, err := entity.BuildGalaxies(w, []entity.GalaxyPlacement{{
		Transform: component.Transform{X: 100},
		Sprite:    component.GalaxySprite{Image: image.NewRGBA(image.Rect(0, 0, 4, 4)), Scale: 1, Opacity: 1, Speed: 4},
	}})
	require.NoError(t, err)
	sprite := ents[0]

	sys := NewGalaxyDriftSystem()
	sys.Update(w)
	got, _ := ecs.Get(w, sprite, component.TransformComponent)
	assert.Equal(t, 100.0, got.X, "settled sky hides the galaxy")

	tr := component.NewBackgroundTransition()
	tr.To = component.BackgroundGalaxy
	require.NoError(t, ecs.Add(w, e, component.BackgroundTransitionComponent, tr))
	sys.Update(w)
	got, _ = ecs.Get(w, sprite, component.TransformComponent)
	assert.Equal(t, 101.0, got.X, "speed is scaled by the drift multiplier")

	// Fading out of the galaxy still drifts.
	tr = component.BackgroundTransition{From: component.BackgroundGalaxy, To: component.BackgroundSky, Progress: 0.5}
	require.NoError(t, ecs.Add(w, e, component.BackgroundTransitionComponent, tr))
	sys.Update(w)
	got, _ = ecs.Get(w, sprite, component.TransformComponent)
	assert.Equal(t, 102.0, got.X)
}

func TestLayoutSystem(t *testing.T) {
	w, e := newScene(t, 1280, 720)
	sys := NewLayoutSystem(rand.New(rand.NewPCG(1, 2)))

	sys.Update(w)
	assert.Empty(t, w.Query(component.CloudComponent.Kind()), "no cloud image yet")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	images, _ := ecs.Get(w, e, component.SceneImagesComponent)
	images.Cloud = img
	images.Galaxy = []component.Texture{img, nil, img}
	images.Status = component.SpriteSetStatus{Started: true, Attempted: 3, Loaded: 2}
	require.NoError(t, ecs.Add(w, e, component.SceneImagesComponent, images))

	sys.Update(w)
	assert.Len(t, w.Query(component.CloudComponent.Kind()), 5*3, "sprite set not settled yet")
	assert.Empty(t, w.Query(component.GalaxySpriteComponent.Kind()))

	images.Status.Failed = 1
	require.NoError(t, ecs.Add(w, e, component.SceneImagesComponent, images))
	w.Events().Drain()
	sys.Update(w)
	assert.Len(t, w.Query(component.CloudComponent.Kind()), 15, "clouds are built once")
	assert.Len(t, w.Query(component.GalaxySpriteComponent.Kind()), 2)
	evts := w.Events().Drain()
	require.Len(t, evts, 1)
	assert.Equal(t, LayoutEvent{Kind: "galaxy", Count: 2}, evts[0].Data)

	sys.Update(w)
	assert.Empty(t, w.Events().Drain(), "nothing changed")

	vp, _ := ecs.Get(w, e, component.ViewportComponent)
	vp.Width, vp.Height, vp.Generation = 640, 480, vp.Generation+1
	require.NoError(t, ecs.Add(w, e, component.ViewportComponent, vp))
	sys.Update(w)
	assert.Len(t, w.Query(component.GalaxySpriteComponent.Kind()), 2, "galaxy field is replaced, not added to")
	assert.Len(t, w.Query(component.CloudComponent.Kind()), 15)
	state, _ := ecs.Get(w, e, component.LayoutStateComponent)
	assert.Equal(t, vp.Generation, state.GalaxyViewportGen)
}
