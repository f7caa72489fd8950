package component

import "image"

// Texture is anything with pixel bounds. Decoded images and *ebiten.Image
// both satisfy it, which keeps layout and planning free of GPU calls.
type Texture interface {
	Bounds() image.Rectangle
}

// TextureSize returns the texture's width and height, or zeros for nil.
func TextureSize(t Texture) (float64, float64) {
	if t == nil {
		return 0, 0
	}
	b := t.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// SpriteSetStatus counts settled galaxy loads. Failures count as settled so a
// few broken files never hold back the galaxy reveal.
type SpriteSetStatus struct {
	Started   bool
	Attempted int
	Loaded    int
	Failed    int
}

// Ready reports whether every attempted load has settled.
func (s SpriteSetStatus) Ready() bool {
	return s.Started && s.Loaded+s.Failed >= s.Attempted
}

// SceneImages holds whatever images have arrived so far. Galaxy keeps load
// order; a nil entry is a sprite that has not loaded or failed.
type SceneImages struct {
	Cloud    Texture
	Backdrop Texture
	Galaxy   []Texture
	Status   SpriteSetStatus
}

var SceneImagesComponent = NewComponent[SceneImages]()
