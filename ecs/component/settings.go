package component

import (
	"image/color"
	"time"
)

// GradientStop is one color stop of the vertical gradient, Offset in [0,1]
// from the top edge.
type GradientStop struct {
	Offset float64
	Color  color.Color
}

// CloudSettings drives the cloud grid.
type CloudSettings struct {
	Rows          int
	Width         float64
	Height        float64
	ColumnDensity float64
	ExtraColumns  int
	MinSpeed      float64
	SpeedJitter   float64
	SpeedFactor   float64
	// ReverseRows drift left; every other row drifts right.
	ReverseRows []int
}

// Reversed reports whether row drifts left.
func (c CloudSettings) Reversed(row int) bool {
	for _, r := range c.ReverseRows {
		if r == row {
			return true
		}
	}
	return false
}

// GalaxySettings drives the starfield sprite layout.
type GalaxySettings struct {
	CellSize        float64
	Jitter          float64
	MinScale        float64
	ScaleJitter     float64
	MinOpacity      float64
	OpacityJitter   float64
	SpeedRange      float64
	DriftMultiplier float64
	WrapMargin      float64
}

// SceneSettings is the resolved tuning for the whole background. It lives on a
// singleton entity so a config reload swaps it between frames.
type SceneSettings struct {
	SkyColor          color.Color
	CaseStudySkyColor color.Color
	Gradient          []GradientStop

	TransitionDuration       time.Duration
	GalaxyTransitionDuration time.Duration
	// GalaxyBackdropFrac is the share of the galaxy entrance spent fading the
	// backdrop in.
	GalaxyBackdropFrac float64
	// GalaxySpriteDelayFrac is the progress after which sprites start to show.
	GalaxySpriteDelayFrac float64
	MaxFrameDelta         time.Duration

	Cloud  CloudSettings
	Galaxy GalaxySettings
}

var SceneSettingsComponent = NewComponent[SceneSettings]()

// DurationFor returns how long a transition into target takes. Entering the
// galaxy is slower because of its staged reveal.
func (s SceneSettings) DurationFor(target BackgroundState) time.Duration {
	if target == BackgroundGalaxy {
		return s.GalaxyTransitionDuration
	}
	return s.TransitionDuration
}

// SkyFill returns the flat sky color for the given inputs.
func (s SceneSettings) SkyFill(in BackgroundInputs) color.Color {
	if in.ShowCaseStudyModal {
		return s.CaseStudySkyColor
	}
	return s.SkyColor
}

// DefaultSceneSettings mirrors prefabs/scene.yaml with the stock design tokens.
func DefaultSceneSettings() SceneSettings {
	return SceneSettings{
		SkyColor:          color.RGBA{R: 0xdb, G: 0xf2, B: 0xff, A: 0xff},
		CaseStudySkyColor: color.RGBA{R: 0x26, G: 0x28, B: 0x2a, A: 0xff},
		Gradient: []GradientStop{
			{Offset: 0, Color: color.RGBA{R: 0x2b, G: 0x7e, B: 0xad, A: 0xff}},
			{Offset: 0.56, Color: color.RGBA{R: 0xe1, G: 0xda, B: 0xa3, A: 0xff}},
			{Offset: 1, Color: color.RGBA{R: 0xe5, G: 0x6d, B: 0x6f, A: 0xff}},
		},
		TransitionDuration:       500 * time.Millisecond,
		GalaxyTransitionDuration: time.Second,
		GalaxyBackdropFrac:       0.25,
		GalaxySpriteDelayFrac:    0.25,
		MaxFrameDelta:            80 * time.Millisecond,
		Cloud: CloudSettings{
			Rows:          5,
			Width:         643,
			Height:        298,
			ColumnDensity: 0.15,
			ExtraColumns:  2,
			MinSpeed:      0.01,
			SpeedJitter:   0.02,
			SpeedFactor:   0.33203125,
			ReverseRows:   []int{2, 4},
		},
		Galaxy: GalaxySettings{
			CellSize:        200,
			Jitter:          150,
			MinScale:        0.1375,
			ScaleJitter:     0.22,
			MinOpacity:      0.4,
			OpacityJitter:   0.6,
			SpeedRange:      0.01120581,
			DriftMultiplier: 0.25,
			WrapMargin:      200,
		},
	}
}
