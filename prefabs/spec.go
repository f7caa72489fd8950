package prefabs

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/skyscape/designsystem"
	"github.com/milk9111/skyscape/ecs/component"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const SceneFile = "scene.yaml"

type SceneSpec struct {
	Name       string         `yaml:"name"`
	Palette    PaletteSpec    `yaml:"palette"`
	Transition TransitionSpec `yaml:"transition"`
	Clouds     CloudSpec      `yaml:"clouds"`
	Galaxy     GalaxySpec     `yaml:"galaxy"`
}

type PaletteSpec struct {
	Sky          *YAMLColor         `yaml:"sky"`
	CaseStudySky *YAMLColor         `yaml:"case_study_sky"`
	Gradient     []GradientStopSpec `yaml:"gradient"`
}

type GradientStopSpec struct {
	Offset float64    `yaml:"offset"`
	Color  *YAMLColor `yaml:"color"`
}

type TransitionSpec struct {
	DurationMS            int     `yaml:"duration_ms"`
	GalaxyDurationMS      int     `yaml:"galaxy_duration_ms"`
	GalaxyBackdropFrac    float64 `yaml:"galaxy_backdrop_frac"`
	GalaxySpriteDelayFrac float64 `yaml:"galaxy_sprite_delay_frac"`
	MaxFrameDeltaMS       int     `yaml:"max_frame_delta_ms"`
}

type CloudSpec struct {
	Rows          int     `yaml:"rows"`
	ColumnDensity float64 `yaml:"column_density"`
	ExtraColumns  int     `yaml:"extra_columns"`
	MinSpeed      float64 `yaml:"min_speed"`
	SpeedJitter   float64 `yaml:"speed_jitter"`
	SpeedFactor   float64 `yaml:"speed_factor"`
	ReverseRows   []int   `yaml:"reverse_rows"`
}

type GalaxySpec struct {
	CellSize        float64 `yaml:"cell_size"`
	Jitter          float64 `yaml:"jitter"`
	MinScale        float64 `yaml:"min_scale"`
	ScaleJitter     float64 `yaml:"scale_jitter"`
	MinOpacity      float64 `yaml:"min_opacity"`
	OpacityJitter   float64 `yaml:"opacity_jitter"`
	SpeedRange      float64 `yaml:"speed_range"`
	DriftMultiplier float64 `yaml:"drift_multiplier"`
	WrapMargin      float64 `yaml:"wrap_margin"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseSceneSpec decodes a scene document from memory.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	return &spec, nil
}

// Settings resolves the scene file against the design system. Zero or missing
// fields keep the stock value, and the cloud size always comes from the
// design system's canvas size.
func (s *SceneSpec) Settings(doc designsystem.Document) (component.SceneSettings, error) {
	out := component.DefaultSceneSettings()

	sky, err := doc.SkyColor()
	if err != nil {
		return out, err
	}
	out.SkyColor = sky
	if doc.Sizes.Canvas.Width > 0 && doc.Sizes.Canvas.Height > 0 {
		out.Cloud.Width = float64(doc.Sizes.Canvas.Width)
		out.Cloud.Height = float64(doc.Sizes.Canvas.Height)
	}
	if s == nil {
		return out, nil
	}

	p := s.Palette
	if p.Sky.Set() {
		out.SkyColor = p.Sky.Color
	}
	if p.CaseStudySky.Set() {
		out.CaseStudySkyColor = p.CaseStudySky.Color
	}
	if len(p.Gradient) > 0 {
		stops := make([]component.GradientStop, 0, len(p.Gradient))
		last := -1.0
		for i, st := range p.Gradient {
			if !st.Color.Set() {
				return out, fmt.Errorf("prefabs: gradient stop %d: missing color", i)
			}
			if st.Offset < 0 || st.Offset > 1 || st.Offset < last {
				return out, fmt.Errorf("prefabs: gradient stop %d: offset %.3f out of order or outside [0,1]", i, st.Offset)
			}
			last = st.Offset
			stops = append(stops, component.GradientStop{Offset: st.Offset, Color: st.Color.Color})
		}
		out.Gradient = stops
	}

	t := s.Transition
	setDuration(&out.TransitionDuration, t.DurationMS)
	setDuration(&out.GalaxyTransitionDuration, t.GalaxyDurationMS)
	setDuration(&out.MaxFrameDelta, t.MaxFrameDeltaMS)
	if err := setFraction(&out.GalaxyBackdropFrac, t.GalaxyBackdropFrac, "galaxy_backdrop_frac"); err != nil {
		return out, err
	}
	if err := setFraction(&out.GalaxySpriteDelayFrac, t.GalaxySpriteDelayFrac, "galaxy_sprite_delay_frac"); err != nil {
		return out, err
	}

	c := s.Clouds
	setInt(&out.Cloud.Rows, c.Rows)
	setInt(&out.Cloud.ExtraColumns, c.ExtraColumns)
	setFloat(&out.Cloud.ColumnDensity, c.ColumnDensity)
	setFloat(&out.Cloud.MinSpeed, c.MinSpeed)
	setFloat(&out.Cloud.SpeedJitter, c.SpeedJitter)
	setFloat(&out.Cloud.SpeedFactor, c.SpeedFactor)
	if c.ReverseRows != nil {
		out.Cloud.ReverseRows = append([]int(nil), c.ReverseRows...)
	}

	g := s.Galaxy
	setFloat(&out.Galaxy.CellSize, g.CellSize)
	setFloat(&out.Galaxy.Jitter, g.Jitter)
	setFloat(&out.Galaxy.MinScale, g.MinScale)
	setFloat(&out.Galaxy.ScaleJitter, g.ScaleJitter)
	setFloat(&out.Galaxy.MinOpacity, g.MinOpacity)
	setFloat(&out.Galaxy.OpacityJitter, g.OpacityJitter)
	setFloat(&out.Galaxy.SpeedRange, g.SpeedRange)
	setFloat(&out.Galaxy.DriftMultiplier, g.DriftMultiplier)
	setFloat(&out.Galaxy.WrapMargin, g.WrapMargin)

	return out, nil
}

func setDuration(dst *time.Duration, ms int) {
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}

func setFraction(dst *float64, v float64, field string) error {
	if v == 0 {
		return nil
	}
	if v < 0 || v >= 1 {
		return fmt.Errorf("prefabs: %s must be in (0,1), got %v", field, v)
	}
	*dst = v
	return nil
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// YAMLColor accepts "#rrggbb", "#rgb", "#rrggbbaa" or an SVG color name.
// An empty string leaves the color unset.
type YAMLColor struct {
	color.Color
}

// Set reports whether the document gave a color.
func (c *YAMLColor) Set() bool {
	return c != nil && c.Color != nil
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor parses a hex or named color. An empty string yields nil.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return named, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := uint8(0xff)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return nil, fmt.Errorf("invalid color format: %s", s)
		}
		alpha = a
		s = s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color format: %s", s)
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
