package component

// Viewport is the drawable surface size. Generation increments on every
// resize so layout code can tell stale placements apart.
type Viewport struct {
	Width      float64
	Height     float64
	Generation int
}

func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

var ViewportComponent = NewComponent[Viewport]()

// LayoutState records what the procedural layouts were last built for.
type LayoutState struct {
	CloudsBuilt       bool
	GalaxyBuilt       bool
	GalaxyViewportGen int
}

var LayoutStateComponent = NewComponent[LayoutState]()
