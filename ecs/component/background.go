package component

// BackgroundState is the visual mode the background shows or is heading to.
type BackgroundState uint8

const (
	BackgroundSky BackgroundState = iota
	BackgroundGradient
	BackgroundGalaxy
)

func (s BackgroundState) String() string {
	switch s {
	case BackgroundSky:
		return "sky"
	case BackgroundGradient:
		return "gradient"
	case BackgroundGalaxy:
		return "galaxy"
	default:
		return "unknown"
	}
}

// BackgroundInputs are the flags the page hands the background every frame.
type BackgroundInputs struct {
	ShowGalaxy         bool
	ShowGradient       bool
	ShowCaseStudyModal bool
}

var BackgroundInputsComponent = NewComponent[BackgroundInputs]()

// ResolveTarget maps inputs to a state. Galaxy beats gradient, gradient beats
// sky. The case-study flag only recolors sky and never changes the state.
func ResolveTarget(in BackgroundInputs) BackgroundState {
	switch {
	case in.ShowGalaxy:
		return BackgroundGalaxy
	case in.ShowGradient:
		return BackgroundGradient
	default:
		return BackgroundSky
	}
}
