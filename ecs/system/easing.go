package system

import "math"

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// Smoothstep eases in and out with zero slope at both ends.
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// Smootherstep also has zero second derivative at both ends, so the galaxy
// backdrop starts and stops fading without a visible kick.
func Smootherstep(t float64) float64 {
	t = clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

// CosineEase is the half-cosine ramp used for the galaxy sprites.
func CosineEase(t float64) float64 {
	t = clamp01(t)
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// GalaxyReveal returns backdrop and sprite alpha for a galaxy entrance at
// progress p. The backdrop fades in over [0, backdropFrac); sprites stay at
// zero until p passes delayFrac.
func GalaxyReveal(p, backdropFrac, delayFrac float64) (backdrop, sprites float64) {
	p = clamp01(p)
	backdrop = 1
	if backdropFrac > 0 && p < backdropFrac {
		backdrop = Smootherstep(p / backdropFrac)
	}
	if p <= delayFrac || delayFrac >= 1 {
		return backdrop, 0
	}
	return backdrop, CosineEase((p - delayFrac) / (1 - delayFrac))
}
