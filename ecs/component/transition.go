package component

import "time"

// BackgroundTransition is the cross-fade between two background states.
//
// Progress only moves forward within one Generation and stays in [0,1]. A new
// target bumps Generation and restarts Progress at 0.
type BackgroundTransition struct {
	Progress   float64
	From       BackgroundState
	To         BackgroundState
	Duration   time.Duration
	Generation int
	// LastTick is the wall-clock time of the previous frame. Zero right after a
	// (re)start so the first frame never advances on a stale delta.
	LastTick time.Time
}

// NewBackgroundTransition returns a settled sky transition.
func NewBackgroundTransition() BackgroundTransition {
	return BackgroundTransition{Progress: 1, From: BackgroundSky, To: BackgroundSky}
}

// Done reports whether the transition has fully landed on To.
func (t BackgroundTransition) Done() bool {
	return t.Progress >= 1
}

// Shows reports whether state is drawn this frame.
func (t BackgroundTransition) Shows(state BackgroundState) bool {
	if t.To == state {
		return true
	}
	return t.From == state && !t.Done()
}

var BackgroundTransitionComponent = NewComponent[BackgroundTransition]()

// TransitionEvent is pushed on the world event queue when a transition
// starts, restarts its reveal or lands.
type TransitionEvent struct {
	From       BackgroundState
	To         BackgroundState
	Duration   time.Duration
	Generation int
}
