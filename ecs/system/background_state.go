package system

import (
	"math"
	"time"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// BackgroundStateSystem resolves the target state from the page inputs and
// drives the transition toward it on wall-clock time.
type BackgroundStateSystem struct {
	now          func() time.Time
	spritesReady bool
}

func NewBackgroundStateSystem(now func() time.Time) *BackgroundStateSystem {
	if now == nil {
		now = time.Now
	}
	return &BackgroundStateSystem{now: now}
}

func (s *BackgroundStateSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ent, ok := w.First(component.BackgroundTransitionComponent.Kind())
	if !ok {
		return
	}
	tr, _ := ecs.Get(w, ent, component.BackgroundTransitionComponent)
	inputs, _ := ecs.Get(w, ent, component.BackgroundInputsComponent)
	settings, ok := ecs.Get(w, ent, component.SceneSettingsComponent)
	if !ok {
		settings = component.DefaultSceneSettings()
	}
	images, _ := ecs.Get(w, ent, component.SceneImagesComponent)

	ready := images.Status.Ready()
	justReady := ready && !s.spritesReady
	s.spritesReady = ready

	target := component.ResolveTarget(inputs)
	switch {
	case target != tr.To:
		tr = BeginTransition(tr, target, settings.DurationFor(target))
		w.Events().Push(ecs.Event{Type: ecs.EventTransitionStarted, Data: transitionEvent(tr)})
	case justReady && tr.To == component.BackgroundGalaxy &&
		tr.Progress > 0 && tr.Progress < settings.GalaxyBackdropFrac:
		// The sprites just arrived while the backdrop is still fading in:
		// replay the reveal so they come in through the full sequence.
		tr = RestartTransition(tr)
		w.Events().Push(ecs.Event{Type: ecs.EventTransitionRestarted, Data: transitionEvent(tr)})
	}

	wasDone := tr.Done()
	tr = AdvanceTransition(tr, s.now(), settings.MaxFrameDelta)
	if !wasDone && tr.Done() {
		w.Events().Push(ecs.Event{Type: ecs.EventTransitionFinished, Data: transitionEvent(tr)})
	}
	_ = ecs.Add(w, ent, component.BackgroundTransitionComponent, tr)
}

// BeginTransition hands the current destination over to From and heads for
// target from zero progress.
func BeginTransition(tr component.BackgroundTransition, target component.BackgroundState, d time.Duration) component.BackgroundTransition {
	tr.From = tr.To
	tr.To = target
	tr.Duration = d
	return RestartTransition(tr)
}

// RestartTransition replays the current transition from zero.
func RestartTransition(tr component.BackgroundTransition) component.BackgroundTransition {
	tr.Progress = 0
	tr.Generation++
	tr.LastTick = time.Time{}
	return tr
}

// AdvanceTransition moves progress by the time since the last tick, capped at
// maxDelta so a long pause (backgrounded window, debugger) cannot skip the
// transition outright.
func AdvanceTransition(tr component.BackgroundTransition, now time.Time, maxDelta time.Duration) component.BackgroundTransition {
	if !tr.LastTick.IsZero() && !tr.Done() {
		delta := now.Sub(tr.LastTick)
		if delta < 0 {
			delta = 0
		}
		if maxDelta > 0 && delta > maxDelta {
			delta = maxDelta
		}
		if tr.Duration <= 0 {
			tr.Progress = 1
		} else {
			tr.Progress = math.Min(1, tr.Progress+float64(delta)/float64(tr.Duration))
		}
	}
	tr.LastTick = now
	return tr
}

func transitionEvent(tr component.BackgroundTransition) component.TransitionEvent {
	return component.TransitionEvent{
		From:       tr.From,
		To:         tr.To,
		Duration:   tr.Duration,
		Generation: tr.Generation,
	}
}
