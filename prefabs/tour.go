package prefabs

import (
	"fmt"
	"sort"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skyscape/ecs/component"
)

// TourStep holds the page flags from At until the next step.
type TourStep struct {
	At   time.Duration
	Page component.PageState
}

// Tour is a scripted timeline of page interactions. Scripts define a global
// `steps` array of maps with an `at` offset in milliseconds and any of the
// boolean keys lore_hover, about_open, case_study_hover, case_study_open.
// Optional globals: `loop` (bool) and `length` (ms, loop period).
type Tour struct {
	Name   string
	Steps  []TourStep
	Loop   bool
	Length time.Duration
}

func LoadTour(name string) (*Tour, error) {
	src, err := LoadTourScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load tour %s: %w", name, err)
	}
	tour, err := ParseTour(src)
	if err != nil {
		return nil, fmt.Errorf("prefabs: tour %s: %w", name, err)
	}
	tour.Name = name
	return tour, nil
}

// ParseTour runs a tour script and collects its timeline.
func ParseTour(src []byte) (*Tour, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return nil, err
	}
	if !compiled.IsDefined("steps") {
		return nil, fmt.Errorf("missing steps")
	}

	raw := compiled.Get("steps").Array()
	if raw == nil {
		return nil, fmt.Errorf("steps must be an array")
	}

	tour := &Tour{}
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("step %d: expected map, got %T", i, item)
		}
		at, err := stepMillis(m["at"])
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		tour.Steps = append(tour.Steps, TourStep{
			At: at,
			Page: component.PageState{
				LoreHover:      truthy(m["lore_hover"]),
				AboutOpen:      truthy(m["about_open"]),
				CaseStudyHover: truthy(m["case_study_hover"]),
				CaseStudyOpen:  truthy(m["case_study_open"]),
			},
		})
	}
	sort.SliceStable(tour.Steps, func(i, j int) bool { return tour.Steps[i].At < tour.Steps[j].At })

	if compiled.IsDefined("loop") {
		tour.Loop = compiled.Get("loop").Bool()
	}
	if compiled.IsDefined("length") {
		tour.Length = time.Duration(compiled.Get("length").Int64()) * time.Millisecond
	}
	if n := len(tour.Steps); n > 0 && tour.Length <= tour.Steps[n-1].At {
		tour.Length = tour.Steps[n-1].At + time.Second
	}

	return tour, nil
}

// PageAt returns the page flags in effect elapsed into the tour. Before the
// first step every flag is off.
func (t *Tour) PageAt(elapsed time.Duration) component.PageState {
	if t == nil || len(t.Steps) == 0 {
		return component.PageState{}
	}
	if t.Loop && t.Length > 0 {
		elapsed %= t.Length
	}
	idx := sort.Search(len(t.Steps), func(i int) bool { return t.Steps[i].At > elapsed }) - 1
	if idx < 0 {
		return component.PageState{}
	}
	return t.Steps[idx].Page
}

// Finished reports whether a non-looping tour has played out.
func (t *Tour) Finished(elapsed time.Duration) bool {
	if t == nil {
		return true
	}
	return !t.Loop && elapsed >= t.Length
}

func stepMillis(v interface{}) (time.Duration, error) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative at %d", n)
		}
		return time.Duration(n) * time.Millisecond, nil
	case float64:
		if n < 0 {
			return 0, fmt.Errorf("negative at %v", n)
		}
		return time.Duration(n * float64(time.Millisecond)), nil
	case nil:
		return 0, fmt.Errorf("missing at")
	default:
		return 0, fmt.Errorf("at must be a number, got %T", v)
	}
}

func truthy(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
