package prefabs

import (
	"testing"
	"time"

	"github.com/milk9111/skyscape/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTour(t *testing.T) {
	tour, err := ParseTour([]byte(`
steps := [
	{at: 1000, lore_hover: true},
	{at: 0},
	{at: 2000, case_study_hover: true, case_study_open: true}
]
length := 3000
`))
	require.NoError(t, err)
	require.Len(t, tour.Steps, 3)
	assert.Equal(t, time.Duration(0), tour.Steps[0].At, "steps are sorted by offset")
	assert.False(t, tour.Loop)
	assert.Equal(t, 3*time.Second, tour.Length)

	cases := []struct {
		at   time.Duration
		want component.PageState
	}{
		{0, component.PageState{}},
		{999 * time.Millisecond, component.PageState{}},
		{time.Second, component.PageState{LoreHover: true}},
		{2500 * time.Millisecond, component.PageState{CaseStudyHover: true, CaseStudyOpen: true}},
		{10 * time.Second, component.PageState{CaseStudyHover: true, CaseStudyOpen: true}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tour.PageAt(c.at), "at %s", c.at)
	}
	assert.False(t, tour.Finished(2*time.Second))
	assert.True(t, tour.Finished(3*time.Second))
}

func TestTourLoops(t *testing.T) {
	tour, err := ParseTour([]byte(`
steps := [{at: 0, about_open: true}, {at: 500}]
loop := true
length := 1000
`))
	require.NoError(t, err)

	assert.True(t, tour.PageAt(1200*time.Millisecond).AboutOpen)
	assert.False(t, tour.PageAt(1700*time.Millisecond).AboutOpen)
	assert.False(t, tour.Finished(time.Hour))
}

func TestTourLengthCoversLastStep(t *testing.T) {
	tour, err := ParseTour([]byte(`steps := [{at: 0}, {at: 4000, lore_hover: true}]`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, tour.Length)
}

func TestParseTourErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `steps := [`},
		{"missing_steps", `x := 1`},
		{"steps_not_array", `steps := 3`},
		{"step_not_map", `steps := [1]`},
		{"missing_at", `steps := [{lore_hover: true}]`},
		{"negative_at", `steps := [{at: -5}]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseTour([]byte(c.src))
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedToursParse(t *testing.T) {
	names := TourNames()
	require.NotEmpty(t, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			tour, err := LoadTour(name)
			require.NoError(t, err)
			assert.NotEmpty(t, tour.Steps)
			assert.Equal(t, name, tour.Name)
		})
	}
}

func TestShowcaseTourReachesEveryState(t *testing.T) {
	tour, err := LoadTour("showcase")
	require.NoError(t, err)

	seen := map[component.BackgroundState]bool{}
	for at := time.Duration(0); at < tour.Length; at += 250 * time.Millisecond {
		seen[component.ResolveTarget(tour.PageAt(at).Inputs())] = true
	}
	assert.True(t, seen[component.BackgroundSky])
	assert.True(t, seen[component.BackgroundGradient])
	assert.True(t, seen[component.BackgroundGalaxy])
}
