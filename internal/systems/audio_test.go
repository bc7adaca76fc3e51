package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/systems"
)

type recordingEngine struct {
	volumes map[string]float64
}

func (e *recordingEngine) SetVolume(clip string, volume float64) error {
	if e.volumes == nil {
		e.volumes = make(map[string]float64)
	}
	e.volumes[clip] = volume
	return nil
}

func TestAudio_SilentSourceIsSkipped(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, components.NewTransform())
	src := ecs.Add(r, e, components.NewAudioSource("step.wav"))
	src.Playing = false

	eng := &recordingEngine{}
	a := systems.NewAudio()
	a.Engine = eng

	a.Update(r, 0.016)
	assert.Empty(t, eng.volumes)
}

func TestAudio_FalloffByDistance(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, components.Transform{Position: components.Vector2{X: 50, Y: 0}})
	src := ecs.Add(r, e, components.NewAudioSource("step.wav"))
	src.Playing = true
	src.Volume = 1

	eng := &recordingEngine{}
	a := systems.NewAudio()
	a.Engine = eng
	a.MaxDistance = 100

	a.Update(r, 0.016)
	require.Contains(t, eng.volumes, "step.wav")
	assert.InDelta(t, 0.5, eng.volumes["step.wav"], 1e-9)
}

func TestAudio_NonLoopingSourceStopsPastMaxDistance(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, components.Transform{Position: components.Vector2{X: 500, Y: 0}})
	src := ecs.Add(r, e, components.NewAudioSource("step.wav"))
	src.Playing = true
	src.Loop = false

	a := systems.NewAudio()
	a.MaxDistance = 100

	a.Update(r, 0.016)
	assert.False(t, ecs.Get[components.AudioSource](r, e).Playing)
}

func TestAudio_LoopingSourceKeepsPlayingPastMaxDistance(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, components.Transform{Position: components.Vector2{X: 500, Y: 0}})
	src := ecs.Add(r, e, components.NewAudioSource("bgm.wav"))
	src.Playing = true
	src.Loop = true

	a := systems.NewAudio()
	a.MaxDistance = 100

	a.Update(r, 0.016)
	assert.True(t, ecs.Get[components.AudioSource](r, e).Playing)
}
