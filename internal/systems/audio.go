package systems

import (
	"math"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
)

// Engine is the playback backend the Audio system drives, trimmed to the
// one call a per-frame volume update actually needs.
type Engine interface {
	SetVolume(clip string, volume float64) error
}

// Audio applies 2D positional falloff to every playing AudioSource
// relative to a listener position, with linear falloff against the
// Transform/AudioSource pair. Panning and Doppler pitch are concerns of a
// host audio backend, not this sample.
type Audio struct {
	Base
	Listener     components.Vector2
	MaxDistance  float64 // falloff reaches 0 at this distance; <= 0 disables falloff
	MasterVolume float64
	Engine       Engine // optional; nil is a valid no-op backend
}

// NewAudio returns an Audio system at full master volume with falloff
// disabled until MaxDistance is set.
func NewAudio() *Audio {
	return &Audio{MasterVolume: 1}
}

func (a *Audio) Update(r *ecs.Registry, dt float64) {
	ecs.View2[components.Transform, components.AudioSource](r, func(_ ecs.Entity, t *components.Transform, src *components.AudioSource) {
		if !src.Playing {
			return
		}

		volume := src.Volume * a.MasterVolume
		if a.MaxDistance > 0 {
			dist := math.Hypot(t.Position.X-a.Listener.X, t.Position.Y-a.Listener.Y)
			if dist >= a.MaxDistance {
				src.Playing = src.Loop
				volume = 0
			} else {
				volume *= 1 - dist/a.MaxDistance
			}
		}

		if a.Engine != nil {
			_ = a.Engine.SetVolume(src.Clip, volume)
		}
	})
}
