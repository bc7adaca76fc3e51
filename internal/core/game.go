// Package core assembles the sample host application: one state layer
// wiring the sample systems and components into a single engine.Loop.
package core

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/message"
	"github.com/barhaim/arkgo/internal/ecs/meta"
	"github.com/barhaim/arkgo/internal/engine"
	"github.com/barhaim/arkgo/internal/resources"
	"github.com/barhaim/arkgo/internal/state"
	"github.com/barhaim/arkgo/internal/systems"
)

// PlayState is the sample gameplay layer: Transform/Physics/Sprite
// entities driven by the Movement, Physics and Rendering systems.
type PlayState struct {
	*state.Base
	Cache    *resources.Cache
	Rendering *systems.Rendering
}

// NewPlayState builds a gameplay layer backed by metaReg for component
// ids and cache for textures.
func NewPlayState(metaReg *meta.Registry, cache *resources.Cache) *PlayState {
	return &PlayState{Base: state.NewBase(metaReg), Cache: cache}
}

// Init registers the sample system pipeline in dispatch order: AI steers
// chasing entities, Physics integrates gravity/damping, Movement
// integrates velocity into position, Audio applies listener falloff,
// Rendering draws Transform+Sprite pairs.
func (p *PlayState) Init() error {
	rendering := systems.NewRendering(p.Cache)
	p.Rendering = rendering

	physics := systems.NewPhysics()
	physics.Gravity = components.Vector2{Y: 980}

	if err := p.Systems.Register("ai", systems.NewAI(), p.Registry); err != nil {
		return err
	}
	if err := p.Systems.Register("physics", physics, p.Registry); err != nil {
		return err
	}
	if err := p.Systems.Register("movement", systems.NewMovement(), p.Registry); err != nil {
		return err
	}
	if err := p.Systems.Register("audio", systems.NewAudio(), p.Registry); err != nil {
		return err
	}
	return p.Systems.Register("rendering", rendering, p.Registry)
}

// SpawnSprite creates a demo entity with a Transform at pos and a visible
// Sprite referencing texture.
func (p *PlayState) SpawnSprite(pos components.Vector2, texture string) ecs.Entity {
	e := p.Registry.Create()
	t := components.NewTransform()
	t.Position = pos
	ecs.Add(p.Registry, e, t)
	ecs.Add(p.Registry, e, components.NewSprite(texture))
	ecs.Add(p.Registry, e, components.NewPhysics())
	return e
}

// App bundles the engine loop with the host window settings a Run
// method configures directly on ebiten.
type App struct {
	Loop  *engine.Loop
	Meta  *meta.Registry
	Play  *PlayState
	Title string
	Width, Height int
}

// textureLoader loads an image file into an *ebiten.Image, the Handler
// registered against resources.Cache for the "textures" subfolder.
func textureLoader(path string) (interface{}, error) {
	img, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// NewApp wires one meta registry, one message bus, one state stack
// holding a single PlayState, and the engine.Loop driving them, per cfg.
func NewApp(cfg engine.Config) *App {
	metaReg := meta.NewRegistry()
	cache := resources.NewCache(cfg.ResourcesRoot)
	resources.Register[*ebiten.Image](cache, resources.Handler{Subfolder: "textures", Load: textureLoader})

	play := NewPlayState(metaReg, cache)

	stack := state.NewStack()
	stack.Push(play)
	stack.ApplyPending()

	loop := engine.NewLoop(cfg, message.NewBus(), stack)
	loop.SetRenderHook(func(screen *ebiten.Image) {
		play.Rendering.Screen = screen
	})

	return &App{
		Loop:   loop,
		Meta:   metaReg,
		Play:   play,
		Title:  "arkgo",
		Width:  1280,
		Height: 720,
	}
}

// Run starts the ebiten window and blocks until the stack empties or the
// host requests a close.
func (a *App) Run() error {
	ebiten.SetWindowSize(a.Width, a.Height)
	ebiten.SetWindowTitle(a.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(a.Loop)
}
