// Command game runs the sample host application: one window, one
// gameplay state, driven by the engine loop.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/core"
	"github.com/barhaim/arkgo/internal/engine"
)

func main() {
	cfg := engine.Config{
		FixedStep:     engine.DefaultFixedStep,
		ResourcesRoot: "resources",
		FixedStepMode: true,
	}

	app := core.NewApp(cfg)
	app.Play.SpawnSprite(components.Vector2{X: float64(app.Width) / 2, Y: float64(app.Height) / 2}, "player.png")

	if err := app.Run(); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
