package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/resources"
)

// Rendering draws every entity carrying Transform+Sprite onto an ebiten
// screen, sorted by layer. It implements Renderer so the system manager
// walks it during the pre/render/post passes rather than Update.
type Rendering struct {
	Base
	Cache  *resources.Cache
	Screen *ebiten.Image
	ClearColor color.Color
}

// NewRendering returns a Rendering system drawing textures out of cache.
func NewRendering(cache *resources.Cache) *Rendering {
	return &Rendering{Cache: cache, ClearColor: color.Black}
}

type drawable struct {
	transform *components.Transform
	sprite    *components.Sprite
}

func (rs *Rendering) PreRender(r *ecs.Registry) {
	if rs.Screen != nil {
		rs.Screen.Fill(rs.ClearColor)
	}
}

func (rs *Rendering) Render(r *ecs.Registry) {
	if rs.Screen == nil {
		return
	}

	var batch []drawable
	ecs.View2[components.Transform, components.Sprite](r, func(_ ecs.Entity, t *components.Transform, s *components.Sprite) {
		if !s.Visible {
			return
		}
		batch = append(batch, drawable{transform: t, sprite: s})
	})

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].sprite.Layer < batch[j].sprite.Layer
	})

	for _, d := range batch {
		rs.drawOne(d)
	}
}

func (rs *Rendering) drawOne(d drawable) {
	img, ok := resources.Get[*ebiten.Image](rs.Cache, d.sprite.Texture)
	if !ok {
		return
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(d.transform.Scale.X, d.transform.Scale.Y)
	opts.GeoM.Rotate(d.transform.Rotation)
	opts.GeoM.Translate(d.transform.Position.X, d.transform.Position.Y)
	opts.ColorScale.Scale(
		float32(d.sprite.Tint.R)/255,
		float32(d.sprite.Tint.G)/255,
		float32(d.sprite.Tint.B)/255,
		float32(d.sprite.Tint.A)/255*float32(d.sprite.Opacity),
	)
	rs.Screen.DrawImage(img, opts)
}

func (rs *Rendering) PostRender(r *ecs.Registry) {}
