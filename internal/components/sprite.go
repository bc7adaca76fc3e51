package components

// Sprite names a cached texture resource and the source rectangle and
// tint to draw it with. The texture itself is not embedded here: systems
// resolve Texture through the resource cache by name each frame, keeping
// the component plain data and cheap to copy.
type Sprite struct {
	Texture string  `json:"texture"`
	Source  Rect    `json:"source"`
	Tint    Color   `json:"tint"`
	Layer   int     `json:"layer"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
}

// NewSprite returns an opaque, visible, untinted Sprite referencing
// texture.
func NewSprite(texture string) Sprite {
	return Sprite{
		Texture: texture,
		Tint:    Color{R: 255, G: 255, B: 255, A: 255},
		Visible: true,
		Opacity: 1,
	}
}
