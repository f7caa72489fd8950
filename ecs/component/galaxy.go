package component

// GalaxySprite is one decorative galaxy in the starfield. Opacity is the
// sprite's own brightness; the reveal multiplies it.
type GalaxySprite struct {
	Index   int
	Image   Texture
	Scale   float64
	Opacity float64
	Speed   float64
}

var GalaxySpriteComponent = NewComponent[GalaxySprite]()
