package glm

// Camera is a 2d pan & zoom transform from world to screen space.
type Camera struct {
	Scale     float32
	Translate Vec2f

	// limits for Scale, ignored if zero
	MinScale float32
	MaxScale float32
}

func NewCamera() Camera {
	return Camera{
		Scale:    1,
		MinScale: 0.1,
		MaxScale: 16,
	}
}

// PanZoom moves the camera by pan screen pixels and zooms by the given factor,
// keeping origin (in screen space) fixed. The zoom factor is limited so that
// the resulting Scale stays within MinScale and MaxScale.
func (c *Camera) PanZoom(pan, origin Vec2f, zoom float32) {
	if c.MinScale > 0 && c.Scale*zoom < c.MinScale {
		zoom = c.MinScale / c.Scale
	} else if c.MaxScale > 0 && c.Scale*zoom > c.MaxScale {
		zoom = c.MaxScale / c.Scale
	}

	c.Translate = c.Translate.MulScalar(zoom).
		Sub(origin.MulScalar(zoom)).
		Add(origin).
		Add(pan)

	c.Scale *= zoom
}

// Transform returns the world to screen transform.
func (c *Camera) Transform() Mat3f {
	return TranslationMat3(c.Translate[0], c.Translate[1]).Scale(c.Scale, c.Scale)
}
