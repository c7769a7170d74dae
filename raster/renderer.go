package raster

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/gl2d/scene"
)

// Renderer draws the same checkerboard as the webgpu engine.
type Renderer struct {
	backend *Backend

	camera     glm.Camera
	tiles      []scene.Tile
	background scene.Color

	width, height uint32
	pixelRatio    float32

	released bool
}

func NewRenderer(backend *Backend) *Renderer {
	return &Renderer{
		backend:    backend,
		camera:     glm.NewCamera(),
		tiles:      scene.Checkerboard(scene.CheckerboardOptions{}),
		background: scene.ColorTransparent,
		width:      1,
		height:     1,
		pixelRatio: 1,
	}
}

func (r *Renderer) BeginFrame(input *glimpse.InputState) {
	geometry := input.Geometry()

	r.pixelRatio = geometry.DevicePixelRatio
	r.width = uint32(float32(geometry.ScreenWidth) * geometry.DevicePixelRatio)
	r.height = uint32(float32(geometry.ScreenHeight) * geometry.DevicePixelRatio)

	scene.ApplyInput(&r.camera, input)
}

func (r *Renderer) Draw() error {
	dc := r.backend.dc

	err := dc.Resize(int(max(r.width, 1)), int(max(r.height, 1)))
	if err != nil {
		return fmt.Errorf("resize image: %w", err)
	}

	dc.ClearWithColor(toRGBA(r.background))

	transform := scene.ScreenTransform(&r.camera, r.pixelRatio)

	for _, tile := range r.tiles {
		dc.SetTransform(toMatrix(transform.Mul(tile.Transform)))
		color := toRGBA(tile.Color)
		dc.SetRGBA(color.R, color.G, color.B, color.A)
		dc.DrawRectangle(0, 0, 1, 1)

		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill tile: %w", err)
		}
	}

	dc.Identity()

	if err := r.backend.blitter.Blit(dc.Image()); err != nil {
		return fmt.Errorf("blit image: %w", err)
	}

	return nil
}

func (r *Renderer) Camera() glm.Camera {
	return r.camera
}

func (r *Renderer) Release() {
	if r.released {
		return
	}

	r.released = true
	r.backend.Release()
}

func toMatrix(m glm.Mat3f) gg.Matrix {
	a, b, c, d, e, f := m.Affine()

	return gg.Matrix{
		A: float64(a), B: float64(b), C: float64(c),
		D: float64(d), E: float64(e), F: float64(f),
	}
}

func toRGBA(color scene.Color) gg.RGBA {
	r, g, b, a := color.SRGBA()
	return gg.RGBA2(float64(r), float64(g), float64(b), float64(a))
}
