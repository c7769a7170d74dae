package pulse

import (
	"fmt"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/gl2d/scene"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Backend owns the webgpu context of one surface.
type Backend struct {
	ctx  *Context
	view *View
}

func (b *Backend) Release() {
	b.ctx.Release()
}

// Renderer draws a checkerboard that can be panned and zoomed.
type Renderer struct {
	backend *Backend
	mesh    *MeshCommand

	camera     glm.Camera
	tiles      []scene.Tile
	background scene.Color

	// backing store size and pixel ratio of the current frame
	width, height uint32
	pixelRatio    float32

	released bool
}

func NewRenderer(backend *Backend) (*Renderer, error) {
	mesh, err := NewMeshCommand(backend.ctx)
	if err != nil {
		return nil, fmt.Errorf("create mesh command: %w", err)
	}

	r := &Renderer{
		backend:    backend,
		mesh:       mesh,
		camera:     glm.NewCamera(),
		tiles:      scene.Checkerboard(scene.CheckerboardOptions{}),
		background: scene.ColorTransparent,
		width:      1,
		height:     1,
		pixelRatio: 1,
	}

	return r, nil
}

func (r *Renderer) BeginFrame(input *glimpse.InputState) {
	geometry := input.Geometry()

	r.pixelRatio = geometry.DevicePixelRatio
	r.width = uint32(float32(geometry.ScreenWidth) * geometry.DevicePixelRatio)
	r.height = uint32(float32(geometry.ScreenHeight) * geometry.DevicePixelRatio)

	scene.ApplyInput(&r.camera, input)
}

func (r *Renderer) Draw() error {
	view := r.backend.view
	view.Configure(r.width, r.height)

	// get the surface texture (the actual screen)
	surface, err := view.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}

	defer func() {
		if surface != nil {
			surface.Release()
		}
	}()

	target, err := surface.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}

	defer target.Release()

	if err := r.clear(target, r.background); err != nil {
		return fmt.Errorf("clear surface: %w", err)
	}

	width, height := view.Size()
	transform := ClipTransform(width, height).Mul(scene.ScreenTransform(&r.camera, r.pixelRatio))

	for _, tile := range r.tiles {
		if err := r.mesh.DrawTile(target, view.Format(), transform, tile); err != nil {
			return fmt.Errorf("draw tile: %w", err)
		}
	}

	if err := r.mesh.Flush(target, view.Format()); err != nil {
		return fmt.Errorf("flush mesh: %w", err)
	}

	view.Surface.Present()

	// we do not need to release the screen if present was successful
	surface = nil

	return nil
}

func (r *Renderer) clear(target *wgpu.TextureView, color scene.Color) error {
	ctx := r.backend.ctx

	enc, err := ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "ClearTexture"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	cr, cg, cb, ca := color.Components()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Clear",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    target,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(cr),
					G: float64(cg),
					B: float64(cb),
					A: float64(ca),
				},
			},
		},
	})

	err = pass.End()
	pass.Release()

	if err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTexture"})
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer buf.Release()

	ctx.Submit(buf)

	return nil
}

// Camera returns the current camera of the renderer.
func (r *Renderer) Camera() glm.Camera {
	return r.camera
}

// Release frees the gpu resources including the backend. Only the first call has an effect.
func (r *Renderer) Release() {
	if r.released {
		return
	}

	r.released = true

	r.mesh.Release()
	r.backend.Release()
}
