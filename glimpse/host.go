package glimpse

import (
	"context"
	"errors"
	"image"

	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// ErrContextUnavailable is returned if the host can not provide
// the requested kind of drawing context.
var ErrContextUnavailable = errors.New("drawing context unavailable")

// Host is the container & canvas pair a surface renders into.
type Host interface {
	// ContainerSize returns the size of the containers layout box in css pixels.
	ContainerSize() (uint32, uint32)

	DevicePixelRatio() float32

	// SetBackingSize sets the size of the canvas backing store in device pixels.
	SetBackingSize(width, height uint32)

	// BoundingRect returns the canvas rectangle in client coordinates.
	BoundingRect() glm.Rect2f

	// RequestAnimationFrame runs fn once on the next display frame.
	RequestAnimationFrame(fn func())

	Listen(listeners Listeners) Subscription

	// SurfaceDescriptor acquires a webgpu capable context.
	SurfaceDescriptor() (*wgpu.SurfaceDescriptor, error)

	// Blitter acquires a 2d context to copy cpu rendered images to.
	Blitter() (Blitter, error)
}

type Blitter interface {
	Blit(img image.Image) error
}

// Window is a Host that also owns the frame pump.
type Window interface {
	Host

	// Run pumps display frames until the window is closed or ctx is done.
	Run(ctx context.Context) error

	// Flush runs the frame callbacks that are already scheduled.
	Flush()

	Terminate()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// id of the container element on the web. Created if it does not exist.
	ContainerID string
}

func (opts WindowOptions) withDefaults() WindowOptions {
	if opts.Width == 0 {
		opts.Width = 1000
	}

	if opts.Height == 0 {
		opts.Height = 1000
	}

	if opts.Title == "" {
		opts.Title = "gl2d"
	}

	if opts.ContainerID == "" {
		opts.ContainerID = "surface"
	}

	return opts
}
