package orion

import (
	"context"

	"github.com/oliverbestmann/gl2d/glimpse"
)

// DrawingContext is the opaque handle a Module renders into, e.g.
// a webgpu surface descriptor or a 2d canvas context.
type DrawingContext any

// Module is a rendering engine that is loaded asynchronously
// once per surface.
type Module interface {
	// AcquireContext obtains the drawing context from the host. It is called
	// synchronously when a surface is mounted, before any frame is scheduled.
	AcquireContext(host glimpse.Host) (DrawingContext, error)

	// Init loads the engine. It runs on its own goroutine and must not
	// touch the host.
	Init(ctx context.Context) error

	// License returns the engines license notice.
	// Must only be called after Init succeeded.
	License() string

	NewBackend(dc DrawingContext) (Backend, error)

	// NewRenderer creates a renderer that takes ownership of the backend.
	NewRenderer(backend Backend) (Renderer, error)
}

type Backend interface {
	Release()
}

// Renderer is the per surface engine instance driven by the RenderLoop.
type Renderer interface {
	// BeginFrame pushes the current input to the engine. The engine decides
	// if and when to reset the accumulated deltas.
	BeginFrame(input *glimpse.InputState)

	Draw() error

	// Release frees all engine resources, including the backend.
	Release()
}
