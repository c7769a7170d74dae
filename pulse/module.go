package pulse

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/orion"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed license.txt
var licenseText string

// Module is the webgpu engine.
type Module struct {
	initialized atomic.Bool
}

var _ orion.Module = (*Module)(nil)

func (m *Module) AcquireContext(host glimpse.Host) (orion.DrawingContext, error) {
	return host.SurfaceDescriptor()
}

func (m *Module) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ConfigureLogLevel()

	slog.Info("WebGPU engine initialized")
	m.initialized.Store(true)

	return nil
}

func (m *Module) License() string {
	if !m.initialized.Load() {
		panic("License must only be called after Init")
	}

	return licenseText
}

func (m *Module) NewBackend(dc orion.DrawingContext) (orion.Backend, error) {
	sd, ok := dc.(*wgpu.SurfaceDescriptor)
	if !ok {
		return nil, fmt.Errorf("unexpected drawing context %T", dc)
	}

	ctx, err := New(sd)
	if err != nil {
		return nil, fmt.Errorf("create webgpu context: %w", err)
	}

	return &Backend{ctx: ctx, view: NewView(ctx)}, nil
}

func (m *Module) NewRenderer(backend orion.Backend) (orion.Renderer, error) {
	b, ok := backend.(*Backend)
	if !ok {
		return nil, errors.New("backend was not created by this module")
	}

	renderer, err := NewRenderer(b)
	if err != nil {
		return nil, err
	}

	return renderer, nil
}
