// Package raster implements a cpu engine on top of gogpu/gg. It is used
// if the host can not provide a webgpu context.
package raster

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/orion"
)

//go:embed license.txt
var licenseText string

type Module struct {
	// logger passed to gg, defaults to slog.Default
	Logger *slog.Logger

	initialized atomic.Bool
}

var _ orion.Module = (*Module)(nil)

func (m *Module) AcquireContext(host glimpse.Host) (orion.DrawingContext, error) {
	return host.Blitter()
}

func (m *Module) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gg.SetLogger(logger.With(slog.String("engine", "raster")))

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
	blitter, ok := dc.(glimpse.Blitter)
	if !ok {
		return nil, fmt.Errorf("unexpected drawing context %T", dc)
	}

	return &Backend{
		blitter: blitter,
		dc:      gg.NewContext(1, 1),
	}, nil
}

func (m *Module) NewRenderer(backend orion.Backend) (orion.Renderer, error) {
	b, ok := backend.(*Backend)
	if !ok {
		return nil, errors.New("backend was not created by this module")
	}

	return NewRenderer(b), nil
}

// Backend holds the offscreen image and the blitter that copies it to the screen.
type Backend struct {
	blitter glimpse.Blitter
	dc      *gg.Context
}

func (b *Backend) Release() {
	if err := b.dc.Close(); err != nil {
		slog.Warn("Failed to close drawing context", slog.String("err", err.Error()))
	}
}
