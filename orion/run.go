package orion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/gl2d/glimpse"
)

type RunOptions struct {
	// engine to run. This is the only field that is required
	Module Module

	// used if Module can not acquire its drawing context
	Fallback Module

	Window glimpse.WindowOptions

	OnReady func(license string)
	OnError func(win glimpse.Window, err error)
}

// Run creates a window and renders into it until the window is closed
// or ctx is done.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Module == nil {
		return errors.New("Module must not be nil")
	}

	win, err := glimpse.NewWindow(opts.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	surfaceOpts := SurfaceOptions{OnReady: opts.OnReady}
	if opts.OnError != nil {
		surfaceOpts.OnError = func(err error) { opts.OnError(win, err) }
	}

	surface, err := mountWithFallback(ctx, win, opts.Module, opts.Fallback, surfaceOpts)
	if err != nil {
		return err
	}

	runErr := win.Run(ctx)

	// let the render loop observe the cancellation and free the engine
	surface.Unmount()
	win.Flush()

	return runErr
}

func mountWithFallback(ctx context.Context, host glimpse.Host, module, fallback Module, opts SurfaceOptions) (*Surface, error) {
	surface := NewSurface(host, module, opts)

	err := surface.Mount(ctx)
	if errors.Is(err, glimpse.ErrContextUnavailable) && fallback != nil {
		slog.Warn("Drawing context unavailable, using fallback engine",
			slog.String("err", err.Error()),
		)

		surface = NewSurface(host, fallback, opts)
		err = surface.Mount(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("mount surface: %w", err)
	}

	return surface, nil
}
