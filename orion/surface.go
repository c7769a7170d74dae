package orion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oliverbestmann/gl2d/glimpse"
)

type SurfaceOptions struct {
	// called with the engines license notice once the engine is ready
	OnReady func(license string)

	// called with fatal initialization errors and errors from drawing a frame
	OnError func(err error)

	Logger *slog.Logger
}

// Surface owns one host and the render loop running on it.
type Surface struct {
	host   glimpse.Host
	module Module
	opts   SurfaceOptions
	logger *slog.Logger

	translator   *glimpse.Translator
	subscription glimpse.Subscription
	loop         *RenderLoop
	input        *glimpse.InputState

	mounted   bool
	unmounted bool
	teardown  sync.Once
}

func NewSurface(host glimpse.Host, module Module, opts SurfaceOptions) *Surface {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	logger := opts.Logger

	if opts.OnReady == nil {
		opts.OnReady = func(license string) {
			logger.Debug("Engine ready", slog.Int("licenseLength", len(license)))
		}
	}

	if opts.OnError == nil {
		opts.OnError = func(err error) {
			logger.Error("Surface error", slog.String("err", err.Error()))
		}
	}

	return &Surface{
		host:       host,
		module:     module,
		opts:       opts,
		logger:     logger,
		translator: glimpse.NewTranslator(host),
	}
}

// Mount acquires the drawing context, registers the event listeners
// and starts loading the engine. The render loop starts once the engine is ready.
func (s *Surface) Mount(ctx context.Context) error {
	if s.unmounted {
		return ErrUnmounted
	}

	if s.mounted {
		return ErrAlreadyMounted
	}

	s.mounted = true

	dc, err := s.module.AcquireContext(s.host)
	if err != nil {
		return fmt.Errorf("acquire drawing context: %w", err)
	}

	s.loop = newRenderLoop(s.host, s.logger, s.opts.OnError)
	s.subscription = s.host.Listen(s.translator.Listeners())

	s.logger.Info("Surface mounted, initializing engine")

	go func() {
		err := s.module.Init(ctx)

		// continue on the frame thread
		s.host.RequestAnimationFrame(func() { s.ready(dc, err) })
	}()

	return nil
}

func (s *Surface) ready(dc DrawingContext, initErr error) {
	if initErr != nil {
		s.failed(initErr)
		return
	}

	renderer, err := s.newRenderer(dc)
	if err != nil {
		s.failed(err)
		return
	}

	s.input = glimpse.NewInputState()

	// if the surface was unmounted in the meantime, the first
	// tick releases the renderer right away.
	if !s.loop.Cancelled() {
		s.translator.Attach(s.input)
		s.opts.OnReady(s.module.License())
	}

	s.loop.start(renderer, s.input)
}

// failed moves the loop into its failed state. The error is only
// reported if the surface is still mounted.
func (s *Surface) failed(err error) {
	s.loop.fail()

	if s.loop.Cancelled() {
		s.logger.Debug("Engine failed after unmount", slog.String("err", err.Error()))
		return
	}

	s.opts.OnError(fmt.Errorf("%w: %w", ErrEngineInit, err))
}

func (s *Surface) newRenderer(dc DrawingContext) (Renderer, error) {
	backend, err := s.module.NewBackend(dc)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	renderer, err := s.module.NewRenderer(backend)
	if err != nil {
		backend.Release()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return renderer, nil
}

// Unmount stops the render loop and removes the event listeners.
// Calling Unmount more than once has no further effect. A surface
// can not be mounted after it was unmounted.
func (s *Surface) Unmount() {
	s.teardown.Do(func() {
		s.unmounted = true

		if s.loop != nil {
			s.loop.Cancel()
		}

		if s.subscription != nil {
			s.subscription.Remove()
			s.subscription = nil
		}

		s.translator.Detach()

		s.logger.Info("Surface unmounted")
	})
}

func (s *Surface) State() LoopState {
	if s.loop == nil {
		return LoopUninitialized
	}

	return s.loop.State()
}

// Input returns the surfaces input state, nil until the engine is ready.
func (s *Surface) Input() *glimpse.InputState {
	return s.input
}

func (s *Surface) Loop() *RenderLoop {
	return s.loop
}
