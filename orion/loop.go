package orion

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oliverbestmann/gl2d/glimpse"
)

// RenderLoop drives a Renderer once per display frame until it is cancelled.
type RenderLoop struct {
	host   glimpse.Host
	logger *slog.Logger

	// called with errors returned by Renderer.Draw
	onError func(error)

	state     LoopState
	cancelled atomic.Bool
	release   sync.Once

	renderer Renderer
	input    *glimpse.InputState

	times FrameTimes
}

func newRenderLoop(host glimpse.Host, logger *slog.Logger, onError func(error)) *RenderLoop {
	return &RenderLoop{
		host:    host,
		logger:  logger,
		onError: onError,
		state:   LoopStarting,
	}
}

func (l *RenderLoop) State() LoopState {
	return l.state
}

// Cancel requests the loop to stop. The renderer is released on the next tick.
// Cancel may be called at any time, also before the loop was started.
func (l *RenderLoop) Cancel() {
	l.cancelled.Store(true)
}

func (l *RenderLoop) Cancelled() bool {
	return l.cancelled.Load()
}

// Frames returns the number of frames drawn so far.
func (l *RenderLoop) Frames() uint64 {
	return l.times.FrameCount
}

func (l *RenderLoop) FrameTimes() FrameTimes {
	return l.times
}

// fail moves the loop into the terminal failed state.
func (l *RenderLoop) fail() {
	l.state = LoopFailed
}

// start schedules the first tick. The loop takes ownership of the renderer.
func (l *RenderLoop) start(renderer Renderer, input *glimpse.InputState) {
	l.renderer = renderer
	l.input = input

	l.host.RequestAnimationFrame(l.tick)
}

func (l *RenderLoop) tick() {
	if l.cancelled.Load() {
		l.release.Do(l.releaseRenderer)
		return
	}

	// schedule the next frame before doing any work, a failing
	// frame must not stop the loop.
	l.host.RequestAnimationFrame(l.tick)

	if l.state == LoopStarting {
		l.logger.Info("Render loop running")
		l.state = LoopRunning
	}

	if err := l.frame(); err != nil {
		l.onError(err)
	}

	if l.times.Tick(time.Now()) {
		l.logger.Debug("Frame stats",
			slog.Uint64("frames", l.times.FrameCount),
			slog.Float64("fps", l.times.FPS()),
			slog.Duration("max", l.times.MaxDuration),
		)
	}
}

func (l *RenderLoop) frame() error {
	width, height := l.host.ContainerSize()
	pixelRatio := l.host.DevicePixelRatio()

	l.host.SetBackingSize(
		uint32(float32(width)*pixelRatio),
		uint32(float32(height)*pixelRatio),
	)

	l.input.SetScreenSize(width, height, pixelRatio)

	l.renderer.BeginFrame(l.input)
	return l.renderer.Draw()
}

func (l *RenderLoop) releaseRenderer() {
	l.logger.Info("Render loop cancelled, releasing engine",
		slog.Uint64("frames", l.times.FrameCount),
	)

	l.state = LoopCancelled
	l.renderer.Release()
	l.renderer = nil
	l.input = nil
}
