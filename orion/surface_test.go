package orion

import (
	"context"
	"errors"
	"testing"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glimpse/glimpsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceScenario(t *testing.T) {
	host := glimpsetest.NewFakeHost(400, 300, 2)
	module := &fakeModule{}
	rec := &recorder{}

	surface := mountReady(t, host, module, rec)
	assert.Equal(t, []string{"fake license"}, rec.licenses)

	host.Frames(3)

	renderer := module.renderer
	require.NotNil(t, renderer)
	assert.Equal(t, 3, renderer.draws)
	require.Len(t, renderer.frames, 3)

	for _, input := range renderer.frames {
		assert.Equal(t, glimpse.Deltas{}, input.Deltas())
	}

	assert.True(t, host.Wheel(glimpse.WheelEvent{DeltaY: 10, CtrlKey: true}))

	host.Frame()
	require.Len(t, renderer.frames, 4)
	assert.Equal(t, float32(10), renderer.frames[3].Pinch())

	surface.Unmount()
	assert.True(t, surface.Loop().Cancelled())
	assert.False(t, host.Listening())
	assert.Equal(t, 1, host.Removed)

	host.Frames(3)
	assert.Equal(t, 1, renderer.released)
	assert.Equal(t, 1, module.backend.released)
	assert.Equal(t, 4, renderer.draws)
	assert.Equal(t, LoopCancelled, surface.State())
	assert.Empty(t, rec.errors)
}

func TestSurfaceDeltasAccumulateAcrossFrames(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{}

	mountReady(t, host, module, &recorder{})

	host.Wheel(glimpse.WheelEvent{DeltaX: 5, DeltaY: 3})
	host.Frame()

	host.Wheel(glimpse.WheelEvent{DeltaX: 5, DeltaY: 3})
	host.Frame()

	// the fake engine never resets, so the deltas keep adding up
	frames := module.renderer.frames
	require.Len(t, frames, 2)
	assert.Equal(t, glimpse.Deltas{WheelX: 5, WheelY: 3}, frames[0].Deltas())
	assert.Equal(t, glimpse.Deltas{WheelX: 10, WheelY: 6}, frames[1].Deltas())
}

func TestSurfaceDeviceScaledGeometry(t *testing.T) {
	host := glimpsetest.NewFakeHost(400, 300, 2)
	module := &fakeModule{}

	surface := mountReady(t, host, module, &recorder{})
	host.Frame()

	assert.Equal(t, uint32(800), host.BackingWidth)
	assert.Equal(t, uint32(600), host.BackingHeight)

	expected := glimpse.Geometry{ScreenWidth: 400, ScreenHeight: 300, DevicePixelRatio: 2}
	assert.Equal(t, expected, module.renderer.frames[0].Geometry())
	assert.Equal(t, expected, surface.Input().Geometry())

	// the container is read again on every frame
	host.Width, host.Height, host.PixelRatio = 500, 200, 1.5
	host.Frame()

	assert.Equal(t, uint32(750), host.BackingWidth)
	assert.Equal(t, uint32(300), host.BackingHeight)
	assert.Equal(t,
		glimpse.Geometry{ScreenWidth: 500, ScreenHeight: 200, DevicePixelRatio: 1.5},
		module.renderer.frames[1].Geometry(),
	)
}

func TestSurfaceDropsInputWhileStarting(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{gate: make(chan struct{})}

	surface := NewSurface(host, module, (&recorder{}).options())
	require.NoError(t, surface.Mount(context.Background()))
	assert.Equal(t, LoopStarting, surface.State())

	require.NotPanics(t, func() {
		assert.True(t, host.Wheel(glimpse.WheelEvent{DeltaX: 3, DeltaY: 4}))
		assert.True(t, host.PointerMove(10, 10))
	})

	assert.Nil(t, surface.Input())

	close(module.gate)
	awaitInit(t, host)
	host.Frame()

	require.Len(t, module.renderer.frames, 1)
	assert.Equal(t, glimpse.Deltas{}, module.renderer.frames[0].Deltas())
	assert.Equal(t, LoopRunning, surface.State())
}

func TestSurfaceUnmountIsIdempotent(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{}

	surface := mountReady(t, host, module, &recorder{})
	host.Frame()

	require.NotPanics(t, func() {
		surface.Unmount()
		surface.Unmount()
	})

	host.Frames(2)

	surface.Unmount()
	host.Frames(2)

	assert.Equal(t, 1, host.Removed)
	assert.Equal(t, 1, module.renderer.released)
	assert.Equal(t, 1, module.backend.released)
}

func TestSurfaceUnmountWhileStarting(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{gate: make(chan struct{})}
	rec := &recorder{}

	surface := NewSurface(host, module, rec.options())
	require.NoError(t, surface.Mount(context.Background()))

	surface.Unmount()
	assert.Equal(t, 1, host.Removed)

	close(module.gate)
	awaitInit(t, host)

	// the renderer is released on the very next tick, it never draws
	host.Frames(3)

	require.NotNil(t, module.renderer)
	assert.Equal(t, 0, module.renderer.draws)
	assert.Equal(t, 1, module.renderer.released)
	assert.Equal(t, LoopCancelled, surface.State())
	assert.Empty(t, rec.licenses)
	assert.Zero(t, host.Pending())
}

func TestSurfaceInitFailure(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{initErr: errors.New("wasm module failed to load")}
	rec := &recorder{}

	surface := mountReady(t, host, module, rec)

	require.Len(t, rec.errors, 1)
	assert.ErrorIs(t, rec.errors[0], ErrEngineInit)
	assert.ErrorContains(t, rec.errors[0], "wasm module failed to load")

	assert.Equal(t, LoopFailed, surface.State())
	assert.Zero(t, host.Pending())
	assert.Nil(t, module.renderer)
	assert.Empty(t, rec.licenses)

	surface.Unmount()
	assert.Equal(t, 1, host.Removed)
}

func TestSurfaceRendererFailureReleasesBackend(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{rendererErr: errors.New("no adapter")}
	rec := &recorder{}

	surface := mountReady(t, host, module, rec)

	require.Len(t, rec.errors, 1)
	assert.ErrorIs(t, rec.errors[0], ErrEngineInit)
	assert.Equal(t, 1, module.backend.released)
	assert.Equal(t, LoopFailed, surface.State())
}

func TestSurfaceContextUnavailable(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	host.SurfaceErr = glimpse.ErrContextUnavailable

	surface := NewSurface(host, &fakeModule{}, (&recorder{}).options())

	err := surface.Mount(context.Background())
	require.ErrorIs(t, err, glimpse.ErrContextUnavailable)

	assert.Zero(t, host.Subscribed)
	assert.Zero(t, host.Pending())

	require.NotPanics(t, surface.Unmount)
}

func TestSurfaceMountTwice(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)

	surface := mountReady(t, host, &fakeModule{}, &recorder{})
	assert.ErrorIs(t, surface.Mount(context.Background()), ErrAlreadyMounted)
	assert.Equal(t, 1, host.Subscribed)
}

func TestMountWithFallback(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	host.SurfaceErr = glimpse.ErrContextUnavailable

	fallback := &blitterModule{fakeModule: &fakeModule{}}

	surface, err := mountWithFallback(context.Background(), host, &fakeModule{}, fallback, (&recorder{}).options())
	require.NoError(t, err)

	awaitInit(t, host)
	host.Frame()

	assert.Equal(t, 1, fallback.renderer.draws)
	assert.Equal(t, LoopRunning, surface.State())
}

func TestMountWithoutFallback(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	host.SurfaceErr = glimpse.ErrContextUnavailable

	_, err := mountWithFallback(context.Background(), host, &fakeModule{}, nil, (&recorder{}).options())
	assert.ErrorIs(t, err, glimpse.ErrContextUnavailable)
}

// blitterModule acquires a 2d context instead of a webgpu surface
type blitterModule struct {
	*fakeModule
}

func (m *blitterModule) AcquireContext(host glimpse.Host) (DrawingContext, error) {
	return host.Blitter()
}

func TestSurfaceMountAfterUnmount(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{}

	surface := NewSurface(host, module, (&recorder{}).options())
	surface.Unmount()

	err := surface.Mount(context.Background())
	require.ErrorIs(t, err, ErrUnmounted)

	host.Frames(2)

	assert.Zero(t, host.Subscribed)
	assert.False(t, host.Listening())
	assert.Zero(t, host.Pending())
	assert.Nil(t, module.renderer)
	assert.Equal(t, LoopUninitialized, surface.State())
}

func TestSurfaceRendererFailureAfterUnmount(t *testing.T) {
	host := glimpsetest.NewFakeHost(100, 100, 1)
	module := &fakeModule{gate: make(chan struct{}), rendererErr: errors.New("no adapter")}
	rec := &recorder{}

	surface := NewSurface(host, module, rec.options())
	require.NoError(t, surface.Mount(context.Background()))

	surface.Unmount()

	close(module.gate)
	awaitInit(t, host)

	assert.Empty(t, rec.errors)
	assert.Equal(t, 1, module.backend.released)
	assert.Equal(t, LoopFailed, surface.State())
}
