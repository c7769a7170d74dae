// Package glimpsetest provides a Host implementation that is driven
// manually by tests: frames run only when Frame is called.
package glimpsetest

import (
	"image"
	"sync"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type FakeHost struct {
	Width, Height uint32
	PixelRatio    float32
	Rect          glm.Rect2f

	// backing store size as set by the render loop
	BackingWidth, BackingHeight uint32

	// errors returned when acquiring a drawing context
	SurfaceErr error
	BlitterErr error

	Blits []image.Image

	listeners  *glimpse.Listeners
	Subscribed int
	Removed    int
	Prevented  int

	// engine initialization schedules from another goroutine
	mu      sync.Mutex
	pending []func()
}

func NewFakeHost(width, height uint32, pixelRatio float32) *FakeHost {
	return &FakeHost{
		Width:      width,
		Height:     height,
		PixelRatio: pixelRatio,
		Rect: glm.RectFromSize(
			glm.Vec2f{},
			glm.Vec2f{float32(width), float32(height)},
		),
	}
}

func (h *FakeHost) ContainerSize() (uint32, uint32) {
	return h.Width, h.Height
}

func (h *FakeHost) DevicePixelRatio() float32 {
	return h.PixelRatio
}

func (h *FakeHost) SetBackingSize(width, height uint32) {
	h.BackingWidth = width
	h.BackingHeight = height
}

func (h *FakeHost) BoundingRect() glm.Rect2f {
	return h.Rect
}

func (h *FakeHost) RequestAnimationFrame(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending = append(h.pending, fn)
}

// Pending returns the number of callbacks waiting for the next frame.
func (h *FakeHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.pending)
}

// Frame runs all callbacks scheduled before this call. Callbacks scheduled
// while running are deferred to the next call, just like the browser does.
func (h *FakeHost) Frame() {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Frames calls Frame n times
func (h *FakeHost) Frames(n int) {
	for range n {
		h.Frame()
	}
}

func (h *FakeHost) Listen(listeners glimpse.Listeners) glimpse.Subscription {
	h.Subscribed++
	h.listeners = &listeners
	return &subscription{host: h}
}

// Listening reports whether listeners are currently registered.
func (h *FakeHost) Listening() bool {
	return h.listeners != nil
}

// Wheel dispatches a wheel event to the registered listener. Returns
// true if the listener prevented the default action.
func (h *FakeHost) Wheel(ev glimpse.WheelEvent) bool {
	if h.listeners == nil {
		return false
	}

	var prevented bool
	ev.PreventDefault = func() { prevented = true; h.Prevented++ }

	h.listeners.Wheel(ev)

	return prevented
}

// PointerMove dispatches a pointer move event in client coordinates.
func (h *FakeHost) PointerMove(x, y float32) bool {
	if h.listeners == nil {
		return false
	}

	var prevented bool

	h.listeners.PointerMove(glimpse.PointerEvent{
		ClientX:        x,
		ClientY:        y,
		PreventDefault: func() { prevented = true; h.Prevented++ },
	})

	return prevented
}

func (h *FakeHost) SurfaceDescriptor() (*wgpu.SurfaceDescriptor, error) {
	if h.SurfaceErr != nil {
		return nil, h.SurfaceErr
	}

	return &wgpu.SurfaceDescriptor{}, nil
}

func (h *FakeHost) Blitter() (glimpse.Blitter, error) {
	if h.BlitterErr != nil {
		return nil, h.BlitterErr
	}

	return blitterFunc(func(img image.Image) error {
		h.Blits = append(h.Blits, img)
		return nil
	}), nil
}

type blitterFunc func(img image.Image) error

func (fn blitterFunc) Blit(img image.Image) error {
	return fn(img)
}

type subscription struct {
	host    *FakeHost
	removed bool
}

func (s *subscription) Remove() {
	if s.removed {
		panic("listeners removed twice")
	}

	s.removed = true
	s.host.Removed++
	s.host.listeners = nil
}
