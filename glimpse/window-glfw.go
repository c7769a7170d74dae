//go:build !js

package glimpse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
	"github.com/pkg/profile"
)

func init() {
	// glfw must only be called from the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	win  *glfw.Window
	prof interface{ Stop() }

	frames frameQueue

	backingWidth, backingHeight uint32
}

func NewWindow(opts WindowOptions) (Window, error) {
	opts = opts.withDefaults()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}

	if os.Getenv("GL2D_PROFILE") == "cpu" {
		w.prof = profile.Start(profile.CPUProfile)
	}

	return w, nil
}

func (g *glfwWindow) ContainerSize() (uint32, uint32) {
	width, height := g.win.GetSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) DevicePixelRatio() float32 {
	scaleX, _ := g.win.GetContentScale()
	return scaleX
}

func (g *glfwWindow) SetBackingSize(width, height uint32) {
	// the framebuffer is sized by the window system, we only record
	// what the render loop expects.
	if g.backingWidth != width || g.backingHeight != height {
		fbWidth, fbHeight := g.win.GetFramebufferSize()

		slog.Debug("Backing size changed",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
			slog.Int("framebufferWidth", fbWidth),
			slog.Int("framebufferHeight", fbHeight),
		)

		g.backingWidth = width
		g.backingHeight = height
	}
}

func (g *glfwWindow) BoundingRect() glm.Rect2f {
	// cursor positions are already relative to the client area
	width, height := g.win.GetSize()
	return glm.RectFromSize(glm.Vec2f{}, glm.Vec2f{float32(width), float32(height)})
}

func (g *glfwWindow) RequestAnimationFrame(fn func()) {
	g.frames.push(fn)
}

type glfwSubscription struct {
	win *glfw.Window
}

func (g *glfwWindow) Listen(listeners Listeners) Subscription {
	g.win.SetScrollCallback(func(win *glfw.Window, xoff float64, yoff float64) {
		// glfw reports scroll offsets in lines with inverted direction
		// compared to the browsers pixel deltas.
		const pixelsPerLine = 16

		listeners.Wheel(WheelEvent{
			DeltaX:   float32(-xoff * pixelsPerLine),
			DeltaY:   float32(-yoff * pixelsPerLine),
			CtrlKey:  isPressed(win, glfw.KeyLeftControl, glfw.KeyRightControl),
			ShiftKey: isPressed(win, glfw.KeyLeftShift, glfw.KeyRightShift),
		})
	})

	g.win.SetCursorPosCallback(func(win *glfw.Window, xpos float64, ypos float64) {
		listeners.PointerMove(PointerEvent{
			ClientX: float32(xpos),
			ClientY: float32(ypos),
		})
	})

	return &glfwSubscription{win: g.win}
}

func (s *glfwSubscription) Remove() {
	s.win.SetScrollCallback(nil)
	s.win.SetCursorPosCallback(nil)
}

func isPressed(win *glfw.Window, keys ...glfw.Key) bool {
	for _, key := range keys {
		if win.GetKey(key) == glfw.Press {
			return true
		}
	}

	return false
}

func (g *glfwWindow) SurfaceDescriptor() (*wgpu.SurfaceDescriptor, error) {
	return wgpuglfw.GetSurfaceDescriptor(g.win), nil
}

func (g *glfwWindow) Blitter() (Blitter, error) {
	// the window is created without a client api, there is nothing to blit to
	return nil, fmt.Errorf("glfw: %w", ErrContextUnavailable)
}

func (g *glfwWindow) Run(ctx context.Context) error {
	for !g.win.ShouldClose() && ctx.Err() == nil {
		if g.frames.hasPending() {
			glfw.PollEvents()
		} else {
			// nothing scheduled, e.g. while the engine initializes
			glfw.WaitEventsTimeout(1.0 / 60.0)
		}

		g.Flush()
	}

	return nil
}

func (g *glfwWindow) Flush() {
	g.frames.flush()
}

func (g *glfwWindow) Terminate() {
	if g.prof != nil {
		g.prof.Stop()
	}

	g.win.Destroy()
	glfw.Terminate()
}
