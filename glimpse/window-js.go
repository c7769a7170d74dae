//go:build js

package glimpse

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"syscall/js"

	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type jsWindow struct {
	container js.Value
	canvas    js.Value

	frameFunc js.Func
	frames    frameQueue

	// id of the outstanding requestAnimationFrame call
	requestID js.Value
}

func NewWindow(opts WindowOptions) (Window, error) {
	opts = opts.withDefaults()

	document := js.Global().Get("document")
	document.Set("title", opts.Title)

	container := document.Call("getElementById", opts.ContainerID)
	if container.IsNull() {
		container = document.Call("createElement", "div")
		container.Set("id", opts.ContainerID)
		container.Get("style").Set("width", fmt.Sprintf("%dpx", opts.Width))
		container.Get("style").Set("height", fmt.Sprintf("%dpx", opts.Height))
		document.Get("body").Call("appendChild", container)
	}

	canvas := document.Call("createElement", "canvas")
	canvas.Set("style", "display:block; width:100%; height:100%")
	container.Call("appendChild", canvas)

	win := &jsWindow{
		container: container,
		canvas:    canvas,
	}

	win.frameFunc = js.FuncOf(func(this js.Value, args []js.Value) any {
		win.frames.run()
		return nil
	})

	win.frames.request = func() {
		win.requestID = js.Global().Call("requestAnimationFrame", win.frameFunc)
	}

	win.frames.cancel = func() {
		js.Global().Call("cancelAnimationFrame", win.requestID)
	}

	return win, nil
}

func (w *jsWindow) ContainerSize() (uint32, uint32) {
	width := w.container.Get("clientWidth").Int()
	height := w.container.Get("clientHeight").Int()
	return uint32(width), uint32(height)
}

func (w *jsWindow) DevicePixelRatio() float32 {
	return float32(js.Global().Get("devicePixelRatio").Float())
}

func (w *jsWindow) SetBackingSize(width, height uint32) {
	if w.canvas.Get("width").Int() != int(width) {
		w.canvas.Set("width", width)
	}

	if w.canvas.Get("height").Int() != int(height) {
		w.canvas.Set("height", height)
	}
}

func (w *jsWindow) BoundingRect() glm.Rect2f {
	rect := w.canvas.Call("getBoundingClientRect")

	return glm.RectFromSize(
		glm.Vec2f{float32(rect.Get("left").Float()), float32(rect.Get("top").Float())},
		glm.Vec2f{float32(rect.Get("width").Float()), float32(rect.Get("height").Float())},
	)
}

func (w *jsWindow) RequestAnimationFrame(fn func()) {
	w.frames.push(fn)
}

type jsSubscription struct {
	canvas  js.Value
	wheel   js.Func
	pointer js.Func
}

func (w *jsWindow) Listen(listeners Listeners) Subscription {
	sub := &jsSubscription{canvas: w.canvas}

	sub.wheel = js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]

		listeners.Wheel(WheelEvent{
			DeltaX:         float32(e.Get("deltaX").Float()),
			DeltaY:         float32(e.Get("deltaY").Float()),
			CtrlKey:        e.Get("ctrlKey").Bool(),
			ShiftKey:       e.Get("shiftKey").Bool(),
			PreventDefault: func() { e.Call("preventDefault") },
		})

		return nil
	})

	sub.pointer = js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]

		listeners.PointerMove(PointerEvent{
			ClientX:        float32(e.Get("clientX").Float()),
			ClientY:        float32(e.Get("clientY").Float()),
			PreventDefault: func() { e.Call("preventDefault") },
		})

		return nil
	})

	// wheel listeners must not be passive, otherwise preventDefault is ignored
	options := js.Global().Get("Object").New()
	options.Set("passive", false)

	w.canvas.Call("addEventListener", "wheel", sub.wheel, options)
	w.canvas.Call("addEventListener", "mousemove", sub.pointer)

	return sub
}

func (s *jsSubscription) Remove() {
	s.canvas.Call("removeEventListener", "wheel", s.wheel)
	s.canvas.Call("removeEventListener", "mousemove", s.pointer)

	s.wheel.Release()
	s.pointer.Release()
}

func (w *jsWindow) SurfaceDescriptor() (*wgpu.SurfaceDescriptor, error) {
	gpu := js.Global().Get("navigator").Get("gpu")
	if gpu.IsUndefined() || gpu.IsNull() {
		return nil, fmt.Errorf("webgpu: %w", ErrContextUnavailable)
	}

	// the js implementation of wgpu binds the surface to the canvas of the page
	return &wgpu.SurfaceDescriptor{}, nil
}

func (w *jsWindow) Blitter() (Blitter, error) {
	ctx := w.canvas.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, fmt.Errorf("canvas 2d: %w", ErrContextUnavailable)
	}

	return &jsBlitter{ctx: ctx}, nil
}

type jsBlitter struct {
	ctx js.Value

	// reused between frames, resized when the image size changes
	buffer js.Value
	rgba   *image.RGBA
}

func (b *jsBlitter) Blit(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() {
		if b.rgba == nil || b.rgba.Bounds() != bounds {
			b.rgba = image.NewRGBA(bounds)
		}

		draw.Draw(b.rgba, bounds, img, bounds.Min, draw.Src)
		rgba = b.rgba
	}

	size := len(rgba.Pix)
	if b.buffer.IsUndefined() || b.buffer.Get("length").Int() != size {
		b.buffer = js.Global().Get("Uint8ClampedArray").New(size)
	}

	js.CopyBytesToJS(b.buffer, rgba.Pix)

	imageData := js.Global().Get("ImageData").New(b.buffer, bounds.Dx(), bounds.Dy())
	b.ctx.Call("putImageData", imageData, 0, 0)

	return nil
}

func (w *jsWindow) Run(ctx context.Context) error {
	// the browser keeps calling our frame callbacks, we only need
	// to keep the go runtime alive.
	<-ctx.Done()
	return nil
}

func (w *jsWindow) Flush() {
	w.frames.flush()
}

func (w *jsWindow) Terminate() {
	slog.Debug("Terminate window")

	// the browser must not call frameFunc once it is released
	w.frames.withdraw()

	w.canvas.Call("remove")
	w.frameFunc.Release()
}

// ShowError replaces the canvas with a textual error message.
func ShowError(win Window, err error) {
	w, ok := win.(*jsWindow)
	if !ok {
		return
	}

	document := js.Global().Get("document")

	pre := document.Call("createElement", "pre")
	pre.Set("className", "surface-error")
	pre.Set("textContent", err.Error())

	w.canvas.Get("style").Set("display", "none")
	w.container.Call("appendChild", pre)
}
