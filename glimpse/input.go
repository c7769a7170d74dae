package glimpse

import "github.com/oliverbestmann/gl2d/glm"

// Pointer holds the last known cursor position in surface local
// css pixels. Written by the Translator only.
type Pointer struct {
	MouseX, MouseY float32
}

// Deltas accumulate scroll and pinch input since the engine last
// consumed them. The Translator adds to them, only an engine may reset them.
type Deltas struct {
	WheelX, WheelY float32
	Pinch          float32
}

// Geometry is the surface size as last pushed by the render loop.
type Geometry struct {
	ScreenWidth, ScreenHeight uint32
	DevicePixelRatio          float32
}

// InputState is the normalized input record handed to the engine each frame.
// One instance exists per running surface.
type InputState struct {
	pointer  Pointer
	deltas   Deltas
	geometry Geometry
}

func NewInputState() *InputState {
	return &InputState{
		geometry: Geometry{
			ScreenWidth:      1,
			ScreenHeight:     1,
			DevicePixelRatio: 1,
		},
	}
}

func (s *InputState) MoveTo(x, y float32) {
	s.pointer.MouseX = x
	s.pointer.MouseY = y
}

func (s *InputState) AddWheel(dx, dy float32) {
	s.deltas.WheelX += dx
	s.deltas.WheelY += dy
}

func (s *InputState) AddPinch(d float32) {
	s.deltas.Pinch += d
}

func (s *InputState) SetScreenSize(width, height uint32, pixelRatio float32) {
	s.geometry = Geometry{
		ScreenWidth:      width,
		ScreenHeight:     height,
		DevicePixelRatio: pixelRatio,
	}
}

// ResetDeltas marks the accumulated deltas as consumed. This is for engines,
// the integration layer itself never calls it.
func (s *InputState) ResetDeltas() {
	s.deltas = Deltas{}
}

func (s *InputState) Mouse() glm.Vec2f {
	return glm.Vec2f{s.pointer.MouseX, s.pointer.MouseY}
}

func (s *InputState) Wheel() glm.Vec2f {
	return glm.Vec2f{s.deltas.WheelX, s.deltas.WheelY}
}

func (s *InputState) Pinch() float32 {
	return s.deltas.Pinch
}

func (s *InputState) Pointer() Pointer {
	return s.pointer
}

func (s *InputState) Deltas() Deltas {
	return s.deltas
}

func (s *InputState) Geometry() Geometry {
	return s.geometry
}
