package glimpse

import "github.com/oliverbestmann/gl2d/glm"

// Translator maps raw host events onto an InputState. Until an InputState
// is attached, events are dropped silently.
type Translator struct {
	host  Host
	input *InputState
}

func NewTranslator(host Host) *Translator {
	return &Translator{host: host}
}

func (t *Translator) Attach(input *InputState) {
	t.input = input
}

func (t *Translator) Detach() {
	t.input = nil
}

func (t *Translator) Ready() bool {
	return t.input != nil
}

func (t *Translator) Listeners() Listeners {
	return Listeners{
		Wheel:       t.OnWheel,
		PointerMove: t.OnPointerMove,
	}
}

func (t *Translator) OnWheel(ev WheelEvent) {
	preventDefault(ev.PreventDefault)

	if t.input == nil {
		return
	}

	switch {
	case ev.CtrlKey:
		// pinch gesture on trackpads, ctrl+wheel on mice
		t.input.AddPinch(ev.DeltaY)

	case ev.ShiftKey:
		// shift swaps the scroll axes
		t.input.AddWheel(ev.DeltaY, ev.DeltaX)

	default:
		t.input.AddWheel(ev.DeltaX, ev.DeltaY)
	}
}

func (t *Translator) OnPointerMove(ev PointerEvent) {
	preventDefault(ev.PreventDefault)

	if t.input == nil {
		return
	}

	rect := t.host.BoundingRect()
	pos := rect.Local(glm.Vec2f{ev.ClientX, ev.ClientY})
	t.input.MoveTo(pos.XY())
}
