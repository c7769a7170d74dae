package glimpse

// WheelEvent is a scroll, mouse wheel or trackpad gesture event.
type WheelEvent struct {
	DeltaX, DeltaY float32

	CtrlKey  bool
	ShiftKey bool

	// suppresses the hosts default scroll or zoom behaviour, may be nil
	PreventDefault func()
}

// PointerEvent is a cursor move in client coordinates.
type PointerEvent struct {
	ClientX, ClientY float32

	PreventDefault func()
}

// Listeners are the event handlers a Host delivers to.
type Listeners struct {
	Wheel       func(ev WheelEvent)
	PointerMove func(ev PointerEvent)
}

// Subscription is returned by Host.Listen
type Subscription interface {
	// Remove unregisters the listeners. Must be called at most once.
	Remove()
}

func preventDefault(fn func()) {
	if fn != nil {
		fn()
	}
}
