package gesture

// hoverReceiver is implemented by recognizers that follow a cursor without
// contact. The Dispatcher diffs hit results between hover samples and calls
// these directly; hover never goes through an arena.
type hoverReceiver interface {
	hoverEnter(e PointerEvent)
	hoverUpdate(e PointerEvent)
	hoverLeave(e PointerEvent)
}

// Hover reports a cursor entering, moving over and leaving its region.
type Hover struct {
	recognizerBase

	OnEnter  func(HoverDetails)
	OnUpdate func(HoverDetails)
	OnLeave  func(HoverDetails)

	inside map[int64]bool
}

// NewHover creates a hover recognizer. Hover ignores the button mask.
func NewHover() *Hover {
	r := &Hover{inside: make(map[int64]bool)}
	r.init(r)
	r.buttons = nil
	return r
}

// HandlePointer implements Recognizer. Hover signals delivered directly are
// treated as enter on first sight and update afterwards.
func (r *Hover) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer. Hover never competes in an arena.
func (r *Hover) CanAddPointer(PointerEvent) bool { return false }

// AcceptGesture implements Recognizer.
func (r *Hover) AcceptGesture(PointerID) {}

// RejectGesture implements Recognizer.
func (r *Hover) RejectGesture(PointerID) {}

// Dispose implements Recognizer.
func (r *Hover) Dispose() { clear(r.inside) }

// Inside reports whether the cursor of device is currently over the region.
func (r *Hover) Inside(device int64) bool { return r.inside[device] }

func (r *Hover) handleDown(PointerEvent)   {}
func (r *Hover) handleMove(PointerEvent)   {}
func (r *Hover) handleUp(PointerEvent)     {}
func (r *Hover) handleCancel(PointerEvent) {}

func (r *Hover) handleHover(e PointerEvent) {
	if r.inside[e.DeviceID] {
		r.hoverUpdate(e)
		return
	}
	r.hoverEnter(e)
}

func (r *Hover) hoverEnter(e PointerEvent) {
	if !r.isAllowed(e) || r.inside[e.DeviceID] {
		return
	}
	r.inside[e.DeviceID] = true
	r.fire(r.OnEnter, EventHoverEnter, e)
}

func (r *Hover) hoverUpdate(e PointerEvent) {
	if !r.inside[e.DeviceID] {
		r.hoverEnter(e)
		return
	}
	r.fire(r.OnUpdate, EventHoverUpdate, e)
}

func (r *Hover) hoverLeave(e PointerEvent) {
	if !r.inside[e.DeviceID] {
		return
	}
	delete(r.inside, e.DeviceID)
	r.fire(r.OnLeave, EventHoverLeave, e)
}

func (r *Hover) fire(fn func(HoverDetails), t EventType, e PointerEvent) {
	if fn != nil {
		fn(HoverDetails{Position: e.Position, Delta: e.Delta, Device: e.Device, Timestamp: e.Timestamp})
	}
	ev := GestureEvent{Type: t, Timestamp: e.Timestamp, Position: e.Position, Delta: e.Delta,
		Device: e.Device, Modifiers: e.Modifiers}
	r.emit(ev)
}
