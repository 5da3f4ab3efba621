package gesture

import "math"

// LineBetweenPointers is the segment between the first two pointers of a
// pinch, used to measure rotation.
type LineBetweenPointers struct {
	StartID PointerID
	Start   Vec2
	EndID   PointerID
	End     Vec2
}

func (l LineBetweenPointers) vector() Vec2 { return l.End.Sub(l.Start) }

// samePointers reports whether both lines join the same pointer pair.
func (l LineBetweenPointers) samePointers(o LineBetweenPointers) bool {
	return l.StartID == o.StartID && l.EndID == o.EndID
}

// RotationBetween returns the signed angle in radians from initial to
// current, positive clockwise in screen coordinates.
func RotationBetween(initial, current LineBetweenPointers) float64 {
	a, b := initial.vector(), current.vector()
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// spanRatio returns current/initial, or 1 when the initial span is not
// positive.
func spanRatio(initial, current float64) float64 {
	if initial <= 0 {
		return 1
	}
	return current / initial
}

type scaleState uint8

const (
	scaleReady scaleState = iota
	scalePossible
	scaleAccepted
	scaleStarted
)

// PinchRotate recognizes two or more pointers scaling and rotating around
// their focal point.
//
// It claims the arena once at least two pointers are down and either the
// span changed by more than ScaleSlop or the focal point moved more than
// PanSlop. Each change in
// the number of pointers ends a started gesture and measures a new baseline,
// so Scale and Rotation are always relative to the current set of pointers.
// Trackpad scale and rotate signals produce a one-shot start, update and end.
type PinchRotate struct {
	oneSequence

	OnStart  func(ScaleStartDetails)
	OnUpdate func(ScaleUpdateDetails)
	OnEnd    func(ScaleEndDetails)

	state scaleState

	initialFocal, currentFocal, lastFocal Vec2
	initialSpan, currentSpan              float64
	initialHSpan, currentHSpan            float64
	initialVSpan, currentVSpan            float64
	initialLine, currentLine              *LineBetweenPointers

	locations map[PointerID]Vec2
	queue     []PointerID
	trackers  map[PointerID]*VelocityTracker
	last      PointerEvent
}

// NewPinchRotate creates a pinch/rotate recognizer.
func NewPinchRotate() *PinchRotate {
	r := &PinchRotate{
		locations: make(map[PointerID]Vec2),
		trackers:  make(map[PointerID]*VelocityTracker),
	}
	r.initSequence(r, r.didStopTrackingLastPointer)
	return r
}

// HandlePointer implements Recognizer.
func (r *PinchRotate) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *PinchRotate) CanAddPointer(e PointerEvent) bool {
	if !r.isAllowed(e) {
		return false
	}
	switch e.Signal {
	case SignalScale, SignalRotate:
		return r.state == scaleReady
	case SignalNormal:
		return true
	}
	return false
}

// Scale returns the current span ratio.
func (r *PinchRotate) Scale() float64 { return spanRatio(r.initialSpan, r.currentSpan) }

// Rotation returns the current rotation in radians.
func (r *PinchRotate) Rotation() float64 {
	if r.initialLine == nil || r.currentLine == nil {
		return 0
	}
	return RotationBetween(*r.initialLine, *r.currentLine)
}

func (r *PinchRotate) handleDown(e PointerEvent) {
	r.startTracking(e.Pointer)
	vt := NewVelocityTracker()
	vt.AddPosition(e.Timestamp, e.Position)
	r.trackers[e.Pointer] = vt
	if r.state == scaleReady {
		r.state = scalePossible
		r.initialSpan, r.currentSpan = 0, 0
		r.initialHSpan, r.currentHSpan = 0, 0
		r.initialVSpan, r.currentVSpan = 0, 0
		r.initialLine, r.currentLine = nil, nil
		clear(r.locations)
		r.queue = r.queue[:0]
	}
	r.locations[e.Pointer] = e.Position
	r.queue = append(r.queue, e.Pointer)
	r.step(e, true, true)
}

func (r *PinchRotate) handleMove(e PointerEvent) {
	if !r.isTracking(e.Pointer) {
		return
	}
	if vt := r.trackers[e.Pointer]; vt != nil {
		vt.AddPosition(e.Timestamp, e.Position)
	}
	r.locations[e.Pointer] = e.Position
	r.step(e, false, true)
}

func (r *PinchRotate) handleUp(e PointerEvent)     { r.lift(e) }
func (r *PinchRotate) handleCancel(e PointerEvent) { r.lift(e) }

func (r *PinchRotate) lift(e PointerEvent) {
	if !r.isTracking(e.Pointer) {
		return
	}
	delete(r.locations, e.Pointer)
	r.queue = removePointer(r.queue, e.Pointer)
	r.step(e, true, false)
	r.stopTracking(e.Pointer)
	delete(r.trackers, e.Pointer)
}

// step recomputes the geometry after e and advances the state machine.
func (r *PinchRotate) step(e PointerEvent, reconfigured, startIfAccepted bool) {
	r.last = e
	r.updateLines()
	r.updateSpans()
	if !reconfigured || r.reconfigure(e.Pointer) {
		r.advance(startIfAccepted)
	}
}

func (r *PinchRotate) updateLines() {
	if len(r.queue) < 2 {
		r.initialLine = r.currentLine
		return
	}
	line := LineBetweenPointers{
		StartID: r.queue[0],
		Start:   r.locations[r.queue[0]],
		EndID:   r.queue[1],
		End:     r.locations[r.queue[1]],
	}
	if r.initialLine != nil && r.initialLine.samePointers(line) {
		r.currentLine = &line
		return
	}
	r.initialLine = &line
	r.currentLine = nil
}

func (r *PinchRotate) updateSpans() {
	n := len(r.locations)
	var focal Vec2
	for _, p := range r.locations {
		focal = focal.Add(p)
	}
	if n > 0 {
		focal = focal.Scale(1 / float64(n))
	}
	r.currentFocal = focal

	var total, h, v float64
	for _, p := range r.locations {
		total += focal.Sub(p).Len()
		h += math.Abs(focal.X - p.X)
		v += math.Abs(focal.Y - p.Y)
	}
	if n > 0 {
		r.currentSpan = total / float64(n)
		r.currentHSpan = h / float64(n)
		r.currentVSpan = v / float64(n)
	} else {
		r.currentSpan, r.currentHSpan, r.currentVSpan = 0, 0, 0
	}
}

// reconfigure takes the current geometry as the new baseline. A started
// gesture ends here; it restarts on the next move.
func (r *PinchRotate) reconfigure(pointer PointerID) bool {
	r.initialFocal = r.currentFocal
	r.lastFocal = r.currentFocal
	r.initialSpan = r.currentSpan
	r.initialHSpan = r.currentHSpan
	r.initialVSpan = r.currentVSpan
	r.initialLine = r.currentLine
	if r.state != scaleStarted {
		return true
	}
	r.state = scaleAccepted
	r.end(r.flingVelocity(r.trackers[pointer]))
	return false
}

func (r *PinchRotate) advance(startIfAccepted bool) {
	if r.state == scaleReady {
		r.state = scalePossible
	}
	if r.state == scalePossible && len(r.locations) >= 2 {
		cfg := r.config()
		spanDelta := math.Abs(r.currentSpan - r.initialSpan)
		focalDelta := r.currentFocal.Sub(r.initialFocal).Len()
		if spanDelta > cfg.ScaleSlop || focalDelta > cfg.PanSlop {
			r.accept()
		}
	} else if r.state >= scaleAccepted {
		r.accept()
	}
	if r.state == scaleAccepted && startIfAccepted {
		r.state = scaleStarted
		r.start()
	}
	if r.state == scaleStarted {
		r.update()
	}
}

// AcceptGesture implements Recognizer.
func (r *PinchRotate) AcceptGesture(pointer PointerID) {
	if r.state != scalePossible || !containsPointer(r.entries, pointer) {
		return
	}
	r.state = scaleStarted
	r.start()
}

// RejectGesture implements Recognizer.
func (r *PinchRotate) RejectGesture(pointer PointerID) {
	delete(r.locations, pointer)
	r.queue = removePointer(r.queue, pointer)
	r.stopTracking(pointer)
	delete(r.trackers, pointer)
}

// Dispose implements Recognizer.
func (r *PinchRotate) Dispose() {
	r.state = scaleReady
	r.tracked = r.tracked[:0]
	r.entries = r.entries[:0]
	clear(r.locations)
	clear(r.trackers)
	r.queue = r.queue[:0]
}

func (r *PinchRotate) didStopTrackingLastPointer(PointerID) {
	if r.state == scalePossible {
		r.state = scaleReady
		r.reject()
		return
	}
	r.state = scaleReady
}

// handleScale turns a trackpad scale or rotate signal into a one-shot
// gesture.
func (r *PinchRotate) handleScale(e PointerEvent) {
	if r.state != scaleReady || !r.arena().Accept(e.Pointer, r) {
		return
	}
	scale := e.Scale
	if e.Signal == SignalRotate || scale == 0 {
		scale = 1
	}
	rotation := 0.0
	if e.Signal == SignalRotate {
		rotation = e.Rotation
	}
	r.last = e
	start := ScaleStartDetails{FocalPoint: e.Position, PointerCount: 0}
	if r.OnStart != nil {
		r.OnStart(start)
	}
	r.emit(GestureEvent{Type: EventScaleStart, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Device: e.Device, Modifiers: e.Modifiers})
	up := ScaleUpdateDetails{FocalPoint: e.Position, Scale: scale, HorizontalScale: scale,
		VerticalScale: scale, Rotation: rotation}
	if r.OnUpdate != nil {
		r.OnUpdate(up)
	}
	r.emit(GestureEvent{Type: EventScaleUpdate, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Device: e.Device, Modifiers: e.Modifiers, Scale: scale,
		HorizontalScale: scale, VerticalScale: scale, Rotation: rotation})
	if r.OnEnd != nil {
		r.OnEnd(ScaleEndDetails{})
	}
	r.emit(GestureEvent{Type: EventScaleEnd, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Device: e.Device, Modifiers: e.Modifiers})
}

func (r *PinchRotate) flingVelocity(vt *VelocityTracker) Velocity {
	if vt == nil {
		return VelocityZero
	}
	est := vt.Estimate()
	cfg := r.config()
	if est.Confidence <= 0 || est.PixelsPerSecond.Len() <= cfg.MinFlingVelocity ||
		est.Offset.Len() <= cfg.TouchSlop {
		return VelocityZero
	}
	return Velocity{est.PixelsPerSecond}.ClampMagnitude(0, cfg.MaxFlingVelocity)
}

func (r *PinchRotate) start() {
	r.lastFocal = r.currentFocal
	d := ScaleStartDetails{FocalPoint: r.currentFocal, PointerCount: len(r.locations)}
	if r.OnStart != nil {
		r.OnStart(d)
	}
	r.emit(GestureEvent{Type: EventScaleStart, Pointer: r.last.Pointer, Timestamp: r.last.Timestamp,
		Position: d.FocalPoint, Device: r.last.Device, Modifiers: r.last.Modifiers,
		PointerCount: d.PointerCount})
}

func (r *PinchRotate) update() {
	d := ScaleUpdateDetails{
		FocalPoint:      r.currentFocal,
		FocalDelta:      r.currentFocal.Sub(r.lastFocal),
		Scale:           spanRatio(r.initialSpan, r.currentSpan),
		HorizontalScale: spanRatio(r.initialHSpan, r.currentHSpan),
		VerticalScale:   spanRatio(r.initialVSpan, r.currentVSpan),
		Rotation:        r.Rotation(),
		PointerCount:    len(r.locations),
	}
	r.lastFocal = r.currentFocal
	if r.OnUpdate != nil {
		r.OnUpdate(d)
	}
	r.emit(GestureEvent{Type: EventScaleUpdate, Pointer: r.last.Pointer, Timestamp: r.last.Timestamp,
		Position: d.FocalPoint, Delta: d.FocalDelta, Device: r.last.Device, Modifiers: r.last.Modifiers,
		Scale: d.Scale, HorizontalScale: d.HorizontalScale, VerticalScale: d.VerticalScale,
		Rotation: d.Rotation, PointerCount: d.PointerCount})
}

func (r *PinchRotate) end(v Velocity) {
	d := ScaleEndDetails{Velocity: v, PointerCount: len(r.locations)}
	if r.OnEnd != nil {
		r.OnEnd(d)
	}
	r.emit(GestureEvent{Type: EventScaleEnd, Pointer: r.last.Pointer, Timestamp: r.last.Timestamp,
		Position: r.currentFocal, Velocity: v.PixelsPerSecond, Device: r.last.Device,
		Modifiers: r.last.Modifiers, PointerCount: d.PointerCount})
}
