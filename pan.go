package gesture

import "math"

// PanAxis constrains a Pan to one direction.
type PanAxis uint8

const (
	PanFree       PanAxis = iota // any direction
	PanHorizontal                // x only
	PanVertical                  // y only
)

// constrain projects v onto the axis.
func (a PanAxis) constrain(v Vec2) Vec2 {
	switch a {
	case PanHorizontal:
		return Vec2{X: v.X}
	case PanVertical:
		return Vec2{Y: v.Y}
	}
	return v
}

// primary returns the signed component of v along the axis, zero for free
// pans.
func (a PanAxis) primary(v Vec2) float64 {
	switch a {
	case PanHorizontal:
		return v.X
	case PanVertical:
		return v.Y
	}
	return 0
}

// magnitude returns the length of v as seen by the axis.
func (a PanAxis) magnitude(v Vec2) float64 {
	if a == PanFree {
		return v.Len()
	}
	return math.Abs(a.primary(v))
}

// ScrollType selects the inputs a Pan responds to.
type ScrollType uint8

const (
	ScrollTypeDrag   ScrollType = iota // contact drags only
	ScrollTypeWheel                    // wheel and trackpad scroll signals only
	ScrollTypeScroll                   // both
)

type panState uint8

const (
	panReady panState = iota
	panPossible
	panAccepted
)

type optFloat struct {
	v  float64
	ok bool
}

func (o optFloat) or(def float64) float64 {
	if o.ok {
		return o.v
	}
	return def
}

// Pan recognizes a drag of one or more pointers, optionally constrained to
// one axis. With several pointers down the drag follows their centroid.
//
// The pan claims the arena once the pending movement along its axis exceeds
// its slop (PanSlop unless SetSlop was called). It then fires OnStart at the
// position where the contact went down, followed by an OnUpdate carrying the
// movement accumulated before acceptance. On release OnEnd carries a fling
// velocity when the release was fast and long enough, otherwise zero.
type Pan struct {
	oneSequence

	OnDown   func(DragDownDetails)
	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func(DragCancelDetails)

	axis       PanAxis
	scrollType ScrollType

	slop             optFloat
	minFlingVelocity optFloat
	minFlingDistance optFloat
	maxFlingVelocity optFloat

	state     panState
	cancelled bool
	positions map[PointerID]Vec2
	trackers  map[PointerID]*VelocityTracker
	initial   Vec2
	pending   Vec2
	last      PointerEvent
}

// NewPan creates a free-direction pan recognizer.
func NewPan() *Pan { return newPan(PanFree) }

// NewHorizontalPan creates a pan recognizer that only follows x movement.
func NewHorizontalPan() *Pan { return newPan(PanHorizontal) }

// NewVerticalPan creates a pan recognizer that only follows y movement.
func NewVerticalPan() *Pan { return newPan(PanVertical) }

func newPan(axis PanAxis) *Pan {
	r := &Pan{
		axis:      axis,
		positions: make(map[PointerID]Vec2),
		trackers:  make(map[PointerID]*VelocityTracker),
	}
	r.initSequence(r, r.didStopTrackingLastPointer)
	return r
}

// Axis returns the direction the pan is constrained to.
func (r *Pan) Axis() PanAxis { return r.axis }

// SetScrollType selects contact drags, scroll signals or both.
func (r *Pan) SetScrollType(t ScrollType) { r.scrollType = t }

// SetSlop overrides the distance the pan must move before claiming the arena.
func (r *Pan) SetSlop(d float64) { r.slop = optFloat{d, true} }

// SetMinFlingVelocity overrides the configured MinFlingVelocity.
func (r *Pan) SetMinFlingVelocity(v float64) { r.minFlingVelocity = optFloat{v, true} }

// SetMinFlingDistance sets the distance a release must have covered to count
// as a fling. It defaults to TouchSlop.
func (r *Pan) SetMinFlingDistance(d float64) { r.minFlingDistance = optFloat{d, true} }

// SetMaxFlingVelocity overrides the configured MaxFlingVelocity.
func (r *Pan) SetMaxFlingVelocity(v float64) { r.maxFlingVelocity = optFloat{v, true} }

// HandlePointer implements Recognizer.
func (r *Pan) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *Pan) CanAddPointer(e PointerEvent) bool {
	if !r.isAllowed(e) {
		return false
	}
	switch e.Signal {
	case SignalScroll:
		return r.scrollType != ScrollTypeDrag && r.state == panReady
	case SignalNormal:
		return r.scrollType != ScrollTypeWheel
	}
	return false
}

func (r *Pan) centroid() Vec2 {
	if len(r.positions) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range r.positions {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(r.positions)))
}

func (r *Pan) handleDown(e PointerEvent) {
	r.startTracking(e.Pointer)
	vt := NewVelocityTracker()
	vt.AddPosition(e.Timestamp, e.Position)
	r.trackers[e.Pointer] = vt
	r.positions[e.Pointer] = e.Position
	r.last = e
	if r.state == panAccepted {
		r.arena().Accept(e.Pointer, r)
		return
	}
	if r.state != panReady {
		return
	}
	r.state = panPossible
	r.cancelled = false
	r.initial = e.Position
	r.pending = Vec2{}
	if r.OnDown != nil {
		r.OnDown(DragDownDetails{Position: e.Position})
	}
	r.emitFrom(EventDragDown, e)
}

func (r *Pan) handleMove(e PointerEvent) {
	if !r.isTracking(e.Pointer) {
		return
	}
	if vt := r.trackers[e.Pointer]; vt != nil {
		vt.AddPosition(e.Timestamp, e.Position)
	}
	before := r.centroid()
	r.positions[e.Pointer] = e.Position
	delta := r.centroid().Sub(before)
	r.last = e

	switch r.state {
	case panAccepted:
		r.update(r.axis.constrain(delta), e)
	case panPossible:
		r.pending = r.pending.Add(delta)
		if r.axis.magnitude(r.pending) > r.slop.or(r.config().PanSlop) {
			r.accept()
		}
	}
}

func (r *Pan) handleUp(e PointerEvent) {
	if !r.isTracking(e.Pointer) {
		return
	}
	if vt := r.trackers[e.Pointer]; vt != nil {
		vt.AddPosition(e.Timestamp, e.Position)
	}
	r.last = e
	r.stopTracking(e.Pointer)
	r.forget(e.Pointer)
}

func (r *Pan) handleCancel(e PointerEvent) {
	if !r.isTracking(e.Pointer) {
		return
	}
	r.last = e
	r.cancelled = true
	r.stopTracking(e.Pointer)
	r.forget(e.Pointer)
}

// handleScroll turns a wheel or trackpad scroll into a one-shot drag.
func (r *Pan) handleScroll(e PointerEvent) {
	if r.scrollType == ScrollTypeDrag || r.state != panReady {
		return
	}
	if !r.arena().Accept(e.Pointer, r) {
		return
	}
	r.last = e
	if r.OnDown != nil {
		r.OnDown(DragDownDetails{Position: e.Position})
	}
	r.emitFrom(EventDragDown, e)
	r.start(e.Position, e)
	r.update(r.axis.constrain(e.Delta), e)
	r.end(VelocityZero, e)
}

// AcceptGesture implements Recognizer.
func (r *Pan) AcceptGesture(pointer PointerID) {
	if r.state != panPossible || !containsPointer(r.entries, pointer) {
		return
	}
	r.state = panAccepted
	delta := r.axis.constrain(r.pending)
	r.pending = Vec2{}
	r.start(r.initial, r.last)
	if !delta.IsZero() {
		r.update(delta, r.last)
	}
}

// RejectGesture implements Recognizer.
func (r *Pan) RejectGesture(pointer PointerID) {
	r.stopTracking(pointer)
	r.forget(pointer)
}

// Dispose implements Recognizer.
func (r *Pan) Dispose() {
	r.state = panReady
	r.tracked = r.tracked[:0]
	r.entries = r.entries[:0]
	clear(r.positions)
	clear(r.trackers)
}

func (r *Pan) forget(pointer PointerID) {
	delete(r.positions, pointer)
	delete(r.trackers, pointer)
}

func (r *Pan) didStopTrackingLastPointer(pointer PointerID) {
	switch r.state {
	case panPossible:
		r.state = panReady
		r.reject()
		r.cancel(pointer)
	case panAccepted:
		r.state = panReady
		if r.cancelled {
			r.cancel(pointer)
			break
		}
		r.end(r.flingVelocity(r.trackers[pointer]), r.last)
	}
	r.state = panReady
	clear(r.positions)
	clear(r.trackers)
}

// flingVelocity returns the release velocity when it qualifies as a fling,
// clamped to the maximum fling speed, and zero otherwise.
func (r *Pan) flingVelocity(vt *VelocityTracker) Velocity {
	if vt == nil {
		return VelocityZero
	}
	est := vt.Estimate()
	if est.Confidence <= 0 {
		return VelocityZero
	}
	cfg := r.config()
	v := Velocity{r.axis.constrain(est.PixelsPerSecond)}
	speed := r.axis.magnitude(est.PixelsPerSecond)
	dist := r.axis.magnitude(est.Offset)
	if speed < r.minFlingVelocity.or(cfg.MinFlingVelocity) || dist < r.minFlingDistance.or(cfg.TouchSlop) {
		return VelocityZero
	}
	return v.ClampMagnitude(0, r.maxFlingVelocity.or(cfg.MaxFlingVelocity))
}

func (r *Pan) start(pos Vec2, e PointerEvent) {
	if r.OnStart != nil {
		r.OnStart(DragStartDetails{Position: pos, Device: e.Device, Timestamp: e.Timestamp})
	}
	ev := GestureEvent{Type: EventDragStart, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: pos, Button: e.Button, Device: e.Device, Modifiers: e.Modifiers}
	r.emit(ev)
}

func (r *Pan) update(delta Vec2, e PointerEvent) {
	pos := r.centroid()
	if e.IsSignal() {
		pos = e.Position
	}
	d := DragUpdateDetails{
		Position:     pos,
		Delta:        delta,
		PrimaryDelta: r.axis.primary(delta),
		Timestamp:    e.Timestamp,
	}
	if r.OnUpdate != nil {
		r.OnUpdate(d)
	}
	ev := GestureEvent{Type: EventDragUpdate, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: pos, Delta: delta, Button: e.Button, Device: e.Device, Modifiers: e.Modifiers}
	r.emit(ev)
}

func (r *Pan) end(v Velocity, e PointerEvent) {
	if r.OnEnd != nil {
		r.OnEnd(DragEndDetails{Velocity: v, PrimaryVelocity: r.axis.primary(v.PixelsPerSecond)})
	}
	ev := GestureEvent{Type: EventDragEnd, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Velocity: v.PixelsPerSecond, Button: e.Button, Device: e.Device,
		Modifiers: e.Modifiers}
	r.emit(ev)
}

func (r *Pan) cancel(pointer PointerID) {
	if r.OnCancel != nil {
		r.OnCancel(DragCancelDetails{Pointer: pointer})
	}
	r.emit(GestureEvent{Type: EventDragCancel, Pointer: pointer, Timestamp: r.last.Timestamp,
		Position: r.last.Position, Device: r.last.Device})
}
