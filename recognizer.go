package gesture

// ArenaLevel is a member's priority in arena negotiation. Lower values are
// higher priority. The arena only passes levels to the negotiation
// callbacks; it never orders members by level itself.
type ArenaLevel uint

// DefaultArenaLevel is the level of a recognizer that never called
// SetArenaLevel.
const DefaultArenaLevel ArenaLevel = 100

// AcceptModel describes an accept attempt to another member of the arena.
type AcceptModel struct {
	Pointer PointerID
	// MemberLevel is the level of the member being asked.
	MemberLevel ArenaLevel
	// Acceptor is the member trying to win.
	Acceptor      Recognizer
	AcceptorLevel ArenaLevel
}

// RejectableByPriority is a CanBeRejected policy: the member may only be
// rejected by an acceptor of equal or higher priority (lower or equal level).
func RejectableByPriority(m AcceptModel) bool {
	return m.AcceptorLevel <= m.MemberLevel
}

// NeverRejectable is a CanBeRejected policy that keeps the member in the
// arena alongside any winner, letting it accept later as a co-winner.
func NeverRejectable(AcceptModel) bool { return false }

// Recognizer is the capability set every arena member implements. The set
// of implementations is closed: Tap, DoubleTap, MultiTap, LongPress,
// ForcePress, Hover, Pan, PinchRotate, MultiDrag and Group.
type Recognizer interface {
	// HandlePointer routes one event to the recognizer's state machine.
	HandlePointer(e PointerEvent)
	// AcceptGesture is called once by the arena when the recognizer wins pointer.
	AcceptGesture(pointer PointerID)
	// RejectGesture is called once by the arena when the recognizer loses pointer.
	RejectGesture(pointer PointerID)
	// CanAddPointer reports whether the recognizer wants to join the arena
	// for the Down (or signal) event e.
	CanAddPointer(e PointerEvent) bool
	// OwnerID is the id of the region the recognizer is attached to.
	OwnerID() uint64
	SetOwnerID(id uint64)
	ArenaLevel() ArenaLevel
	// CanBeRejected is asked when another member accepts; returning false keeps
	// this member in the arena.
	CanBeRejected(m AcceptModel) bool
	// ShouldAccept is asked when another member accepts; returning false
	// refuses that member's win.
	ShouldAccept(m AcceptModel) bool
	// Dispose cancels timers and drops all per-pointer state.
	Dispose()

	base() *recognizerBase
	bind(b binding)
}

// ArenaHandle is the arena as seen by a recognizer.
type ArenaHandle interface {
	Accept(pointer PointerID, member Recognizer) bool
	Reject(pointer PointerID, member Recognizer)
	Hold(pointer PointerID)
	Release(pointer PointerID)
}

// binding carries the collaborators a recognizer gets when it joins an arena.
type binding struct {
	arena ArenaHandle
	sched Scheduler
	sink  EventSink
	cfg   *Config
}

type nopArena struct{}

func (nopArena) Accept(PointerID, Recognizer) bool { return false }
func (nopArena) Reject(PointerID, Recognizer)      {}
func (nopArena) Hold(PointerID)                    {}
func (nopArena) Release(PointerID)                 {}

var fallbackConfig = DefaultConfig()

// recognizerBase holds the settings shared by every recognizer.
type recognizerBase struct {
	self     Recognizer
	disabled bool
	kinds    []DeviceKind
	buttons  []Button
	owner    uint64
	level    ArenaLevel
	levelSet bool

	canBeRejected func(AcceptModel) bool
	shouldAccept  func(AcceptModel) bool

	bound binding
}

func (r *recognizerBase) init(self Recognizer) {
	r.self = self
	r.buttons = []Button{ButtonPrimary}
}

func (r *recognizerBase) base() *recognizerBase { return r }

func (r *recognizerBase) bind(b binding) { r.bound = b }

// SetEnabled enables or disables the recognizer. Disabled recognizers never
// join an arena.
func (r *recognizerBase) SetEnabled(enabled bool) { r.disabled = !enabled }

// Enabled reports whether the recognizer may join arenas.
func (r *recognizerBase) Enabled() bool { return !r.disabled }

// SetDeviceKinds restricts the recognizer to the given devices. With no
// arguments every device is accepted.
func (r *recognizerBase) SetDeviceKinds(kinds ...DeviceKind) {
	r.kinds = append(r.kinds[:0], kinds...)
}

// SetButtons restricts the recognizer to contacts pressed with the given
// buttons. The default is ButtonPrimary; with no arguments every button is
// accepted.
func (r *recognizerBase) SetButtons(buttons ...Button) {
	r.buttons = append([]Button(nil), buttons...)
}

// SetOwnerID records the region the recognizer belongs to. RegionTree sets it
// when the recognizer is attached.
func (r *recognizerBase) SetOwnerID(id uint64) { r.owner = id }

// OwnerID returns the owning region id.
func (r *recognizerBase) OwnerID() uint64 { return r.owner }

// SetArenaLevel sets the negotiation priority (lower is higher priority).
func (r *recognizerBase) SetArenaLevel(level ArenaLevel) {
	r.level = level
	r.levelSet = true
}

// ArenaLevel returns the negotiation priority.
func (r *recognizerBase) ArenaLevel() ArenaLevel {
	if !r.levelSet {
		return DefaultArenaLevel
	}
	return r.level
}

// SetCanBeRejected installs the policy consulted when another member accepts.
// Nil restores the default (always rejectable).
func (r *recognizerBase) SetCanBeRejected(fn func(AcceptModel) bool) { r.canBeRejected = fn }

// SetShouldAccept installs the policy consulted before another member is
// allowed to win. Nil restores the default (always allow).
func (r *recognizerBase) SetShouldAccept(fn func(AcceptModel) bool) { r.shouldAccept = fn }

// CanBeRejected implements Recognizer.
func (r *recognizerBase) CanBeRejected(m AcceptModel) bool {
	if r.canBeRejected == nil {
		return true
	}
	return r.canBeRejected(m)
}

// ShouldAccept implements Recognizer.
func (r *recognizerBase) ShouldAccept(m AcceptModel) bool {
	if r.shouldAccept == nil {
		return true
	}
	return r.shouldAccept(m)
}

// isAllowed applies the enabled flag and the device and button masks.
func (r *recognizerBase) isAllowed(e PointerEvent) bool {
	if r.disabled {
		return false
	}
	if len(r.kinds) > 0 && !containsKind(r.kinds, e.Device) {
		return false
	}
	if e.IsSignal() || len(r.buttons) == 0 {
		return true
	}
	for _, b := range r.buttons {
		if b == e.Button {
			return true
		}
	}
	return false
}

func containsKind(kinds []DeviceKind, k DeviceKind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

func (r *recognizerBase) arena() ArenaHandle {
	if r.bound.arena == nil {
		return nopArena{}
	}
	return r.bound.arena
}

func (r *recognizerBase) sched() Scheduler { return r.bound.sched }

func (r *recognizerBase) config() *Config {
	if r.bound.cfg == nil {
		return &fallbackConfig
	}
	return r.bound.cfg
}

func (r *recognizerBase) emit(e GestureEvent) {
	if r.bound.sink == nil {
		return
	}
	e.OwnerID = r.owner
	r.bound.sink.EmitEvent(e)
}

// Default no-op handlers for signals and hover.
func (r *recognizerBase) handleScroll(PointerEvent) {}
func (r *recognizerBase) handleScale(PointerEvent)  {}
func (r *recognizerBase) handleHover(PointerEvent)  {}

// pointerRouter is the per-phase handler set behind HandlePointer.
type pointerRouter interface {
	handleDown(e PointerEvent)
	handleMove(e PointerEvent)
	handleUp(e PointerEvent)
	handleCancel(e PointerEvent)
	handleScroll(e PointerEvent)
	handleScale(e PointerEvent)
	handleHover(e PointerEvent)
}

// routePointer dispatches e by signal first, then by phase. Stationary and
// unsupported events are dropped.
func routePointer(r pointerRouter, e PointerEvent) {
	switch e.Signal {
	case SignalScroll:
		r.handleScroll(e)
		return
	case SignalScale, SignalRotate:
		r.handleScale(e)
		return
	case SignalHover:
		r.handleHover(e)
		return
	}
	switch e.Kind {
	case KindDown:
		r.handleDown(e)
	case KindMove:
		r.handleMove(e)
	case KindUp:
		r.handleUp(e)
	case KindCancel:
		r.handleCancel(e)
	}
}

// oneSequence is the base of recognizers that follow one contact sequence at
// a time (possibly with several pointers). It tracks the pointers it follows
// and the arena entries it must resolve.
type oneSequence struct {
	recognizerBase

	tracked []PointerID
	entries []PointerID
	onLast  func(PointerID)
}

func (s *oneSequence) initSequence(self Recognizer, onLast func(PointerID)) {
	s.init(self)
	s.onLast = onLast
}

// startTracking follows pointer and remembers its arena entry.
func (s *oneSequence) startTracking(pointer PointerID) {
	if !s.isTracking(pointer) {
		s.tracked = append(s.tracked, pointer)
	}
	if !containsPointer(s.entries, pointer) {
		s.entries = append(s.entries, pointer)
	}
}

// stopTracking stops following pointer. When the last tracked pointer goes,
// the didStopTrackingLastPointer hook runs and the entries are forgotten.
func (s *oneSequence) stopTracking(pointer PointerID) {
	if !s.isTracking(pointer) {
		return
	}
	s.tracked = removePointer(s.tracked, pointer)
	if len(s.tracked) == 0 {
		if s.onLast != nil {
			s.onLast(pointer)
		}
		s.entries = s.entries[:0]
	}
}

func (s *oneSequence) isTracking(pointer PointerID) bool {
	return containsPointer(s.tracked, pointer)
}

// accept asks the arena to grant every entry to this recognizer. It reports
// whether at least one entry was granted.
func (s *oneSequence) accept() bool {
	won := false
	for _, p := range append([]PointerID(nil), s.entries...) {
		if s.arena().Accept(p, s.self) {
			won = true
		}
	}
	return won
}

// reject gives up every entry.
func (s *oneSequence) reject() {
	for _, p := range append([]PointerID(nil), s.entries...) {
		s.arena().Reject(p, s.self)
	}
}

// stopAll stops tracking every pointer, which runs the last-pointer hook.
func (s *oneSequence) stopAll() {
	for _, p := range append([]PointerID(nil), s.tracked...) {
		s.stopTracking(p)
	}
}

// Default sequence behavior: release the pointer on up and cancel.
func (s *oneSequence) handleUp(e PointerEvent)     { s.stopTracking(e.Pointer) }
func (s *oneSequence) handleCancel(e PointerEvent) { s.stopTracking(e.Pointer) }

func containsPointer(ps []PointerID, p PointerID) bool {
	for _, v := range ps {
		if v == p {
			return true
		}
	}
	return false
}

func removePointer(ps []PointerID, p PointerID) []PointerID {
	for i, v := range ps {
		if v == p {
			copy(ps[i:], ps[i+1:])
			return ps[:len(ps)-1]
		}
	}
	return ps
}

// emitFrom emits an event of type t stamped with the pointer data of e.
func (r *recognizerBase) emitFrom(t EventType, e PointerEvent) {
	r.emit(GestureEvent{
		Type:      t,
		Pointer:   e.Pointer,
		Timestamp: e.Timestamp,
		Position:  e.Position,
		Button:    e.Button,
		Device:    e.Device,
		Modifiers: e.Modifiers,
	})
}
