package gesture

// tapTracker follows one candidate tap of a DoubleTap.
type tapTracker struct {
	pointer PointerID
	down    PointerEvent
}

func (t *tapTracker) within(pos Vec2, tolerance float64) bool {
	return pos.Sub(t.down.Position).Len() <= tolerance
}

// DoubleTap recognizes two taps in quick succession at roughly the same
// place. The second Down must come within DoubleTapTimeout of the first Up
// (a Down exactly at the timeout still counts),
// at least DoubleTapMinTime after the first Down, and within DoubleTapSlop of
// the first Down. Each tap is abandoned if it moves more than
// DoubleTapTouchSlop.
//
// While waiting for the second tap the first pointer's arena is held, so
// competing recognizers such as Tap only win it once the double tap has
// been ruled out.
type DoubleTap struct {
	recognizerBase

	OnDoubleTapDown   func(TapDetails)
	OnDoubleTap       func(DoubleTapDetails)
	OnDoubleTapCancel func()

	trackers []*tapTracker
	first    *tapTracker
	timer    timerSlot
}

// NewDoubleTap creates a double tap recognizer for the primary button.
func NewDoubleTap() *DoubleTap {
	r := &DoubleTap{}
	r.init(r)
	return r
}

// HandlePointer implements Recognizer.
func (r *DoubleTap) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *DoubleTap) CanAddPointer(e PointerEvent) bool {
	return !e.IsSignal() && r.isAllowed(e)
}

func (r *DoubleTap) handleDown(e PointerEvent) {
	if r.tracker(e.Pointer) != nil {
		return
	}
	if r.first != nil {
		// A Down that cannot be the second tap gives up the first one and
		// becomes a new first candidate.
		far := !r.first.within(e.Position, r.config().DoubleTapSlop)
		tooSoon := e.Timestamp-r.first.down.Timestamp < r.config().DoubleTapMinTime.Std()
		if far || tooSoon || e.Button != r.first.down.Button {
			r.reset()
			r.track(e)
			return
		}
		if r.OnDoubleTapDown != nil {
			r.OnDoubleTapDown(tapDetails(e))
		}
	}
	r.track(e)
}

func (r *DoubleTap) handleMove(e PointerEvent) {
	t := r.tracker(e.Pointer)
	if t == nil {
		return
	}
	if !t.within(e.Position, r.config().DoubleTapTouchSlop) {
		r.rejectTracker(t)
	}
}

func (r *DoubleTap) handleUp(e PointerEvent) {
	t := r.tracker(e.Pointer)
	if t == nil {
		return
	}
	if r.first == nil {
		r.registerFirstTap(t)
		return
	}
	r.registerSecondTap(t, e)
}

func (r *DoubleTap) handleCancel(e PointerEvent) {
	if t := r.tracker(e.Pointer); t != nil {
		r.rejectTracker(t)
	}
}

// AcceptGesture implements Recognizer. The double tap resolves itself on the
// second Up, so being accepted by a sweep changes nothing.
func (r *DoubleTap) AcceptGesture(PointerID) {}

// RejectGesture implements Recognizer.
func (r *DoubleTap) RejectGesture(pointer PointerID) {
	t := r.tracker(pointer)
	if t == nil && r.first != nil && r.first.pointer == pointer {
		t = r.first
	}
	if t != nil {
		r.rejectTracker(t)
	}
}

// Dispose implements Recognizer.
func (r *DoubleTap) Dispose() { r.reset() }

func (r *DoubleTap) track(e PointerEvent) {
	r.timer.stop(r.sched())
	r.trackers = append(r.trackers, &tapTracker{pointer: e.Pointer, down: e})
}

func (r *DoubleTap) tracker(pointer PointerID) *tapTracker {
	for _, t := range r.trackers {
		if t.pointer == pointer {
			return t
		}
	}
	return nil
}

func (r *DoubleTap) untrack(t *tapTracker) {
	for i, v := range r.trackers {
		if v == t {
			r.trackers = append(r.trackers[:i], r.trackers[i+1:]...)
			return
		}
	}
}

func (r *DoubleTap) registerFirstTap(t *tapTracker) {
	if !r.timer.active() {
		r.timer.start(r.sched(), r.config().DoubleTapTimeout.Std(), r.didTimeout)
	}
	r.arena().Hold(t.pointer)
	r.untrack(t)
	r.clearTrackers()
	r.first = t
}

func (r *DoubleTap) registerSecondTap(t *tapTracker, up PointerEvent) {
	first := r.first
	r.first = nil
	r.untrack(t)
	r.arena().Accept(first.pointer, r)
	r.arena().Accept(t.pointer, r)
	r.arena().Release(first.pointer)
	if r.OnDoubleTap != nil {
		r.OnDoubleTap(DoubleTapDetails{Position: up.Position, Timestamp: up.Timestamp})
	}
	r.emitFrom(EventDoubleTap, up)
	r.reset()
}

func (r *DoubleTap) didTimeout() {
	Logger().Debug("gesture: double tap timed out", "owner", r.OwnerID())
	r.reset()
}

func (r *DoubleTap) rejectTracker(t *tapTracker) {
	r.untrack(t)
	r.arena().Reject(t.pointer, r)
	if r.first == nil {
		return
	}
	if t == r.first {
		r.reset()
		return
	}
	r.checkCancel()
	if len(r.trackers) == 0 {
		r.reset()
	}
}

// reset abandons the first tap, releasing its held arena, and rejects every
// pending tracker.
func (r *DoubleTap) reset() {
	r.timer.stop(r.sched())
	if r.first != nil {
		if len(r.trackers) > 0 {
			r.checkCancel()
		}
		first := r.first
		r.first = nil
		r.rejectTracker(first)
		r.arena().Release(first.pointer)
	}
	r.clearTrackers()
}

func (r *DoubleTap) clearTrackers() {
	for _, t := range append([]*tapTracker(nil), r.trackers...) {
		r.rejectTracker(t)
	}
}

func (r *DoubleTap) checkCancel() {
	if r.OnDoubleTapCancel != nil {
		r.OnDoubleTapCancel()
	}
}
