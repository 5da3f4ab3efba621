package gesture

import "log/slog"

// arena is the competition for one pointer id.
type arena struct {
	members      []Recognizer
	winners      []Recognizer
	held         bool
	pendingSweep bool
}

func (a *arena) contains(r Recognizer) bool {
	for _, m := range a.members {
		if m == r {
			return true
		}
	}
	return false
}

func (a *arena) isWinner(r Recognizer) bool {
	for _, m := range a.winners {
		if m == r {
			return true
		}
	}
	return false
}

func (a *arena) remove(r Recognizer) {
	a.members = removeMember(a.members, r)
	a.winners = removeMember(a.winners, r)
}

func removeMember(ms []Recognizer, r Recognizer) []Recognizer {
	for i, m := range ms {
		if m == r {
			copy(ms[i:], ms[i+1:])
			ms[len(ms)-1] = nil
			return ms[:len(ms)-1]
		}
	}
	return ms
}

// ArenaManager owns one arena per active pointer id and resolves which
// members win each pointer. It is not safe for concurrent use; all calls must
// come from the dispatch thread.
type ArenaManager struct {
	arenas map[PointerID]*arena
	sched  Scheduler
	sink   EventSink
	cfg    Config
	attrs  []any
}

// NewArenaManager creates a manager whose recognizers schedule timers on
// sched. sched may be nil, in which case recognizer timers never fire.
func NewArenaManager(sched Scheduler) *ArenaManager {
	return &ArenaManager{
		arenas: make(map[PointerID]*arena),
		sched:  sched,
		cfg:    DefaultConfig(),
	}
}

// SetEventSink sets the sink that receives every GestureEvent emitted by
// members added from now on. Nil disables emission.
func (m *ArenaManager) SetEventSink(s EventSink) { m.sink = s }

// SetConfig replaces the thresholds seen by every bound recognizer.
func (m *ArenaManager) SetConfig(c Config) { m.cfg = c }

// Config returns the current thresholds.
func (m *ArenaManager) Config() Config { return m.cfg }

// Scheduler returns the scheduler handed to recognizers.
func (m *ArenaManager) Scheduler() Scheduler { return m.sched }

// Len returns the number of live arenas.
func (m *ArenaManager) Len() int { return len(m.arenas) }

// Members returns a copy of the members competing for pointer.
func (m *ArenaManager) Members(pointer PointerID) []Recognizer {
	a := m.arenas[pointer]
	if a == nil {
		return nil
	}
	return append([]Recognizer(nil), a.members...)
}

// Winners returns a copy of the members that have won pointer.
func (m *ArenaManager) Winners(pointer PointerID) []Recognizer {
	a := m.arenas[pointer]
	if a == nil {
		return nil
	}
	return append([]Recognizer(nil), a.winners...)
}

func (m *ArenaManager) log() *slog.Logger {
	return Logger().With(m.attrs...)
}

func (m *ArenaManager) binding() binding {
	return binding{arena: m, sched: m.sched, sink: m.sink, cfg: &m.cfg}
}

// Add enters member into the arena for pointer, creating the arena on first
// use, and binds the member to this manager. Adding a member twice is a
// no-op.
func (m *ArenaManager) Add(pointer PointerID, member Recognizer) {
	a := m.arenas[pointer]
	if a == nil {
		a = &arena{}
		m.arenas[pointer] = a
	}
	if a.contains(member) {
		return
	}
	a.members = append(a.members, member)
	member.bind(m.binding())
}

// HandlePointer forwards e to every member of the arena for e.Pointer, in
// insertion order. Members removed by an earlier member's callback are
// skipped. Events for unknown pointers are dropped.
func (m *ArenaManager) HandlePointer(e PointerEvent) {
	a := m.arenas[e.Pointer]
	if a == nil {
		m.log().Debug("gesture: event for unknown arena dropped",
			"pointer", e.Pointer, "kind", e.Kind)
		return
	}
	for _, member := range append([]Recognizer(nil), a.members...) {
		if !a.contains(member) {
			continue
		}
		member.HandlePointer(e)
	}
}

// Accept declares member the winner of pointer. Every other member is first
// asked ShouldAccept; any refusal fails the accept. Then every other
// non-winning member whose CanBeRejected allows it is removed and receives
// RejectGesture, and finally member receives AcceptGesture. Accept returns
// false when the arena is gone, member is not in it, or a veto was raised.
// Accepting a member that already won returns true without notifying again.
func (m *ArenaManager) Accept(pointer PointerID, member Recognizer) bool {
	a := m.arenas[pointer]
	if a == nil || !a.contains(member) {
		return false
	}
	if a.isWinner(member) {
		return true
	}

	others := make([]Recognizer, 0, len(a.members)-1)
	for _, o := range a.members {
		if o != member {
			others = append(others, o)
		}
	}
	model := func(o Recognizer) AcceptModel {
		return AcceptModel{
			Pointer:       pointer,
			MemberLevel:   o.ArenaLevel(),
			Acceptor:      member,
			AcceptorLevel: member.ArenaLevel(),
		}
	}
	for _, o := range others {
		if !o.ShouldAccept(model(o)) {
			m.log().Debug("gesture: accept refused", "pointer", pointer,
				"acceptor", member.OwnerID(), "by", o.OwnerID())
			return false
		}
	}

	for _, o := range others {
		if !a.contains(o) || a.isWinner(o) {
			continue
		}
		if !o.CanBeRejected(model(o)) {
			continue
		}
		a.remove(o)
		o.RejectGesture(pointer)
	}

	if m.arenas[pointer] != a || !a.contains(member) {
		return false
	}
	a.winners = append(a.winners, member)
	m.log().Debug("gesture: arena accepted", "pointer", pointer,
		"owner", member.OwnerID(), "winners", len(a.winners))
	member.AcceptGesture(pointer)
	return true
}

// Reject removes member from the arena for pointer and notifies it. Other
// members are unaffected. Rejecting an absent member is a no-op.
func (m *ArenaManager) Reject(pointer PointerID, member Recognizer) {
	a := m.arenas[pointer]
	if a == nil || !a.contains(member) {
		return
	}
	a.remove(member)
	if len(a.members) == 0 {
		delete(m.arenas, pointer)
	}
	member.RejectGesture(pointer)
}

// Hold defers the end-of-sequence sweep of pointer until Release.
func (m *ArenaManager) Hold(pointer PointerID) {
	if a := m.arenas[pointer]; a != nil {
		a.held = true
	}
}

// Release lifts a Hold. If the sequence ended while held, the arena is swept
// now.
func (m *ArenaManager) Release(pointer PointerID) {
	a := m.arenas[pointer]
	if a == nil {
		return
	}
	a.held = false
	if a.pendingSweep {
		m.Sweep(pointer)
	}
}

// Sweep resolves pointer at the end of its sequence. If nobody has won, the
// first remaining member is accepted and every other member rejected;
// otherwise members that survived beside the winners are rejected. The arena
// is then discarded. A held arena is swept on Release instead.
func (m *ArenaManager) Sweep(pointer PointerID) {
	a := m.arenas[pointer]
	if a == nil {
		return
	}
	if a.held {
		a.pendingSweep = true
		return
	}
	delete(m.arenas, pointer)
	if len(a.winners) > 0 {
		for _, r := range append([]Recognizer(nil), a.members...) {
			if !a.isWinner(r) {
				r.RejectGesture(pointer)
			}
		}
		return
	}
	if len(a.members) == 0 {
		return
	}
	first := a.members[0]
	rest := append([]Recognizer(nil), a.members[1:]...)
	m.log().Debug("gesture: arena swept", "pointer", pointer,
		"owner", first.OwnerID(), "rejected", len(rest))
	first.AcceptGesture(pointer)
	for _, r := range rest {
		r.RejectGesture(pointer)
	}
}

// Close discards the arena for a cancelled pointer, rejecting every member
// that had not won.
func (m *ArenaManager) Close(pointer PointerID) {
	a := m.arenas[pointer]
	if a == nil {
		return
	}
	delete(m.arenas, pointer)
	for _, r := range append([]Recognizer(nil), a.members...) {
		if !a.isWinner(r) {
			r.RejectGesture(pointer)
		}
	}
}
