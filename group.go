package gesture

// groupEntry is the group's view of one pointer: the children that joined
// it and which of them won.
type groupEntry struct {
	members  []Recognizer
	accepted []Recognizer
	won      bool
	ended    bool
}

func (q *groupEntry) contains(r Recognizer) bool {
	for _, m := range q.members {
		if m == r {
			return true
		}
	}
	return false
}

func (q *groupEntry) isAccepted(r Recognizer) bool {
	for _, m := range q.accepted {
		if m == r {
			return true
		}
	}
	return false
}

// Group enters the arena once on behalf of several recognizers. The children
// negotiate among themselves through the group: when one of them accepts,
// the group wins the outer arena and only that child is accepted, while its
// siblings keep receiving events and may accept later. Siblings that have not
// accepted by the end of the sequence lose.
type Group struct {
	recognizerBase

	children  []Recognizer
	queues    map[PointerID]*groupEntry
	bridge    *groupArena
	accepting Recognizer
}

// NewGroup creates a group holding children.
func NewGroup(children ...Recognizer) *Group {
	g := &Group{queues: make(map[PointerID]*groupEntry)}
	g.init(g)
	g.buttons = nil
	g.bridge = &groupArena{group: g}
	for _, c := range children {
		g.AddGesture(c)
	}
	return g
}

// AddGesture adds a child recognizer. Adding a child twice is a no-op.
func (g *Group) AddGesture(r Recognizer) {
	for _, c := range g.children {
		if c == r {
			return
		}
	}
	g.children = append(g.children, r)
	r.SetOwnerID(g.owner)
	r.bind(g.childBinding())
}

// RemoveGesture removes a child. Pointers it already joined are unaffected.
func (g *Group) RemoveGesture(r Recognizer) {
	g.children = removeMember(g.children, r)
}

// Children returns a copy of the child recognizers.
func (g *Group) Children() []Recognizer {
	return append([]Recognizer(nil), g.children...)
}

// SetOwnerID sets the owner of the group and of every child.
func (g *Group) SetOwnerID(id uint64) {
	g.owner = id
	for _, c := range g.children {
		c.SetOwnerID(id)
	}
}

func (g *Group) bind(b binding) {
	g.bound = b
	cb := g.childBinding()
	for _, c := range g.children {
		c.bind(cb)
	}
}

func (g *Group) childBinding() binding {
	b := g.bound
	b.arena = g.bridge
	return b
}

// CanAddPointer implements Recognizer. The group joins when any child would.
func (g *Group) CanAddPointer(e PointerEvent) bool {
	if g.disabled {
		return false
	}
	for _, c := range g.children {
		if c.CanAddPointer(e) {
			return true
		}
	}
	return false
}

// HandlePointer implements Recognizer. A Down or signal builds the list of
// children for the pointer; every event is then forwarded to that list.
func (g *Group) HandlePointer(e PointerEvent) {
	if (e.Kind == KindDown || e.IsSignal()) && g.queues[e.Pointer] == nil {
		q := &groupEntry{}
		cb := g.childBinding()
		for _, c := range g.children {
			if c.CanAddPointer(e) {
				c.bind(cb)
				q.members = append(q.members, c)
			}
		}
		g.queues[e.Pointer] = q
	}
	q := g.queues[e.Pointer]
	if q == nil {
		return
	}
	for _, c := range append([]Recognizer(nil), q.members...) {
		if !q.contains(c) {
			continue
		}
		c.HandlePointer(e)
	}
	if e.Kind == KindUp || e.Kind == KindCancel {
		q.ended = true
		if q.won {
			g.finish(e.Pointer, q)
		}
	}
}

// finish drops a won pointer whose sequence has ended. Children that never
// accepted lose, as they would beside a winner in a swept arena.
func (g *Group) finish(pointer PointerID, q *groupEntry) {
	if g.queues[pointer] != q {
		return
	}
	delete(g.queues, pointer)
	for _, c := range q.members {
		if !q.isAccepted(c) {
			c.RejectGesture(pointer)
		}
	}
}

// AcceptGesture implements Recognizer. When the group wins without a child
// asking (an end-of-sequence sweep), the first child wins and the rest lose.
func (g *Group) AcceptGesture(pointer PointerID) {
	q := g.queues[pointer]
	if q == nil {
		return
	}
	q.won = true
	if g.accepting != nil {
		return
	}
	if len(q.accepted) == 0 && len(q.members) > 0 {
		first := q.members[0]
		rest := append([]Recognizer(nil), q.members[1:]...)
		q.members = q.members[:1]
		q.accepted = append(q.accepted, first)
		first.AcceptGesture(pointer)
		for _, r := range rest {
			r.RejectGesture(pointer)
		}
	}
	if q.ended {
		g.finish(pointer, q)
	}
}

// RejectGesture implements Recognizer. Every child that had not won loses.
func (g *Group) RejectGesture(pointer PointerID) {
	q := g.queues[pointer]
	if q == nil {
		return
	}
	delete(g.queues, pointer)
	for _, c := range q.members {
		if !q.isAccepted(c) {
			c.RejectGesture(pointer)
		}
	}
}

// Dispose implements Recognizer.
func (g *Group) Dispose() {
	clear(g.queues)
	for _, c := range g.children {
		c.Dispose()
	}
}

func (g *Group) hoverEnter(e PointerEvent) {
	for _, c := range g.children {
		if h, ok := c.(hoverReceiver); ok {
			h.hoverEnter(e)
		}
	}
}

func (g *Group) hoverUpdate(e PointerEvent) {
	for _, c := range g.children {
		if h, ok := c.(hoverReceiver); ok {
			h.hoverUpdate(e)
		}
	}
}

func (g *Group) hoverLeave(e PointerEvent) {
	for _, c := range g.children {
		if h, ok := c.(hoverReceiver); ok {
			h.hoverLeave(e)
		}
	}
}

// groupArena is the arena the children of a Group see.
type groupArena struct {
	group *Group
}

func (a *groupArena) Accept(pointer PointerID, member Recognizer) bool {
	g := a.group
	q := g.queues[pointer]
	if q == nil || !q.contains(member) {
		return false
	}
	if q.isAccepted(member) {
		return true
	}
	if !q.won {
		g.accepting = member
		ok := g.arena().Accept(pointer, g)
		g.accepting = nil
		if !ok {
			return false
		}
	}
	if g.queues[pointer] != q || !q.contains(member) {
		return false
	}
	q.accepted = append(q.accepted, member)
	member.AcceptGesture(pointer)
	if q.ended {
		g.finish(pointer, q)
	}
	return true
}

func (a *groupArena) Reject(pointer PointerID, member Recognizer) {
	g := a.group
	q := g.queues[pointer]
	if q == nil || !q.contains(member) {
		return
	}
	q.members = removeMember(q.members, member)
	q.accepted = removeMember(q.accepted, member)
	member.RejectGesture(pointer)
	if len(q.members) == 0 {
		if g.queues[pointer] == q {
			delete(g.queues, pointer)
		}
		g.arena().Reject(pointer, g)
	}
}

func (a *groupArena) Hold(pointer PointerID)    { a.group.arena().Hold(pointer) }
func (a *groupArena) Release(pointer PointerID) { a.group.arena().Release(pointer) }
