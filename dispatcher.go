package gesture

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// --- Per-device state ---

type pointerState struct {
	pointer PointerID
	last    Vec2
	button  Button
	device  DeviceKind
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(GestureEvent)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered event callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters the callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// Dispatcher turns raw pointer packets into arena traffic. It assigns a
// pointer id to every contact sequence, hit-tests Downs to collect the
// competing recognizers, forwards the sequence to the arena and resolves the
// arena when the sequence ends. Hover samples and scroll/scale signals are
// routed separately.
//
// A Dispatcher is not safe for concurrent use. Timers run on its Scheduler;
// when the scheduler is an Advancer (TickScheduler) the dispatcher advances
// it to each event's timestamp before delivering the event.
type Dispatcher struct {
	id     uuid.UUID
	hit    HitTester
	sched  Scheduler
	arenas *ArenaManager

	pointers map[int64]*pointerState
	hovers   map[int64][]hoverReceiver
	hoverPos map[int64]Vec2

	queue    []PointerEvent
	flushing bool

	canConsume func(PointerEvent) bool
	handlers   handlerRegistry
	sink       EventSink
}

// NewDispatcher creates a dispatcher that hit-tests with hit. A nil sched
// gets a TickScheduler starting at zero.
func NewDispatcher(hit HitTester, sched Scheduler) *Dispatcher {
	if sched == nil {
		sched = NewTickScheduler(0)
	}
	d := &Dispatcher{
		id:       uuid.New(),
		hit:      hit,
		sched:    sched,
		pointers: make(map[int64]*pointerState),
		hovers:   make(map[int64][]hoverReceiver),
		hoverPos: make(map[int64]Vec2),
	}
	d.arenas = NewArenaManager(sched)
	d.arenas.attrs = []any{"dispatcher", d.id.String()}
	d.arenas.SetEventSink(d)
	return d
}

// ID returns the dispatcher's unique id, also attached to its log records.
func (d *Dispatcher) ID() uuid.UUID { return d.id }

// Arenas returns the arena manager.
func (d *Dispatcher) Arenas() *ArenaManager { return d.arenas }

// Scheduler returns the scheduler recognizer timers run on.
func (d *Dispatcher) Scheduler() Scheduler { return d.sched }

// SetConfig replaces the thresholds used by every recognizer this dispatcher
// drives.
func (d *Dispatcher) SetConfig(c Config) { d.arenas.SetConfig(c) }

// Config returns the current thresholds.
func (d *Dispatcher) Config() Config { return d.arenas.Config() }

// SetCanConsume installs a gate consulted for every event before dispatch.
// Events for which fn returns false are dropped. Nil accepts everything.
func (d *Dispatcher) SetCanConsume(fn func(PointerEvent) bool) { d.canConsume = fn }

// SetEventSink sets an additional sink that receives every GestureEvent
// after the registered callbacks.
func (d *Dispatcher) SetEventSink(s EventSink) { d.sink = s }

// OnEvent registers a callback for every GestureEvent.
func (d *Dispatcher) OnEvent(fn func(GestureEvent)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.handlers = append(d.handlers.handlers, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers}
}

// EmitEvent implements EventSink. Recognizers driven by this dispatcher emit
// through it.
func (d *Dispatcher) EmitEvent(e GestureEvent) {
	for _, h := range d.handlers.handlers {
		h.fn(e)
	}
	if d.sink != nil {
		d.sink.EmitEvent(e)
	}
}

// ActivePointers returns the number of contact sequences in progress.
func (d *Dispatcher) ActivePointers() int { return len(d.pointers) }

func (d *Dispatcher) log() *slog.Logger {
	return Logger().With("dispatcher", d.id.String())
}

// HandlePacket dispatches events in order. Calls made from inside a
// recognizer callback queue their events behind the current packet.
func (d *Dispatcher) HandlePacket(packet []PointerEvent) {
	d.queue = append(d.queue, packet...)
	if d.flushing {
		return
	}
	d.flushing = true
	defer func() { d.flushing = false }()
	for len(d.queue) > 0 {
		e := d.queue[0]
		d.queue = d.queue[1:]
		d.handle(e)
	}
	d.queue = d.queue[:0]
}

// HandleEvent dispatches a single event.
func (d *Dispatcher) HandleEvent(e PointerEvent) {
	d.HandlePacket([]PointerEvent{e})
}

// AdvanceTo runs timers due by now without delivering an event. Hosts call
// it once per frame so deadlines fire while pointers are held still. It is a
// no-op for schedulers that keep their own clock.
func (d *Dispatcher) AdvanceTo(now time.Duration) {
	if adv, ok := d.sched.(Advancer); ok {
		adv.AdvanceTo(now)
	}
}

// CancelAll cancels every contact sequence in progress, as when the window
// loses focus.
func (d *Dispatcher) CancelAll(ts time.Duration) {
	var packet []PointerEvent
	for dev, ps := range d.pointers {
		packet = append(packet, PointerEvent{
			Kind:      KindCancel,
			Device:    ps.device,
			DeviceID:  dev,
			Button:    ps.button,
			Position:  ps.last,
			Timestamp: ts,
		})
	}
	d.HandlePacket(packet)
}

// handle delivers one event. Timers due strictly before the event run first;
// timers due at its own timestamp run after it, so a deadline and an event
// sharing an instant resolve in the event's favor.
func (d *Dispatcher) handle(e PointerEvent) {
	if d.canConsume != nil && !d.canConsume(e) {
		d.log().Debug("gesture: event not consumed", "device", e.DeviceID, "kind", e.Kind)
		return
	}
	if b, ok := d.sched.(beforeAdvancer); ok {
		b.AdvanceBefore(e.Timestamp)
	} else if e.Timestamp > 0 {
		d.AdvanceTo(e.Timestamp - 1)
	}
	d.route(e)
	d.AdvanceTo(e.Timestamp)
}

func (d *Dispatcher) route(e PointerEvent) {
	switch {
	case e.Signal == SignalHover:
		d.handleHover(e)
		return
	case e.IsSignal():
		d.handleSignal(e)
		return
	}
	switch e.Kind {
	case KindDown:
		d.handleDown(e)
	case KindMove:
		d.handleMove(e)
	case KindUp, KindCancel:
		d.handleEnd(e)
	default:
		d.log().Debug("gesture: event dropped", "device", e.DeviceID, "kind", e.Kind)
	}
}

// collect hit-tests pos and returns every recognizer on the hit path that
// accepts e, bound to this dispatcher's arena manager.
func (d *Dispatcher) collect(e PointerEvent) []Recognizer {
	if d.hit == nil {
		return nil
	}
	b := d.arenas.binding()
	var out []Recognizer
	for _, t := range d.hit.HitTest(e.Position) {
		for _, r := range t.GestureRecognizers() {
			r.bind(b)
			if r.CanAddPointer(e) {
				out = append(out, r)
			}
		}
	}
	return out
}

func (d *Dispatcher) handleDown(e PointerEvent) {
	if ps := d.pointers[e.DeviceID]; ps != nil {
		d.log().Debug("gesture: down without up, cancelling previous sequence",
			"device", e.DeviceID, "pointer", ps.pointer)
		d.handleEnd(PointerEvent{
			Kind:      KindCancel,
			Device:    ps.device,
			DeviceID:  e.DeviceID,
			Button:    ps.button,
			Position:  ps.last,
			Timestamp: e.Timestamp,
		})
	}
	p := nextPointerID()
	d.pointers[e.DeviceID] = &pointerState{
		pointer: p,
		last:    e.Position,
		button:  e.Button,
		device:  e.Device,
	}
	e.Pointer = p
	e.Delta = Vec2{}
	for _, r := range d.collect(e) {
		d.arenas.Add(p, r)
	}
	d.arenas.HandlePointer(e)
}

func (d *Dispatcher) handleMove(e PointerEvent) {
	ps := d.pointers[e.DeviceID]
	if ps == nil {
		if e.Button == ButtonNone {
			e.Signal = SignalHover
			d.handleHover(e)
			return
		}
		d.log().Debug("gesture: move for unknown device dropped", "device", e.DeviceID)
		return
	}
	e.Pointer = ps.pointer
	e.Delta = e.Position.Sub(ps.last)
	e.Button = ps.button
	ps.last = e.Position
	d.arenas.HandlePointer(e)
}

func (d *Dispatcher) handleEnd(e PointerEvent) {
	ps := d.pointers[e.DeviceID]
	if ps == nil {
		if e.Kind == KindCancel {
			d.leaveAll(e)
			return
		}
		d.log().Debug("gesture: end for unknown device dropped", "device", e.DeviceID, "kind", e.Kind)
		return
	}
	delete(d.pointers, e.DeviceID)
	e.Pointer = ps.pointer
	e.Delta = e.Position.Sub(ps.last)
	e.Button = ps.button
	d.arenas.HandlePointer(e)
	if e.Kind == KindUp {
		d.arenas.Sweep(ps.pointer)
	} else {
		d.arenas.Close(ps.pointer)
	}
}

// handleSignal resolves a scroll/scale/rotate signal in a transient arena.
func (d *Dispatcher) handleSignal(e PointerEvent) {
	p := nextPointerID()
	e.Pointer = p
	members := d.collect(e)
	if len(members) == 0 {
		return
	}
	for _, r := range members {
		d.arenas.Add(p, r)
	}
	d.arenas.HandlePointer(e)
	d.arenas.Sweep(p)
}

func (d *Dispatcher) handleHover(e PointerEvent) {
	var cur []hoverReceiver
	if d.hit != nil {
		b := d.arenas.binding()
		for _, t := range d.hit.HitTest(e.Position) {
			for _, r := range t.GestureRecognizers() {
				if h, ok := r.(hoverReceiver); ok {
					r.bind(b)
					cur = append(cur, h)
				}
			}
		}
	}
	if last, ok := d.hoverPos[e.DeviceID]; ok {
		e.Delta = e.Position.Sub(last)
	}
	d.hoverPos[e.DeviceID] = e.Position

	prev := d.hovers[e.DeviceID]
	for _, h := range prev {
		if !containsHover(cur, h) {
			h.hoverLeave(e)
		}
	}
	for _, h := range cur {
		if containsHover(prev, h) {
			h.hoverUpdate(e)
		} else {
			h.hoverEnter(e)
		}
	}
	if len(cur) == 0 {
		delete(d.hovers, e.DeviceID)
		return
	}
	d.hovers[e.DeviceID] = cur
}

// leaveAll ends hovering for a device that went away.
func (d *Dispatcher) leaveAll(e PointerEvent) {
	for _, h := range d.hovers[e.DeviceID] {
		h.hoverLeave(e)
	}
	delete(d.hovers, e.DeviceID)
	delete(d.hoverPos, e.DeviceID)
}

func containsHover(hs []hoverReceiver, h hoverReceiver) bool {
	for _, v := range hs {
		if v == h {
			return true
		}
	}
	return false
}
