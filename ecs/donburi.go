package ecs

import (
	"sort"

	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive tap, drag, scale and
// hover events.
var GestureEventType = events.NewEventType[gesture.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) gesture.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event gesture.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}

// HitData places an entity in the gesture hit space.
type HitData struct {
	Shape    gesture.HitShape
	Position gesture.Vec2
	ZIndex   int
	Disabled bool

	recognizers []gesture.Recognizer
}

// Recognizers returns the recognizers attached to the entity.
func (h *HitData) Recognizers() []gesture.Recognizer { return h.recognizers }

// Hittable is the component that makes an entity a gesture target.
var Hittable = donburi.NewComponentType[HitData]()

// Attach makes entry hittable with shape and attaches recognizers to it. The
// recognizers' owner id is the entity, so events can be routed back with
// OwnerEntity.
//
// The entry must already exist, which in donburi means it was created with at
// least one component. Hittable itself may be that component.
func Attach(entry *donburi.Entry, shape gesture.HitShape, recs ...gesture.Recognizer) {
	if !entry.HasComponent(Hittable) {
		entry.AddComponent(Hittable)
	}
	h := Hittable.Get(entry)
	h.Shape = shape
	for _, r := range recs {
		r.SetOwnerID(uint64(entry.Entity()))
		h.recognizers = append(h.recognizers, r)
	}
}

// Detach disposes the entity's recognizers and removes the component. An
// entity whose only component is Hittable keeps it, emptied, since donburi
// entities cannot be left without components.
func Detach(entry *donburi.Entry) {
	if !entry.HasComponent(Hittable) {
		return
	}
	h := Hittable.Get(entry)
	for _, r := range h.recognizers {
		r.Dispose()
	}
	if len(entry.Archetype().Layout().Components()) == 1 {
		*h = HitData{}
		return
	}
	entry.RemoveComponent(Hittable)
}

// OwnerEntity returns the entity whose recognizer produced ev.
func OwnerEntity(ev gesture.GestureEvent) donburi.Entity {
	return donburi.Entity(ev.OwnerID)
}

type entityTarget struct {
	entity donburi.Entity
	data   *HitData
	order  int
}

func (t entityTarget) GestureRecognizers() []gesture.Recognizer { return t.data.recognizers }

// WorldHitTester is a gesture.HitTester over the Hittable entities of a
// world. Entities are flat: every enabled entity whose shape contains the
// position is hit, highest ZIndex first. Equal ZIndex values keep query
// order, later entities first.
type WorldHitTester struct {
	world donburi.World
	query *donburi.Query
	buf   []entityTarget
}

// NewWorldHitTester creates a hit tester over world.
func NewWorldHitTester(world donburi.World) *WorldHitTester {
	return &WorldHitTester{
		world: world,
		query: donburi.NewQuery(filter.Contains(Hittable)),
	}
}

// HitTest implements gesture.HitTester.
func (t *WorldHitTester) HitTest(pos gesture.Vec2) []gesture.HitTarget {
	t.buf = t.buf[:0]
	n := 0
	t.query.Each(t.world, func(entry *donburi.Entry) {
		h := Hittable.Get(entry)
		n++
		if h.Disabled || h.Shape == nil || len(h.recognizers) == 0 {
			return
		}
		l := pos.Sub(h.Position)
		if !h.Shape.Contains(l.X, l.Y) {
			return
		}
		t.buf = append(t.buf, entityTarget{entity: entry.Entity(), data: h, order: n})
	})
	sort.SliceStable(t.buf, func(i, j int) bool {
		if t.buf[i].data.ZIndex != t.buf[j].data.ZIndex {
			return t.buf[i].data.ZIndex > t.buf[j].data.ZIndex
		}
		return t.buf[i].order > t.buf[j].order
	})
	out := make([]gesture.HitTarget, len(t.buf))
	for i, e := range t.buf {
		out[i] = e
	}
	return out
}
