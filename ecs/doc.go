// Package ecs provides ECS adapters for the gesture package.
//
// [NewDonburiSink] bridges gesture events (tap, drag, scale, hover, ...) into
// a [Donburi] world as typed events. Subscribe to [GestureEventType] in your
// ECS systems to receive them. [NewWorldHitTester] hit-tests entities that
// carry the [Hittable] component, so recognizers can live on entities instead
// of a gesture.RegionTree.
//
// Usage:
//
//	tester := ecs.NewWorldHitTester(world)
//	d := gesture.NewDispatcher(tester, nil)
//	d.SetEventSink(ecs.NewDonburiSink(world))
//
//	e := world.Create(ecs.Hittable)
//	ecs.Attach(world.Entry(e), gesture.HitRect{Width: 64, Height: 64}, gesture.NewTap())
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
