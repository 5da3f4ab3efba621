// Package gesture resolves which element wins a pointer interaction when
// several overlapping elements compete for it, and turns raw pointer samples
// into semantic gestures: taps, double taps, long presses, force presses,
// drags and flings, pinches and rotations, and hover.
//
// # Overview
//
// Every contact sequence (one finger, one mouse button press) gets a
// [PointerID] and an arena. The [Dispatcher] hit-tests the Down event, and
// every [Recognizer] found on the hit path that wants the pointer joins the
// arena. Recognizers then watch the sequence and, when they are sure, ask the
// [ArenaManager] to accept them; the others lose. When the sequence ends
// without a decision the arena is swept and the first member wins.
//
//	tree := gesture.NewRegionTree()
//	d := gesture.NewDispatcher(tree, nil)
//
//	button := gesture.NewRegion("button", gesture.HitRect{Width: 120, Height: 40})
//	tree.Root().AddChild(button)
//
//	tap := gesture.NewTap()
//	tap.OnTap = func() { fmt.Println("tapped") }
//	button.AddGesture(tap)
//
//	d.HandlePacket(events)
//
// # Recognizers
//
// The set of recognizers is closed: [Tap], [DoubleTap], [MultiTap],
// [LongPress], [ForcePress], [Hover], [Pan] (with horizontal and vertical
// variants), [PinchRotate], [MultiDrag] (immediate, horizontal, vertical and
// delayed) and [Group], which enters an arena once on behalf of several
// children. Callbacks are exported func fields and run synchronously on the
// dispatch thread. Every callback is mirrored as a [GestureEvent] sent to the
// dispatcher's [EventSink] and its [Dispatcher.OnEvent] handlers.
//
// # Time
//
// Deadlines (press timeout, long press, double tap window) run on a
// [Scheduler]. [TickScheduler] is driven by event timestamps and by
// [Dispatcher.AdvanceTo], which hosts call once per frame, so tests are fully
// deterministic. [Sequence] builds timestamped synthetic input and [Script]
// replays JSON gesture scripts.
//
// # Tuning
//
// Slops, timeouts and fling limits live in [Config], which loads from TOML
// with [LoadConfig]. Logging goes through [SetLogger] and is silent by
// default.
//
// # Adapters
//
// Sub-packages feed platform input into a dispatcher: ebitensrc for
// [Ebitengine], tcellsrc for terminals through [tcell]. The ecs package
// publishes gesture events into a [Donburi] world and hit-tests entities.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [Donburi]: https://github.com/yohamta/donburi
package gesture
