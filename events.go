package gesture

import "time"

// EventType identifies a semantic gesture event.
type EventType uint8

const (
	EventTapDown          EventType = iota // tap contact confirmed as a possible tap
	EventTapUp                             // tap released after winning the arena
	EventTap                               // tap completed
	EventTapCancel                         // tap abandoned after tap-down
	EventDoubleTap                         // second tap of a double tap completed
	EventLongPressDown                     // contact that may become a long press
	EventLongPressStart                    // long press deadline reached
	EventLongPressMove                     // movement after the long press started
	EventLongPressEnd                      // release after a long press
	EventLongPressCancel                   // contact ended before the deadline
	EventForcePressStart                   // pressure crossed the start threshold
	EventForcePressPeak                    // pressure crossed the peak threshold
	EventForcePressUpdate                  // pressure changed while pressing
	EventForcePressEnd                     // force press released
	EventHoverEnter                        // cursor entered a hover region
	EventHoverUpdate                       // cursor moved inside a hover region
	EventHoverLeave                        // cursor left a hover region
	EventDragDown                          // contact that may become a drag
	EventDragStart                         // drag won the arena
	EventDragUpdate                        // drag moved
	EventDragEnd                           // drag released, Velocity set on fling
	EventDragCancel                        // drag abandoned
	EventScaleStart                        // pinch/rotate started
	EventScaleUpdate                       // pinch/rotate changed
	EventScaleEnd                          // pinch/rotate finished
)

var eventTypeNames = [...]string{
	EventTapDown:          "tap-down",
	EventTapUp:            "tap-up",
	EventTap:              "tap",
	EventTapCancel:        "tap-cancel",
	EventDoubleTap:        "double-tap",
	EventLongPressDown:    "long-press-down",
	EventLongPressStart:   "long-press-start",
	EventLongPressMove:    "long-press-move",
	EventLongPressEnd:     "long-press-end",
	EventLongPressCancel:  "long-press-cancel",
	EventForcePressStart:  "force-press-start",
	EventForcePressPeak:   "force-press-peak",
	EventForcePressUpdate: "force-press-update",
	EventForcePressEnd:    "force-press-end",
	EventHoverEnter:       "hover-enter",
	EventHoverUpdate:      "hover-update",
	EventHoverLeave:       "hover-leave",
	EventDragDown:         "drag-down",
	EventDragStart:        "drag-start",
	EventDragUpdate:       "drag-update",
	EventDragEnd:          "drag-end",
	EventDragCancel:       "drag-cancel",
	EventScaleStart:       "scale-start",
	EventScaleUpdate:      "scale-update",
	EventScaleEnd:         "scale-end",
}

// String returns a short kebab-case name for the event type.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// GestureEvent is a flattened semantic event, emitted alongside each
// recognizer callback to the EventSink of the recognizer's ArenaManager.
// Fields that do not apply to Type are zero.
type GestureEvent struct {
	Type      EventType
	OwnerID   uint64
	Pointer   PointerID
	Timestamp time.Duration
	Position  Vec2
	Delta     Vec2
	Velocity  Vec2
	Button    Button
	Device    DeviceKind
	Modifiers Modifiers
	// Pressure fields (force press)
	Pressure float64
	// Scale fields (pinch/rotate)
	Scale           float64
	HorizontalScale float64
	VerticalScale   float64
	Rotation        float64
	PointerCount    int
}

// EventSink receives every semantic gesture event. Set one on a Dispatcher
// or ArenaManager to feed an ECS or an event log.
type EventSink interface {
	EmitEvent(event GestureEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(GestureEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event GestureEvent) { f(event) }

// EventLog is an EventSink that records events in order.
type EventLog struct {
	Events []GestureEvent
}

// EmitEvent appends event.
func (l *EventLog) EmitEvent(event GestureEvent) {
	l.Events = append(l.Events, event)
}

// Types returns the recorded event types in order.
func (l *EventLog) Types() []EventType {
	out := make([]EventType, len(l.Events))
	for i, e := range l.Events {
		out[i] = e.Type
	}
	return out
}

// Reset discards the recorded events.
func (l *EventLog) Reset() { l.Events = l.Events[:0] }
