package gesture

import (
	"math"
	"sync/atomic"
	"time"
)

// Vec2 is a 2D vector used for positions, offsets and velocities throughout
// the API. Coordinates are global (window) logical pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// PointerID identifies one contact sequence, from Down to Up or Cancel.
// Zero is never assigned and means "no pointer".
type PointerID int64

var lastPointerID atomic.Int64

// nextPointerID hands out process-wide unique pointer ids.
func nextPointerID() PointerID {
	return PointerID(lastPointerID.Add(1))
}

// EventKind is the phase of a pointer event.
type EventKind uint8

const (
	KindUnsupported EventKind = iota // unknown platform event, always dropped
	KindDown                         // contact started
	KindMove                         // contact (or hovering cursor) moved
	KindUp                           // contact released
	KindStationary                   // contact reported without movement
	KindCancel                       // platform cancelled the sequence
)

// String returns the phase name.
func (k EventKind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindMove:
		return "move"
	case KindUp:
		return "up"
	case KindStationary:
		return "stationary"
	case KindCancel:
		return "cancel"
	default:
		return "unsupported"
	}
}

// DeviceKind identifies the physical input device.
type DeviceKind uint8

const (
	DeviceTouch  DeviceKind = iota // finger
	DeviceMouse                    // mouse or trackpad cursor
	DeviceStylus                   // pen
)

// SignalKind distinguishes discrete signals from contact events.
type SignalKind uint8

const (
	SignalNormal SignalKind = iota // regular contact event
	SignalScroll                   // wheel or trackpad scroll, Delta carries the offset
	SignalScale                    // trackpad pinch, Scale carries the factor
	SignalRotate                   // trackpad rotate, Rotation carries radians
	SignalHover                    // cursor moved without contact
)

// Button identifies the pressed button of a contact.
type Button uint8

const (
	ButtonNone      Button = iota // hovering, nothing pressed
	ButtonPrimary                 // left mouse button, finger or pen tip
	ButtonSecondary               // right mouse button
	ButtonMiddle                  // middle mouse button (scroll wheel click)
)

// Modifiers is a bitmask of keyboard modifier keys held during the event.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota // Shift key
	ModCtrl                        // Control key
	ModAlt                         // Alt / Option key
	ModMeta                        // Meta / Command / Windows key
)

// PointerEvent is one raw pointer sample. It is a value type and is never
// mutated by recognizers.
type PointerEvent struct {
	Kind   EventKind
	Button Button
	Device DeviceKind
	Signal SignalKind

	// Timestamp is the platform time of the sample, relative to an arbitrary
	// but fixed epoch shared with the Scheduler.
	Timestamp time.Duration

	// Pointer is assigned by the Dispatcher when a Down starts a sequence on
	// DeviceID. Events handed to an ArenaManager directly must set it.
	Pointer  PointerID
	DeviceID int64

	Position  Vec2
	Delta     Vec2
	Modifiers Modifiers

	// Pressure in device units; PressureMin/PressureMax describe the range.
	Pressure    float64
	PressureMin float64
	PressureMax float64

	// Scale and Rotation carry trackpad signal payloads.
	Scale    float64
	Rotation float64
}

// IsSignal reports whether the event is a discrete scroll/scale/rotate signal.
func (e PointerEvent) IsSignal() bool {
	return e.Signal == SignalScroll || e.Signal == SignalScale || e.Signal == SignalRotate
}
