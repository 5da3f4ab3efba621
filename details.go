package gesture

import "time"

// --- Callback details ---

// TapDetails carries tap data.
type TapDetails struct {
	Pointer   PointerID
	Position  Vec2
	Device    DeviceKind
	Button    Button
	Modifiers Modifiers
	Timestamp time.Duration
}

// DoubleTapDetails carries the position of the second tap.
type DoubleTapDetails struct {
	Position  Vec2
	Timestamp time.Duration
}

// MultiTapDetails carries per-pointer tap data for MultiTap.
type MultiTapDetails struct {
	Position Vec2
	Device   DeviceKind
}

// LongPressStartDetails carries the position where the long press began.
type LongPressStartDetails struct {
	Position  Vec2
	Timestamp time.Duration
}

// LongPressMoveDetails carries movement after a long press started.
type LongPressMoveDetails struct {
	Position Vec2
	// Offset is Position relative to where the long press began.
	Offset Vec2
}

// LongPressEndDetails carries release data of a long press.
type LongPressEndDetails struct {
	Position Vec2
	Velocity Velocity
}

// ForcePressDetails carries a force press sample. Pressure is normalized
// into [0, 1] over the device's pressure range.
type ForcePressDetails struct {
	Position Vec2
	Pressure float64
}

// HoverDetails carries cursor data for hover callbacks.
type HoverDetails struct {
	Position  Vec2
	Delta     Vec2
	Device    DeviceKind
	Timestamp time.Duration
}

// DragDownDetails carries the contact position of a possible drag.
type DragDownDetails struct {
	Position Vec2
}

// DragStartDetails carries the position where the drag began.
type DragStartDetails struct {
	Position  Vec2
	Device    DeviceKind
	Timestamp time.Duration
}

// DragUpdateDetails carries one drag movement.
type DragUpdateDetails struct {
	Position Vec2
	Delta    Vec2
	// PrimaryDelta is the delta along the constrained axis, zero for free drags.
	PrimaryDelta float64
	Timestamp    time.Duration
}

// DragEndDetails carries the release velocity of a drag. Velocity is zero
// unless the release qualified as a fling.
type DragEndDetails struct {
	Velocity Velocity
	// PrimaryVelocity is the velocity along the constrained axis.
	PrimaryVelocity float64
}

// DragCancelDetails is passed when a drag is abandoned.
type DragCancelDetails struct {
	Pointer PointerID
}

// ScaleStartDetails carries the focal point at the start of a pinch.
type ScaleStartDetails struct {
	FocalPoint   Vec2
	PointerCount int
}

// ScaleUpdateDetails carries one pinch/rotate update.
type ScaleUpdateDetails struct {
	FocalPoint      Vec2
	FocalDelta      Vec2
	Scale           float64
	HorizontalScale float64
	VerticalScale   float64
	// Rotation is in radians, positive clockwise in screen coordinates.
	Rotation     float64
	PointerCount int
}

// ScaleEndDetails carries the end of a pinch.
type ScaleEndDetails struct {
	Velocity     Velocity
	PointerCount int
}
