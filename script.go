package gesture

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	Device   int64   `json:"device,omitempty"`
	Kind     string  `json:"kind,omitempty"`
	Button   string  `json:"button,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	DX       float64 `json:"dx,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	Pressure float64 `json:"pressure,omitempty"`
	MaxPress float64 `json:"maxPressure,omitempty"`
	Steps    int     `json:"steps,omitempty"`
	Ms       int     `json:"ms,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a timed list of pointer actions across one or more devices,
// loaded from JSON:
//
//	{"steps": [
//		{"action": "press", "device": 1, "x": 10, "y": 10},
//		{"action": "wait", "ms": 600},
//		{"action": "release", "device": 1}
//	]}
//
// Actions: press, move, release, cancel, click, drag (toX/toY over ms in
// steps moves), hover, scroll (dx/dy), pinch (scale), rotate (rotation,
// radians) and wait (ms). Every device defaults to touch with the primary
// button; "kind" and "button" override that on the step that first uses the
// device.
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON gesture script.
func LoadScript(data []byte) (*Script, error) {
	var script gestureScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse gesture script: step %d: %w", i, err)
		}
	}
	return &Script{steps: script.Steps}, nil
}

// LoadScriptFile reads and parses a gesture script file.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load gesture script: %w", err)
	}
	return LoadScript(data)
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "press", "move", "release", "cancel", "click", "drag",
		"hover", "scroll", "pinch", "rotate", "wait":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, ok := parseDeviceKind(st.Kind); !ok {
		return fmt.Errorf("unknown device kind %q", st.Kind)
	}
	if _, ok := parseButton(st.Button); !ok {
		return fmt.Errorf("unknown button %q", st.Button)
	}
	if st.Ms < 0 || st.Steps < 0 {
		return fmt.Errorf("negative duration or step count")
	}
	return nil
}

func parseDeviceKind(s string) (DeviceKind, bool) {
	switch s {
	case "", "touch":
		return DeviceTouch, true
	case "mouse":
		return DeviceMouse, true
	case "stylus":
		return DeviceStylus, true
	}
	return 0, false
}

func parseButton(s string) (Button, bool) {
	switch s {
	case "", "primary":
		return ButtonPrimary, true
	case "secondary":
		return ButtonSecondary, true
	case "middle":
		return ButtonMiddle, true
	}
	return 0, false
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

// Events expands the script into pointer events ordered by time, and returns
// the script's end time.
func (s *Script) Events() ([]PointerEvent, time.Duration) {
	var (
		now   time.Duration
		order []*Sequence
		seqs  = make(map[int64]*Sequence)
	)
	seqFor := func(st scriptStep) *Sequence {
		if q := seqs[st.Device]; q != nil {
			return q.At(now)
		}
		kind, _ := parseDeviceKind(st.Kind)
		button, _ := parseButton(st.Button)
		q := NewSequence(kind, st.Device).WithButton(button)
		seqs[st.Device] = q
		order = append(order, q)
		return q.At(now)
	}
	for _, st := range s.steps {
		d := time.Duration(st.Ms) * time.Millisecond
		switch st.Action {
		case "wait":
			now += d
		case "press":
			q := seqFor(st)
			if st.MaxPress > 0 {
				q.WithPressure(st.Pressure, 0, st.MaxPress)
			}
			q.Press(st.X, st.Y)
		case "move":
			q := seqFor(st)
			if st.MaxPress > 0 {
				q.WithPressure(st.Pressure, 0, st.MaxPress)
			}
			q.Move(st.X, st.Y)
		case "release":
			seqFor(st).Release()
		case "cancel":
			seqFor(st).Cancel()
		case "click":
			seqFor(st).Click(st.X, st.Y)
		case "drag":
			q := seqFor(st)
			q.Drag(Vec2{st.X, st.Y}, Vec2{st.ToX, st.ToY}, st.Steps, d)
			now = q.Now()
		case "hover":
			seqFor(st).Hover(st.X, st.Y)
		case "scroll":
			seqFor(st).Scroll(st.X, st.Y, st.DX, st.DY)
		case "pinch":
			seqFor(st).Pinch(st.X, st.Y, st.Scale)
		case "rotate":
			seqFor(st).Rotate(st.X, st.Y, st.Rotation)
		}
	}
	return Merge(order...), now
}

// Run replays the script through d and then advances its scheduler to the
// script's end time so trailing timers fire. It returns the end time.
func (s *Script) Run(d *Dispatcher) time.Duration {
	events, end := s.Events()
	d.HandlePacket(events)
	d.AdvanceTo(end)
	return end
}
