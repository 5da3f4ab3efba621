package gesture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	s, err := LoadScript([]byte(`{
		"steps": [
			{"action": "press", "device": 1, "x": 10, "y": 20},
			{"action": "wait", "ms": 600},
			{"action": "release", "device": 1}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	events, end := s.Events()
	require.Len(t, events, 2)
	assert.Equal(t, 600*ms, end)
	assert.Equal(t, KindDown, events[0].Kind)
	assert.Equal(t, Vec2{10, 20}, events[0].Position)
	assert.Equal(t, DeviceTouch, events[0].Device)
	assert.Equal(t, KindUp, events[1].Kind)
	assert.Equal(t, 600*ms, events[1].Timestamp)
	assert.Equal(t, Vec2{10, 20}, events[1].Position)
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse gesture script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, `unknown action "screenshot"`},
		{"unknown kind", `{"steps": [{"action": "press", "kind": "glove"}]}`, `unknown device kind "glove"`},
		{"unknown button", `{"steps": [{"action": "press", "button": "fourth"}]}`, `unknown button "fourth"`},
		{"negative wait", `{"steps": [{"action": "wait", "ms": -5}]}`, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScriptDevicesAndSignals(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "hover", "device": 2, "kind": "mouse", "x": 5, "y": 5},
		{"action": "scroll", "device": 2, "x": 5, "y": 5, "dy": -30},
		{"action": "wait", "ms": 10},
		{"action": "pinch", "device": 2, "x": 5, "y": 5, "scale": 2},
		{"action": "rotate", "device": 2, "x": 5, "y": 5, "rotation": 0.5},
		{"action": "press", "device": 3, "kind": "stylus", "button": "secondary", "x": 1, "y": 1, "pressure": 2, "maxPressure": 4},
		{"action": "cancel", "device": 3}
	]}`))
	require.NoError(t, err)

	events, end := s.Events()
	require.Len(t, events, 6)
	assert.Equal(t, 10*ms, end)
	assert.Equal(t, SignalHover, events[0].Signal)
	assert.Equal(t, DeviceMouse, events[0].Device)
	assert.Equal(t, Vec2{0, -30}, events[1].Delta)
	assert.Equal(t, 2.0, events[2].Scale)
	assert.Equal(t, 0.5, events[3].Rotation)

	press := events[4]
	assert.Equal(t, DeviceStylus, press.Device)
	assert.Equal(t, ButtonSecondary, press.Button)
	assert.Equal(t, 2.0, press.Pressure)
	assert.Equal(t, 4.0, press.PressureMax)
	assert.Equal(t, KindCancel, events[5].Kind)
}

func TestScriptRunLongPress(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "press", "device": 1, "x": 10, "y": 10},
		{"action": "wait", "ms": 600},
		{"action": "release", "device": 1}
	]}`))
	require.NoError(t, err)

	h := newHarness(t, NewTap(), NewLongPress())
	end := s.Run(h.d)
	assert.Equal(t, 600*ms, end)
	assert.Equal(t, 1, h.count(EventLongPressStart))
	assert.Equal(t, 1, h.count(EventLongPressEnd))
	assert.Zero(t, h.count(EventTap))
}

func TestScriptRunDrag(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "device": 1, "x": 10, "y": 10, "toX": 110, "toY": 10, "steps": 5, "ms": 50},
		{"action": "wait", "ms": 500}
	]}`))
	require.NoError(t, err)

	pan := NewPan()
	rec := recordPan(pan)
	h := newHarness(t, NewTap(), pan)
	end := s.Run(h.d)

	assert.Equal(t, 550*ms, end)
	assert.Equal(t, 550*ms, h.sched.Now())
	require.Len(t, rec.starts, 1)
	assert.Equal(t, Vec2{100, 0}, rec.total())
	require.Len(t, rec.ends, 1)
	assert.InDelta(t, 2000, rec.ends[0].Velocity.PixelsPerSecond.X, 1e-3)
}

func TestScriptRunDoubleTap(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "device": 1, "x": 100, "y": 100},
		{"action": "wait", "ms": 120},
		{"action": "click", "device": 1, "x": 103, "y": 100},
		{"action": "wait", "ms": 400}
	]}`))
	require.NoError(t, err)

	h := newHarness(t, NewTap(), NewDoubleTap())
	s.Run(h.d)
	h.requireTypes(EventDoubleTap)
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps": [{"action": "click", "x": 1, "y": 1}]}`), 0o600))

	s, err := LoadScriptFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = LoadScriptFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
