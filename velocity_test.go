package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVelocityTrackerTooFewSamples(t *testing.T) {
	vt := NewVelocityTracker()
	assert.False(t, vt.Estimate().Valid())

	vt.AddPosition(0, Vec2{0, 0})
	vt.AddPosition(10*ms, Vec2{10, 0})
	est := vt.Estimate()
	assert.Less(t, est.Confidence, 0.0)
	assert.Equal(t, VelocityZero, vt.Velocity())
}

func TestVelocityTrackerLinearMotion(t *testing.T) {
	tests := []struct {
		name   string
		perSec Vec2
	}{
		{"right", Vec2{1000, 0}},
		{"up-left", Vec2{-300, -400}},
		{"slow", Vec2{0, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vt := NewVelocityTracker()
			for i := 0; i <= 5; i++ {
				at := time.Duration(i) * 8 * ms
				vt.AddPosition(at, tt.perSec.Scale(at.Seconds()))
			}
			est := vt.Estimate()
			assert.InDelta(t, tt.perSec.X, est.PixelsPerSecond.X, 1e-3)
			assert.InDelta(t, tt.perSec.Y, est.PixelsPerSecond.Y, 1e-3)
			assert.InDelta(t, 1.0, est.Confidence, 1e-9)
			assert.Equal(t, 40*ms, est.Duration)
		})
	}
}

func TestVelocityTrackerHorizon(t *testing.T) {
	vt := NewVelocityTracker()
	// Slow motion long ago, fast motion in the last 50ms.
	for i := 0; i <= 10; i++ {
		vt.AddPosition(time.Duration(i)*30*ms, Vec2{float64(i), 0})
	}
	base := 300 * ms
	for i := 1; i <= 5; i++ {
		at := base + time.Duration(i)*10*ms
		vt.AddPosition(at, Vec2{10 + float64(i)*20, 0})
	}
	est := vt.Estimate()
	assert.True(t, est.Valid())
	assert.InDelta(t, 2000, est.PixelsPerSecond.X, 1e-3)
}

func TestVelocityTrackerPauseResets(t *testing.T) {
	vt := NewVelocityTracker()
	vt.AddPosition(0, Vec2{0, 0})
	vt.AddPosition(10*ms, Vec2{10, 0})
	vt.AddPosition(20*ms, Vec2{20, 0})
	assert.True(t, vt.Estimate().Valid())

	vt.AddPosition(100*ms, Vec2{20, 0})
	assert.False(t, vt.Estimate().Valid(), "a pause discards the earlier motion")
}

func TestVelocityTrackerDegenerateTimestamps(t *testing.T) {
	vt := NewVelocityTracker()
	for i := 0; i < 4; i++ {
		vt.AddPosition(10*ms, Vec2{float64(i), 0})
	}
	est := vt.Estimate()
	assert.Equal(t, 0.0, est.Confidence)
	assert.Equal(t, VelocityZero, vt.Velocity())
}

func TestVelocityClampMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec2
		min, max float64
		wantLen  float64
	}{
		{"within", Vec2{30, 40}, 10, 100, 50},
		{"too fast", Vec2{300, 400}, 10, 100, 100},
		{"too slow", Vec2{3, 4}, 10, 100, 10},
		{"zero stays zero", Vec2{}, 10, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Velocity{tt.v}.ClampMagnitude(tt.min, tt.max).PixelsPerSecond
			assert.InDelta(t, tt.wantLen, got.Len(), 1e-9)
			if !tt.v.IsZero() {
				// Direction is preserved.
				assert.InDelta(t, math.Atan2(tt.v.Y, tt.v.X), math.Atan2(got.Y, got.X), 1e-9)
			}
		})
	}
}

func TestVelocityArithmetic(t *testing.T) {
	a := Velocity{Vec2{1, 2}}
	b := Velocity{Vec2{3, 5}}
	assert.Equal(t, Velocity{Vec2{4, 7}}, a.Add(b))
	assert.Equal(t, Velocity{Vec2{2, 3}}, b.Sub(a))
	assert.Equal(t, Velocity{Vec2{-1, -2}}, a.Neg())
}

func TestPolyFitQuadratic(t *testing.T) {
	ts := []float64{-0.04, -0.03, -0.02, -0.01, 0}
	ys := make([]float64, len(ts))
	for i, x := range ts {
		ys[i] = 3 + 200*x + 5000*x*x
	}
	coef, conf, ok := polyFit(ts, ys, 2)
	assert.True(t, ok)
	assert.InDelta(t, 3, coef[0], 1e-3)
	assert.InDelta(t, 200, coef[1], 1e-3)
	assert.InDelta(t, 5000, coef[2], 1e-3)
	assert.InDelta(t, 1, conf, 1e-9)

	_, _, ok = polyFit(ts[:2], ys[:2], 2)
	assert.False(t, ok)
}
