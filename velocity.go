package gesture

import (
	"math"
	"time"
)

const (
	velocityHistorySize = 20
	velocityHorizon     = 50 * time.Millisecond
	velocityStopGap     = 40 * time.Millisecond
	velocityMinSamples  = 3
	velocityFitDegree   = 2
)

// Velocity is a velocity in logical pixels per second.
type Velocity struct {
	PixelsPerSecond Vec2
}

// VelocityZero is the zero velocity.
var VelocityZero = Velocity{}

// Add returns v+o.
func (v Velocity) Add(o Velocity) Velocity {
	return Velocity{v.PixelsPerSecond.Add(o.PixelsPerSecond)}
}

// Sub returns v-o.
func (v Velocity) Sub(o Velocity) Velocity {
	return Velocity{v.PixelsPerSecond.Sub(o.PixelsPerSecond)}
}

// Neg returns -v.
func (v Velocity) Neg() Velocity {
	return Velocity{v.PixelsPerSecond.Scale(-1)}
}

// ClampMagnitude returns v with its speed clamped into [minValue, maxValue],
// keeping the direction. A zero velocity stays zero.
func (v Velocity) ClampMagnitude(minValue, maxValue float64) Velocity {
	speed := v.PixelsPerSecond.Len()
	if speed == 0 {
		return v
	}
	switch {
	case speed > maxValue:
		return Velocity{v.PixelsPerSecond.Scale(maxValue / speed)}
	case speed < minValue:
		return Velocity{v.PixelsPerSecond.Scale(minValue / speed)}
	}
	return v
}

// VelocityEstimate is the result of a least-squares velocity fit.
// Confidence is negative when too few samples were available, 0 when the fit
// was numerically degenerate, and otherwise the goodness of fit in [0, 1].
type VelocityEstimate struct {
	PixelsPerSecond Vec2
	Confidence      float64
	// Duration is the time spanned by the samples used.
	Duration time.Duration
	// Offset is the displacement between the oldest and newest sample used.
	Offset Vec2
}

// Valid reports whether the estimate was computed from enough samples.
func (e VelocityEstimate) Valid() bool { return e.Confidence >= 0 }

type pointAtTime struct {
	pos   Vec2
	time  time.Duration
	valid bool
}

// VelocityTracker estimates pointer velocity from recent position samples.
// It keeps the last 20 samples; only samples within 50ms of the newest one,
// and not separated by a pause of more than 40ms, contribute to an estimate.
type VelocityTracker struct {
	samples [velocityHistorySize]pointAtTime
	index   int
}

// NewVelocityTracker returns an empty tracker.
func NewVelocityTracker() *VelocityTracker {
	return &VelocityTracker{}
}

// AddPosition records a sample. A gap of more than 40ms since the previous
// sample is treated as the start of a new motion and discards the history.
func (vt *VelocityTracker) AddPosition(t time.Duration, pos Vec2) {
	last := vt.samples[vt.index]
	if last.valid && t-last.time > velocityStopGap {
		vt.Reset()
	}
	vt.index = (vt.index + 1) % velocityHistorySize
	vt.samples[vt.index] = pointAtTime{pos: pos, time: t, valid: true}
}

// Reset discards every sample.
func (vt *VelocityTracker) Reset() {
	vt.samples = [velocityHistorySize]pointAtTime{}
	vt.index = 0
}

// Estimate fits a quadratic to the retained samples on each axis and returns
// the derivative at the newest sample.
func (vt *VelocityTracker) Estimate() VelocityEstimate {
	newest := vt.samples[vt.index]
	if !newest.valid {
		return VelocityEstimate{Confidence: -1}
	}

	var ts, xs, ys []float64
	oldest := newest
	prev := newest
	idx := vt.index
	for n := 0; n < velocityHistorySize; n++ {
		s := vt.samples[idx]
		if !s.valid {
			break
		}
		age := newest.time - s.time
		if age > velocityHorizon || prev.time-s.time > velocityStopGap || age < 0 {
			break
		}
		ts = append(ts, -age.Seconds())
		xs = append(xs, s.pos.X)
		ys = append(ys, s.pos.Y)
		oldest = s
		prev = s
		idx = (idx + velocityHistorySize - 1) % velocityHistorySize
	}

	if len(ts) < velocityMinSamples {
		return VelocityEstimate{
			Confidence: -1,
			Duration:   newest.time - oldest.time,
			Offset:     newest.pos.Sub(oldest.pos),
		}
	}

	est := VelocityEstimate{
		Duration: newest.time - oldest.time,
		Offset:   newest.pos.Sub(oldest.pos),
	}
	xc, xconf, okx := polyFit(ts, xs, velocityFitDegree)
	yc, yconf, oky := polyFit(ts, ys, velocityFitDegree)
	if !okx || !oky {
		Logger().Debug("gesture: velocity fit degenerate", "samples", len(ts))
		return est
	}
	est.PixelsPerSecond = Vec2{xc[1], yc[1]}
	est.Confidence = xconf * yconf
	if math.IsNaN(est.Confidence) {
		est.Confidence = 0
		est.PixelsPerSecond = Vec2{}
	}
	return est
}

// Velocity returns the current estimate as a Velocity. Invalid or degenerate
// estimates yield zero velocity.
func (vt *VelocityTracker) Velocity() Velocity {
	est := vt.Estimate()
	if est.Confidence <= 0 {
		return VelocityZero
	}
	return Velocity{est.PixelsPerSecond}
}
