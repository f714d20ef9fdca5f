package core

import "math"

// DefaultScrollSmoothing is the exponential decay rate, per second, at which
// the shown offset chases the target offset.
const DefaultScrollSmoothing = 18.0

// snapDistance is how close Current must get to Target before it jumps there.
const snapDistance = 1.0

// ScrollState is the vertical scroll position of one document. Target is
// where the user asked to be; Current is where the view is drawn and eases
// toward Target across frames.
type ScrollState struct {
	Current float32
	Target  float32
}

// Update applies a scroll delta (positive scrolls up, towards the start) and
// advances smoothing by dt seconds. A rate of zero or less jumps straight to
// the target.
func (s *ScrollState) Update(delta, contentHeight, viewportHeight, dt, rate float32) {
	s.Target -= delta

	if contentHeight <= viewportHeight {
		s.Current = 0
		s.Target = 0
		return
	}
	maxOffset := contentHeight - viewportHeight/2
	s.Target = clampFloat(s.Target, 0, maxOffset)
	s.Current = clampFloat(s.Current, 0, maxOffset)

	if rate <= 0 || dt < 0 {
		s.Current = s.Target
		return
	}

	step := float32(1 - math.Exp(-float64(rate*dt)))
	s.Current += (s.Target - s.Current) * step
	if abs32(s.Target-s.Current) < snapDistance {
		s.Current = s.Target
	}
}

// Settled reports whether Current has caught up with Target.
func (s ScrollState) Settled() bool { return s.Current == s.Target }

// ScrollTo moves the target so that the span [top, top+height) is visible.
// It leaves the target alone when the span is already in view.
func (s *ScrollState) ScrollTo(top, height, viewportHeight float32) {
	switch {
	case top < s.Target:
		s.Target = top
	case top+height > s.Target+viewportHeight:
		s.Target = top + height - viewportHeight
	}
}

// VisibleWindow describes which lines of the document are in view.
type VisibleWindow struct {
	FirstLine int
	LineCount int
	// Offset is how far the first line is scrolled past the viewport top.
	Offset float32
}

// Window derives the visible lines from the current offset.
func (s ScrollState) Window(lineHeight, viewportHeight float32, totalLines int) VisibleWindow {
	if lineHeight <= 0 {
		return VisibleWindow{LineCount: totalLines}
	}

	first := max(0, int(math.Floor(float64(s.Current/lineHeight))))
	count := int(math.Floor(float64(viewportHeight / lineHeight)))
	count = max(0, min(count, totalLines))

	return VisibleWindow{
		FirstLine: first,
		LineCount: count,
		Offset:    s.Current - float32(first)*lineHeight,
	}
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
