package banner

import "time"

// Clock reports the current time. Hosts and tests share one clock with the
// presenter so Tick and animation start times agree.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// tween interpolates the banner height between two values.
type tween struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	done     func()
}

// at returns the interpolated value and whether the tween has finished.
func (tw *tween) at(now time.Time) (float64, bool) {
	if tw.duration <= 0 {
		return tw.to, true
	}
	elapsed := now.Sub(tw.start)
	if elapsed >= tw.duration {
		return tw.to, true
	}
	if elapsed <= 0 {
		return tw.from, false
	}
	p := easeInOutCubic(float64(elapsed) / float64(tw.duration))
	return tw.from + (tw.to-tw.from)*p, false
}

// easeInOutCubic is strictly increasing on [0, 1].
func easeInOutCubic(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := -2*p + 2
	return 1 - q*q*q/2
}
