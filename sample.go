package benchhash

import "time"

// Sample is a start/end pair bracketing one timed loop.
//
// Both readings come from time.Now, so Sub uses the monotonic clock and is
// immune to wall-clock adjustments during a phase.
type Sample struct {
	Start time.Time
	End   time.Time
}

// startSample begins a sample; call stop on the result to close it.
func startSample() Sample {
	return Sample{Start: time.Now()}
}

func (s Sample) stop() Sample {
	s.End = time.Now()
	return s
}

// Seconds returns the elapsed time at microsecond resolution.
// Loops that finish within a microsecond count as one microsecond so that
// derived rates stay finite.
func (s Sample) Seconds() float64 {
	d := s.End.Sub(s.Start).Truncate(time.Microsecond)
	if d < time.Microsecond {
		d = time.Microsecond
	}
	return d.Seconds()
}

// Rate returns n units per second over the sample.
func (s Sample) Rate(n uint64) float64 {
	return float64(n) / s.Seconds()
}
