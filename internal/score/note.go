// Package score implements the Note, Voice, Maestro and Venue types: the
// playback side of the engine, which turns parsed notes into a stream of
// samples.
package score

import "github.com/dimodica/mmlfm/internal/synth"

// Note is a single (instrument, frequency, volume) event scheduled to start
// at StartTime and sound for Duration seconds, plus however long its
// instrument's envelope takes to release.
type Note struct {
	Instrument synth.Instrument
	Frequency  float64
	StartTime  float64
	Duration   float64
	Volume     float64
}

// Before reports whether t is still earlier than this note's start.
func (n Note) Before(t float64) bool {
	return t < n.StartTime
}

// After reports whether t is past this note's sustain and its instrument's
// release tail - i.e. the note has nothing left to contribute at t.
func (n Note) After(t float64) bool {
	return t > n.StartTime+n.Duration+n.Instrument.Release()
}

// Play returns this note's contribution at global time t. Before StartTime
// or after the release tail it is implicitly silent (callers are expected to
// use Before/After to avoid calling Play outside the note's lifetime).
func (n Note) Play(t float64) float64 {
	noteTime := t - n.StartTime
	releaseTime := synth.NotReleased
	if noteTime >= n.Duration {
		releaseTime = n.Duration
	}
	return n.Volume * n.Instrument.Sample(n.Frequency, noteTime, releaseTime)
}
