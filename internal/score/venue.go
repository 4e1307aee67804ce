package score

import "sync/atomic"

const notStarted = -1.0

// defaultQueueCapacity is the number of queued-but-not-yet-playing Maestros
// a Venue can hold before QueueMusic starts refusing submissions.
const defaultQueueCapacity = 64

// VenueOption configures a Venue at construction time.
type VenueOption func(*Venue)

// WithQueueCapacity overrides the default queue capacity.
func WithQueueCapacity(capacity int) VenueOption {
	return func(v *Venue) { v.queue = newMaestroQueue(capacity) }
}

// WithIdleCallback registers a callback invoked from the audio thread
// whenever the Venue runs out of music to play - either because the queue
// was explicitly cleared or because the program drained naturally. The
// callback runs on whatever goroutine calls GetSample, so it must not block;
// a typical use is to call QueueMusic again from inside it, for gapless
// continuation.
func WithIdleCallback(onIdle func()) VenueOption {
	return func(v *Venue) { v.onIdle = onIdle }
}

// Venue plays a queue of Maestros, one after another, advancing an internal
// time cursor sample by sample. It is built to be driven directly from an
// audio callback: GetSample never allocates or blocks once constructed, and
// cross-thread signaling (stop, loop) uses atomics rather than a mutex so the
// audio thread never waits on the control thread.
//
// Unlike the reference engine this was modeled on, a Venue is an explicit
// value passed into the audio callback rather than a process-wide singleton;
// nothing prevents a caller from running several independently.
type Venue struct {
	queue   *maestroQueue
	current *Maestro
	onIdle  func()

	stopRequested atomic.Bool
	looping       atomic.Bool

	internalTime float64
}

// NewVenue returns an idle Venue ready to have music queued onto it.
func NewVenue(opts ...VenueOption) *Venue {
	v := &Venue{
		queue:        newMaestroQueue(defaultQueueCapacity),
		internalTime: notStarted,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// QueueMusic submits a Maestro to play once everything ahead of it has
// finished. It returns false if the Venue's queue is full; callers should
// treat that as backpressure, not an error.
func (v *Venue) QueueMusic(m *Maestro) bool {
	return v.queue.push(m)
}

// ClearQueue cooperatively stops playback: it raises a flag that the audio
// thread observes the next time it calls GetSample, rather than clearing the
// queue immediately. This lets the audio thread stay non-blocking.
func (v *Venue) ClearQueue() {
	v.stopRequested.Store(true)
}

// SetLooping controls whether the Maestro currently playing restarts from its
// first note when it finishes, instead of being discarded in favor of the
// next queued Maestro.
func (v *Venue) SetLooping(looping bool) {
	v.looping.Store(looping)
}

// Looping reports the current looping setting.
func (v *Venue) Looping() bool {
	return v.looping.Load()
}

// Idle reports whether the Venue has nothing left to play: no Maestro is
// currently sounding and none is queued behind it. Unlike the reference
// engine's single-song source, this is never a permanent end-of-stream - a
// caller can always QueueMusic more and the Venue picks it up on the next
// GetSample - but it is the signal a real-time sink needs to know playback
// has run dry.
func (v *Venue) Idle() bool {
	return v.current == nil && v.queue.empty()
}

// GetSample returns the next output sample for the given channel. Only
// channel 0 produces audio; any other channel returns silence, the same
// convention the reference engine uses to reserve other channels.
// globalTime is the caller's wall-clock audio position and is accepted for
// interface compatibility with the sample-provider callback shape but is not
// itself part of the playback calculation - internalTime, reset whenever the
// Venue switches Maestros, is what actually advances note playback. dt is
// the time, in seconds, since the previous call.
func (v *Venue) GetSample(channel int, globalTime, dt float64) float64 {
	_ = globalTime
	if channel != 0 {
		return 0
	}

	if v.stopRequested.Load() {
		v.queue.drain()
		v.current = nil
		v.stopRequested.Store(false)
		v.internalTime = notStarted
		if v.onIdle != nil {
			v.onIdle()
		}
	}

	if v.current == nil {
		v.current, _ = v.queue.pop()
	}
	if v.current == nil {
		return 0
	}

	if v.current.Finished() {
		if v.looping.Load() {
			v.current.Loop()
		} else {
			v.current, _ = v.queue.pop()
		}
		v.internalTime = notStarted
	}

	if v.current == nil {
		if v.onIdle != nil {
			v.onIdle()
		}
		v.current, _ = v.queue.pop()
		if v.current == nil {
			return 0
		}
	}

	if v.internalTime == notStarted {
		v.internalTime = 0
	} else {
		v.internalTime += dt
	}
	return v.current.Sample(v.internalTime)
}
