package score

// SampleProvider is the callback contract an audio device driver calls into
// to pull samples. The device driver itself - opening an output stream,
// buffering, dealing with underruns - is an external collaborator outside
// this repository's scope; Venue.GetSample satisfies this interface and is
// the only thing such a driver needs to hold onto.
type SampleProvider interface {
	GetSample(channel int, globalTime, dt float64) float64
}

var _ SampleProvider = (*Venue)(nil)
