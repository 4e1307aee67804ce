package synth

// Instrument pairs an Oscillator with an Envelope. It is a small, immutable
// value type: copying an Instrument is cheap and safe to share across notes.
type Instrument struct {
	Oscillator Oscillator
	Envelope   Envelope
}

// NewInstrument returns an Instrument built from the given oscillator and
// envelope.
func NewInstrument(oscillator Oscillator, envelope Envelope) Instrument {
	return Instrument{Oscillator: oscillator, Envelope: envelope}
}

// Sample returns envelope.Loudness(t, releaseTime) * oscillator.Sample(frequency, t).
func (i Instrument) Sample(frequency, t, releaseTime float64) float64 {
	return i.Envelope.Loudness(t, releaseTime) * i.Oscillator.Sample(frequency, t)
}

// Release returns the instrument's envelope release length, in seconds.
func (i Instrument) Release() float64 {
	return i.Envelope.Release()
}

// SineInstrument, TriangleInstrument, SquareInstrument, SawInstrument and
// NoiseInstrument build an Instrument from the matching oscillator and the
// default AR envelope, mirroring the reference engine's per-waveform
// Instrument factory methods.
func SineInstrument() Instrument     { return NewInstrument(SineWave(), DefaultAREnvelope()) }
func TriangleInstrument() Instrument { return NewInstrument(TriangleWave(), DefaultAREnvelope()) }
func SquareInstrument() Instrument   { return NewInstrument(SquareWave(), DefaultAREnvelope()) }
func SawInstrument() Instrument      { return NewInstrument(SawWave(), DefaultAREnvelope()) }
func NoiseInstrument() Instrument    { return NewInstrument(NoiseWave(), DefaultAREnvelope()) }

// RectangularInstrument builds an Instrument from a rectangular oscillator of
// the given duty cycle and the default AR envelope.
func RectangularInstrument(dutyCycle float64) Instrument {
	return NewInstrument(RectangularWave(dutyCycle), DefaultAREnvelope())
}
