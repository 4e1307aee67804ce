package synth

import "math"

// javidSine is a cheap cubic-polynomial approximation of sin(val), folded into a
// single period. It underlies the harmonica preset's low-frequency-modulated
// oscillators below.
func javidSine(val float64) float64 {
	x := val / twoPi
	x -= math.Floor(x)
	return 20.875 * x * (x - 0.5) * (x - 1.0)
}

type squareWithLFO struct {
	lfoDepth float64
	lfoRate  float64
}

// SquareWaveWithLFO returns a square-ish oscillator whose phase is modulated
// by a slow sine built from javidSine. lfoDepth and lfoRate come from the
// harmonica preset this oscillator was modeled on; the modulation term mixes
// the carrier frequency into the LFO amplitude, which looks like an error in
// the source this was ported from but is kept faithfully rather than fixed.
func SquareWaveWithLFO(lfoDepth, lfoRate float64) Oscillator {
	return squareWithLFO{lfoDepth: lfoDepth, lfoRate: lfoRate}
}

func (s squareWithLFO) Sample(frequency, t float64) float64 {
	modulation := s.lfoDepth * frequency * javidSine(s.lfoRate*twoPi*t)
	return math.Copysign(1.0, javidSine(frequency*twoPi*t+modulation))
}

type sawWithLFO struct {
	lfoDepth float64
	lfoRate  float64
}

// SawWaveWithLFO is the additive-harmonics counterpart to SquareWaveWithLFO:
// it sums javidSine(n*fundamental)/n for the first 99 harmonics of a
// similarly LFO-modulated fundamental.
func SawWaveWithLFO(lfoDepth, lfoRate float64) Oscillator {
	return sawWithLFO{lfoDepth: lfoDepth, lfoRate: lfoRate}
}

func (s sawWithLFO) Sample(frequency, t float64) float64 {
	modulation := s.lfoDepth * frequency * javidSine(s.lfoRate*twoPi*t)
	fundamental := frequency*twoPi*t + modulation
	var sum float64
	for n := 1; n < 100; n++ {
		sum += javidSine(float64(n)*fundamental) / float64(n)
	}
	return sum
}

// Harmonica returns the layered "harmonica" instrument: a compound oscillator
// mixing an LFO-modulated saw, an LFO-modulated square, a plain square an
// octave up, and a touch of noise two octaves up, shaped by an ADSR envelope
// with an instant attack and a one-second decay to a 0.95 sustain level.
func Harmonica() Instrument {
	osc := CompoundWave(
		HarmonicPart{Gain: 0.3 * 1.0, Oscillator: SawWaveWithLFO(0.001, 5.0), Harmonic: 0.5},
		HarmonicPart{Gain: 0.3 * 1.0, Oscillator: SquareWaveWithLFO(0.001, 5.0), Harmonic: 1.0},
		HarmonicPart{Gain: 0.3 * 0.5, Oscillator: SquareWave(), Harmonic: 2.0},
		HarmonicPart{Gain: 0.3 * 0.05, Oscillator: NoiseWave(), Harmonic: 4.0},
	)
	env := ADSREnvelope(1.0, 0.0, 1.0, 0.95, 0.1)
	return NewInstrument(osc, env)
}
