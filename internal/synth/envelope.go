package synth

// NotReleased is the releaseTime value passed to Envelope.Loudness to mean
// "this note has not been released yet".
const NotReleased = -1.0

// Envelope maps elapsed time (and, once a note has been released, the time
// at which release happened) onto a loudness multiplier in [0, 1].
//
// Once releaseTime != NotReleased, implementations must compute the
// sustaining-section value as of releaseTime (not as of t) and then ramp
// that snapshot down to zero over Release() seconds - the release tail
// continues from where the envelope was, not from its peak.
type Envelope interface {
	Loudness(t, releaseTime float64) float64
	Release() float64
}

// DefaultAttackReleaseLength is the attack and release time, in seconds, used
// by the default AR envelope.
const DefaultAttackReleaseLength = 0.05

type arEnvelope struct {
	attackPeak          float64
	attackReleaseLength float64
}

// AREnvelope returns an attack/release envelope: loudness ramps linearly from
// 0 to attackPeak over attackReleaseLength seconds, holds at attackPeak while
// sustaining, and on release ramps the held (or in-progress) value back to
// zero over attackReleaseLength seconds.
func AREnvelope(attackPeak, attackReleaseLength float64) Envelope {
	return arEnvelope{attackPeak: attackPeak, attackReleaseLength: attackReleaseLength}
}

// DefaultAREnvelope returns the AR envelope used when an instrument does not
// specify one: peak 1.0, attack and release length DefaultAttackReleaseLength.
func DefaultAREnvelope() Envelope {
	return AREnvelope(1.0, DefaultAttackReleaseLength)
}

func (e arEnvelope) Loudness(t, releaseTime float64) float64 {
	if releaseTime == NotReleased {
		if t < e.attackReleaseLength {
			return (t / e.attackReleaseLength) * e.attackPeak
		}
		return e.attackPeak
	}
	var held float64
	if releaseTime < e.attackReleaseLength {
		held = (releaseTime / e.attackReleaseLength) * e.attackPeak
	} else {
		held = e.attackPeak
	}
	return held * ((releaseTime + e.attackReleaseLength - t) / e.attackReleaseLength)
}

func (e arEnvelope) Release() float64 {
	return e.attackReleaseLength
}

type adsrEnvelope struct {
	attackPeak    float64
	attackLength  float64
	decayLength   float64
	sustainLevel  float64
	releaseLength float64
}

// ADSREnvelope returns an attack/decay/sustain/release envelope.
func ADSREnvelope(attackPeak, attackLength, decayLength, sustainLevel, releaseLength float64) Envelope {
	return adsrEnvelope{
		attackPeak:    attackPeak,
		attackLength:  attackLength,
		decayLength:   decayLength,
		sustainLevel:  sustainLevel,
		releaseLength: releaseLength,
	}
}

// DefaultADSREnvelope returns the envelope used by default when an
// instrument asks for ADSR shaping without specifying its own stages.
func DefaultADSREnvelope() Envelope {
	return ADSREnvelope(1.0, 0.1, 0.1, 0.2, 0.2)
}

func (e adsrEnvelope) sustainingValue(x float64) float64 {
	switch {
	case x < e.attackLength:
		return (x / e.attackLength) * e.attackPeak
	case x < e.attackLength+e.decayLength:
		return e.attackPeak - ((x-e.attackLength)/e.decayLength)*(e.attackPeak-e.sustainLevel)
	default:
		return e.sustainLevel
	}
}

func (e adsrEnvelope) Loudness(t, releaseTime float64) float64 {
	if releaseTime == NotReleased {
		return e.sustainingValue(t)
	}
	held := e.sustainingValue(releaseTime)
	return held * ((releaseTime + e.releaseLength - t) / e.releaseLength)
}

func (e adsrEnvelope) Release() float64 {
	return e.releaseLength
}
