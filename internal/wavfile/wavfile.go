// Package wavfile writes the 44100Hz, mono, 16-bit signed PCM WAV files this
// engine's offline renderer produces. It is a thin wrapper over
// github.com/youpy/go-wav rather than a hand-rolled RIFF writer, since a
// real WAV-encoding dependency already turned up in the retrieved example
// pack.
package wavfile

import (
	"io"

	wav "github.com/youpy/go-wav"
)

const (
	// SampleRate is the fixed output sample rate this format uses.
	SampleRate = 44100
	// BitsPerSample is the fixed output bit depth.
	BitsPerSample = 16
	// NumChannels is fixed at mono.
	NumChannels = 1
)

// QuantizeMono clamps each sample to [-1, 1] and scales it to a signed
// 16-bit PCM value, the conversion the offline renderer applies right before
// handing its buffer to Write.
func QuantizeMono(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(s * 32767)
	}
	return out
}

// Write encodes samples as a mono, 16-bit PCM WAV file at SampleRate.
func Write(w io.Writer, samples []int16) error {
	writer := wav.NewWriter(w, uint32(len(samples)), NumChannels, SampleRate, BitsPerSample)
	frames := make([]wav.Sample, len(samples))
	for i, s := range samples {
		frames[i].Values[0] = int(s)
	}
	return writer.WriteSamples(frames)
}
