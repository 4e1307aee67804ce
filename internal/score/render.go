package score

// Render steps a Maestro sample by sample at the given sample rate until it
// reports Finished, or until maxSeconds elapses (a safety cap against a
// Maestro that can never finish, for example one that loops forever). The
// returned slice holds one float64 per sample, in [-1, 1] under normal
// volumes.
func Render(m *Maestro, sampleRate int, maxSeconds float64) []float64 {
	dt := 1.0 / float64(sampleRate)
	maxSamples := int(maxSeconds * float64(sampleRate))
	samples := make([]float64, 0, maxSamples)
	for t := 0.0; !m.Finished() && len(samples) < maxSamples; t += dt {
		samples = append(samples, m.Sample(t))
	}
	return samples
}
