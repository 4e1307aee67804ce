package mml

// ParserConfig holds the defaults a Parser starts each voice line from.
// Every field mirrors a piece of per-line mutable state described in the
// MML grammar (octave, beat note, tempo, articulation, volume).
type ParserConfig struct {
	DefaultOctave       int
	DefaultBeatNote     int
	DefaultTempo        float64
	DefaultArticulation float64
	DefaultVolume       float64

	MinOctave int
	MaxOctave int
	MinTempo  int
	MaxTempo  int
	MinBeat   int
	MaxBeat   int
}

// DefaultParserConfig returns the grammar's documented defaults: octave 4,
// quarter-note beat, 120bpm, normal (7/8) articulation, mezzo volume.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		DefaultOctave:       4,
		DefaultBeatNote:     4,
		DefaultTempo:        120,
		DefaultArticulation: 7.0 / 8.0,
		DefaultVolume:       0.5,
		MinOctave:           0,
		MaxOctave:           8,
		MinTempo:            16,
		MaxTempo:            256,
		MinBeat:             1,
		MaxBeat:             64,
	}
}
