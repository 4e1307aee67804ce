// Package pitch builds the twelve-tone equal temperament frequency table and
// the matching note-name strings used throughout the engine.
package pitch

import "math"

const (
	// NotesPerOctave is the number of semitones in an octave.
	NotesPerOctave = 12
	// OctavesImplemented is the number of octaves covered by the table.
	OctavesImplemented = 9
	// TotalNotes is the size of the generated pitch and name tables.
	TotalNotes = NotesPerOctave * OctavesImplemented

	// A4 is the reference pitch used to generate the table, A above middle C.
	A4 = 440.0
)

var (
	table []float64
	names []string
)

func init() {
	table = generateTwelveToneEqual(A4)
	names = generateNoteNames()
}

// Table returns the 108-entry 12-TET frequency table, index i holding the
// frequency of octave i/12 semitone i%12, where index 45 (octave 3, semitone
// 9) is A4 = 440Hz and index 57 is A5 = 880Hz.
func Table() []float64 {
	return table
}

// Names returns the note names matching Table(), e.g. names[57] == "A5".
func Names() []string {
	return names
}

// generateTwelveToneEqual follows the construction used by the original
// synthesis engine: start from A in octave 0 (here aboveMiddleC/8), fill each
// octave's twelve semitones around it, then double for the next octave.
func generateTwelveToneEqual(aboveMiddleC float64) []float64 {
	notes := make([]float64, TotalNotes)
	// The reference engine anchors octave 0 at aboveMiddleC/16; this table is
	// shifted up one octave (anchored at aboveMiddleC/8) so that index 45
	// lands exactly on A4 and index 57 on A5, matching the documented table.
	a := aboveMiddleC / 8.0
	for octave := 0; octave < OctavesImplemented; octave++ {
		for k := 0; k < NotesPerOctave; k++ {
			switch {
			case k < 9:
				notes[octave*NotesPerOctave+k] = a / math.Pow(2, float64(9-k)/12.0)
			case k == 9:
				notes[octave*NotesPerOctave+k] = a
			default:
				notes[octave*NotesPerOctave+k] = a * math.Pow(2, float64(k-9)/12.0)
			}
		}
		a *= 2.0
	}
	return notes
}

func generateNoteNames() []string {
	base := [NotesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	result := make([]string, TotalNotes)
	for octave := 0; octave < OctavesImplemented; octave++ {
		for k := 0; k < NotesPerOctave; k++ {
			// Octave labels are shifted up by one to agree with the frequency
			// table's own one-octave shift (see generateTwelveToneEqual), so
			// index 45 reads "A4" for the same entry Table() makes 440Hz.
			result[octave*NotesPerOctave+k] = base[k] + itoa(octave+1)
		}
	}
	return result
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	return string(rune('0' + n))
}
