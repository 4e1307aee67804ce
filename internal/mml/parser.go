package mml

import (
	"fmt"
	"math"

	"github.com/dimodica/mmlfm/internal/pitch"
	"github.com/dimodica/mmlfm/internal/score"
	"github.com/dimodica/mmlfm/internal/synth"
)

var letterSemitone = map[byte]int{
	'A': 9, 'B': 11, 'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7,
}

var volumeWords = map[string]float64{
	"PPP": 0.125, "PP": 0.25, "P": 0.375,
	"MP": 0.5, "MF": 0.625,
	"F": 0.75, "FF": 0.875, "FFF": 1.0,
}

// Parser turns MML voice lines into score.Voice values, using a shared pitch
// table and instrument map. A Parser is immutable once built and safe to use
// from multiple goroutines, since all of the mutable state the grammar
// describes (octave, tempo, ...) lives in a per-call builder instead.
type Parser struct {
	config      ParserConfig
	instruments map[byte]synth.Instrument
	pitches     []float64
}

// NewParser validates the pitch table and instrument map and returns a
// Parser over them. Both checks are configuration errors, not parse errors:
// they describe a broken setup, not malformed MML text.
func NewParser(config ParserConfig, instruments map[byte]synth.Instrument, pitches []float64) (*Parser, error) {
	if len(pitches) != pitch.TotalNotes {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrBadPitchTable, len(pitches), pitch.TotalNotes)
	}
	if _, ok := instruments[0]; !ok {
		return nil, ErrMissingDefaultInstrument
	}
	return &Parser{config: config, instruments: instruments, pitches: pitches}, nil
}

// ParseVoice parses a single voice line (no comment stripping - callers
// handling whole files should use LoadVoices) into a score.Voice.
func (p *Parser) ParseVoice(line string) (*score.Voice, error) {
	b := &voiceBuilder{
		parser:       p,
		scan:         newScanner(line),
		octave:       p.config.DefaultOctave,
		beatNote:     p.config.DefaultBeatNote,
		tempo:        p.config.DefaultTempo,
		articulation: p.config.DefaultArticulation,
		volume:       p.config.DefaultVolume,
		instrument:   p.instruments[0],
	}
	b.recomputeNoteLength()
	if err := b.run(); err != nil {
		return nil, err
	}
	return score.NewVoice(b.notes), nil
}

// voiceBuilder holds the mutable per-line parser state the grammar describes:
// current octave, beat note, tempo, articulation, volume, instrument and
// cursor time.
type voiceBuilder struct {
	parser *Parser
	scan   *scanner

	octave       int
	beatNote     int
	tempo        float64
	articulation float64
	volume       float64
	instrument   synth.Instrument

	noteLength float64
	time       float64
	notes      []score.Note
}

func (b *voiceBuilder) recomputeNoteLength() {
	b.noteLength = 240.0 / (float64(b.beatNote) * b.tempo)
}

func (b *voiceBuilder) fail(err error) error {
	return parseErr(1, b.scan.column(), string(b.scan.peek()), err)
}

// failOn reports err against c, the character the scanner just consumed.
func (b *voiceBuilder) failOn(c byte, err error) error {
	return parseErr(1, b.scan.column()-1, string(c), err)
}

func (b *voiceBuilder) run() error {
	for !b.scan.done() {
		c := b.scan.consume()
		var err error
		switch {
		case c >= 'A' && c <= 'G':
			err = b.note(c)
		case c == '>':
			err = b.shiftOctave(1)
		case c == '<':
			err = b.shiftOctave(-1)
		case c == 'T':
			err = b.setTempo()
		case c == 'L':
			err = b.setBeatNote()
		case c == 'O':
			err = b.setOctave()
		case c == 'N':
			err = b.numberedNote()
		case c == 'P' || c == 'R':
			err = b.rest()
		case c == 'M':
			err = b.articulationCommand()
		case c == 'I':
			err = b.instrumentCommand()
		case c == 'V':
			err = b.volumeCommand()
		default:
			err = b.failOn(c, ErrUnrecognizedCommand)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *voiceBuilder) note(letter byte) error {
	note := b.octave*pitch.NotesPerOctave + letterSemitone[letter]
	tempLength := b.noteLength
	tempDuration := b.articulation
	tempVolume := b.volume
	nextDot := tempLength / 2
	advance := true

modifiers:
	for {
		switch b.scan.peek() {
		case '+', '#':
			b.scan.consume()
			note++
			if note >= pitch.TotalNotes {
				return b.fail(ErrValueOutOfRange)
			}
		case '-':
			b.scan.consume()
			note--
			if note < 0 {
				return b.fail(ErrValueOutOfRange)
			}
		case '.':
			b.scan.consume()
			tempLength += nextDot
			nextDot /= 2
		case '_':
			b.scan.consume()
			tempDuration = 1.0
		case '\'':
			b.scan.consume()
			tempDuration = 0.75
		case '^':
			b.scan.consume()
			tempVolume = math.Min(tempVolume+0.125, 1.0)
		case ',':
			b.scan.consume()
			advance = false
			break modifiers
		default:
			if isDigit(b.scan.peek()) {
				n, err := b.scan.number()
				if err != nil {
					return b.fail(err)
				}
				if n < b.parser.config.MinBeat || n > b.parser.config.MaxBeat {
					return b.fail(ErrValueOutOfRange)
				}
				tempLength = 240.0 / (float64(n) * b.tempo)
				nextDot = tempLength / 2
				continue
			}
			break modifiers
		}
	}

	b.notes = append(b.notes, score.Note{
		Instrument: b.instrument,
		Frequency:  b.parser.pitches[note],
		StartTime:  b.time,
		Duration:   tempLength * tempDuration,
		Volume:     tempVolume,
	})
	if advance {
		b.time += tempLength
	}
	return nil
}

func (b *voiceBuilder) shiftOctave(delta int) error {
	octave := b.octave + delta
	if octave < b.parser.config.MinOctave || octave > b.parser.config.MaxOctave {
		return b.fail(ErrValueOutOfRange)
	}
	b.octave = octave
	return nil
}

func (b *voiceBuilder) setTempo() error {
	n, err := b.scan.number()
	if err != nil {
		return b.fail(err)
	}
	if n < b.parser.config.MinTempo || n > b.parser.config.MaxTempo {
		return b.fail(ErrValueOutOfRange)
	}
	b.tempo = float64(n)
	b.recomputeNoteLength()
	return nil
}

func (b *voiceBuilder) setBeatNote() error {
	n, err := b.scan.number()
	if err != nil {
		return b.fail(err)
	}
	if n < b.parser.config.MinBeat || n > b.parser.config.MaxBeat {
		return b.fail(ErrValueOutOfRange)
	}
	b.beatNote = n
	b.recomputeNoteLength()
	return nil
}

func (b *voiceBuilder) setOctave() error {
	n, err := b.scan.number()
	if err != nil {
		return b.fail(err)
	}
	if n < b.parser.config.MinOctave || n > b.parser.config.MaxOctave {
		return b.fail(ErrValueOutOfRange)
	}
	b.octave = n
	return nil
}

func (b *voiceBuilder) numberedNote() error {
	n, err := b.scan.number()
	if err != nil {
		return b.fail(err)
	}
	if n < 0 || n > pitch.TotalNotes {
		return b.fail(ErrValueOutOfRange)
	}
	if n != 0 {
		b.notes = append(b.notes, score.Note{
			Instrument: b.instrument,
			Frequency:  b.parser.pitches[n-1],
			StartTime:  b.time,
			Duration:   b.noteLength * b.articulation,
			Volume:     b.volume,
		})
	}
	b.time += b.noteLength
	return nil
}

func (b *voiceBuilder) rest() error {
	tempLength := b.noteLength
	nextDot := tempLength / 2
	if isDigit(b.scan.peek()) {
		n, err := b.scan.number()
		if err != nil {
			return b.fail(err)
		}
		if n < b.parser.config.MinBeat || n > b.parser.config.MaxBeat {
			return b.fail(ErrValueOutOfRange)
		}
		tempLength = 240.0 / (float64(n) * b.tempo)
		nextDot = tempLength / 2
	}
	for b.scan.peek() == '.' {
		b.scan.consume()
		tempLength += nextDot
		nextDot /= 2
	}
	b.time += tempLength
	return nil
}

func (b *voiceBuilder) articulationCommand() error {
	switch c := b.scan.consume(); c {
	case 'L':
		b.articulation = 1.0
	case 'N':
		b.articulation = 7.0 / 8.0
	case 'S':
		b.articulation = 3.0 / 4.0
	case 'F', 'B':
		// legacy foreground/background marker, kept for grammar compatibility
	default:
		return b.failOn(c, ErrUnrecognizedCommand)
	}
	return nil
}

func (b *voiceBuilder) instrumentCommand() error {
	switch kind := b.scan.consume(); kind {
	case 'Q':
		b.instrument = synth.SquareInstrument()
	case 'T':
		b.instrument = synth.TriangleInstrument()
	case 'S':
		b.instrument = synth.SineInstrument()
	case 'W':
		b.instrument = synth.SawInstrument()
	case 'N':
		b.instrument = synth.NoiseInstrument()
	case 'P':
		n, err := b.scan.number()
		if err != nil {
			return b.fail(err)
		}
		if n < 1 || n > 99 {
			return b.fail(ErrValueOutOfRange)
		}
		b.instrument = synth.RectangularInstrument(float64(n) / 100.0)
	case 'X':
		c := b.scan.consume()
		inst, ok := b.parser.instruments[c]
		if !ok {
			return b.failOn(c, ErrUnknownInstrument)
		}
		b.instrument = inst
	default:
		return b.failOn(kind, ErrUnrecognizedCommand)
	}
	return nil
}

func (b *voiceBuilder) volumeCommand() error {
	if isDigit(b.scan.peek()) {
		n, err := b.scan.number()
		if err != nil {
			return b.fail(err)
		}
		if n < 0 || n > 100 {
			return b.fail(ErrValueOutOfRange)
		}
		b.volume = float64(n) / 100.0
		return nil
	}

	word, err := b.volumeWord()
	if err != nil {
		return err
	}
	level, ok := volumeWords[word]
	if !ok {
		return b.fail(ErrUnrecognizedCommand)
	}
	b.volume = level
	if b.scan.peek() == ';' {
		b.scan.consume()
	}
	return nil
}

// volumeWord reads at most one dynamic-marking word, mirroring the original's
// depth-bounded if-else rather than greedy accumulation: up to three repeats
// of P (piano/pianissimo/pianississimo) or F (forte/fortissimo/
// fortississimo), or M followed by exactly one of P or F (mezzo-piano/
// mezzo-forte). Any letters beyond that depth are left unconsumed for the
// next run() iteration to dispatch, the way "VFFFF" leaves a trailing F to
// be read as the note F.
func (b *voiceBuilder) volumeWord() (string, error) {
	switch b.scan.peek() {
	case 'P':
		return b.repeatedLetter('P', 3), nil
	case 'F':
		return b.repeatedLetter('F', 3), nil
	case 'M':
		b.scan.consume()
		switch b.scan.peek() {
		case 'P':
			b.scan.consume()
			return "MP", nil
		case 'F':
			b.scan.consume()
			return "MF", nil
		default:
			return "", b.fail(ErrUnrecognizedCommand)
		}
	default:
		return "", b.fail(ErrUnrecognizedCommand)
	}
}

// repeatedLetter consumes up to max repeats of c, stopping as soon as the
// next character differs.
func (b *voiceBuilder) repeatedLetter(c byte, max int) string {
	word := ""
	for len(word) < max && b.scan.peek() == c {
		word += string(b.scan.consume())
	}
	return word
}
