package mml

import (
	"math"
	"strings"
	"testing"

	"github.com/dimodica/mmlfm/internal/pitch"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(DefaultParserConfig(), DefaultInstruments(), pitch.Table())
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return p
}

func TestParseBasicNote(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("T120 L4 O4 C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	n := notes[0]
	wantFreq := pitch.Table()[4*pitch.NotesPerOctave+0]
	if n.Frequency != wantFreq {
		t.Fatalf("Frequency = %v, want %v", n.Frequency, wantFreq)
	}
	if n.StartTime != 0 {
		t.Fatalf("StartTime = %v, want 0", n.StartTime)
	}
	wantDuration := (240.0 / (4 * 120)) * (7.0 / 8.0)
	if math.Abs(n.Duration-wantDuration) > 1e-12 {
		t.Fatalf("Duration = %v, want %v", n.Duration, wantDuration)
	}
	if n.Volume != 0.5 {
		t.Fatalf("Volume = %v, want 0.5", n.Volume)
	}
}

func TestParseDottedNote(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("L4 C.")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	n := v.Notes()[0]
	base := 240.0 / (4 * 120)
	wantLength := base + base/2
	wantDuration := wantLength * (7.0 / 8.0)
	if math.Abs(n.Duration-wantDuration) > 1e-12 {
		t.Fatalf("Duration = %v, want %v", n.Duration, wantDuration)
	}
}

func TestParseChordTieSharesStartTime(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("C,E,G")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 3 {
		t.Fatalf("got %d notes, want 3", len(notes))
	}
	for _, n := range notes {
		if n.StartTime != 0 {
			t.Fatalf("chorded note StartTime = %v, want 0", n.StartTime)
		}
	}
}

func TestParseRestAdvancesTimeWithoutEmittingNote(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("L4 C R C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}
	noteLength := 240.0 / (4 * 120)
	if math.Abs(notes[1].StartTime-2*noteLength) > 1e-12 {
		t.Fatalf("second note StartTime = %v, want %v", notes[1].StartTime, 2*noteLength)
	}
}

func TestParseNumberedNoteZeroIsRestButStillAdvances(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("L4 N0 C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1 (N0 emits nothing)", len(notes))
	}
	noteLength := 240.0 / (4 * 120)
	if math.Abs(notes[0].StartTime-noteLength) > 1e-12 {
		t.Fatalf("StartTime = %v, want %v (N0 still advances the cursor)", notes[0].StartTime, noteLength)
	}
}

func TestParseOctaveShiftAndExplicitSet(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice(">C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	want := pitch.Table()[5*pitch.NotesPerOctave+0]
	if v.Notes()[0].Frequency != want {
		t.Fatalf("Frequency = %v, want %v", v.Notes()[0].Frequency, want)
	}

	v, err = p.ParseVoice("O5 C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	if v.Notes()[0].Frequency != want {
		t.Fatalf("O5 C Frequency = %v, want %v", v.Notes()[0].Frequency, want)
	}
}

func TestParseOctaveOutOfRangeIsError(t *testing.T) {
	p := newTestParser(t)
	if _, err := p.ParseVoice("O9"); err == nil {
		t.Fatalf("expected an error setting octave 9 (max is 8)")
	}
}

func TestParseAccentRaisesVolumeButCaps(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("V100 C^^^^")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	if v.Notes()[0].Volume != 1.0 {
		t.Fatalf("Volume = %v, want 1.0 (capped)", v.Notes()[0].Volume)
	}
}

func TestParseVolumeWord(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("VFF C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	if v.Notes()[0].Volume != 0.875 {
		t.Fatalf("Volume = %v, want 0.875", v.Notes()[0].Volume)
	}
}

func TestParseUnrecognizedCommandIsError(t *testing.T) {
	p := newTestParser(t)
	if _, err := p.ParseVoice("Z"); err == nil {
		t.Fatalf("expected an error for an unrecognized command")
	}
}

func TestParseEmptyNumberIsError(t *testing.T) {
	p := newTestParser(t)
	if _, err := p.ParseVoice("T"); err == nil {
		t.Fatalf("expected an error for T with no digits")
	}
}

func TestParseToleratesWhitespaceBetweenCommandAndDigits(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("T 120 L4 O4 C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	wantFreq := pitch.Table()[4*pitch.NotesPerOctave+0]
	if notes[0].Frequency != wantFreq {
		t.Fatalf("Frequency = %v, want %v", notes[0].Frequency, wantFreq)
	}
}

func TestParseVolumeWordStopsAtThreeRepeats(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("VFFFF C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2 (the fourth F is read as a note)", len(notes))
	}
	if notes[0].Volume != 1.0 {
		t.Fatalf("first note Volume = %v, want 1.0 (FFF, fortississimo)", notes[0].Volume)
	}
}

func TestParseVolumeWordMezzoRequiresOneMoreLetter(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("VMF C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	if v.Notes()[0].Volume != 0.625 {
		t.Fatalf("Volume = %v, want 0.625 (MF)", v.Notes()[0].Volume)
	}

	if _, err := p.ParseVoice("VM C"); err == nil {
		t.Fatalf("expected an error for M with no following P or F")
	}
}

func TestParseVolumeWordConsumesTrailingSemicolon(t *testing.T) {
	p := newTestParser(t)
	v, err := p.ParseVoice("V PPP;C")
	if err != nil {
		t.Fatalf("ParseVoice: %v", err)
	}
	notes := v.Notes()
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	if notes[0].Volume != 0.125 {
		t.Fatalf("Volume = %v, want 0.125 (PPP)", notes[0].Volume)
	}
}

func TestLoadVoicesSkipsCommentsAndBlankLines(t *testing.T) {
	p := newTestParser(t)
	src := "/ this is a comment\n\nC\n/ another comment\nD\n"
	voices, err := p.LoadVoices(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadVoices: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}
}
