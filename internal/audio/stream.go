// Package audio is the optional real-time playback sink: an adapter from a
// score.Venue onto an ebiten audio.Context. The reference engine's own audio
// device driver is explicitly out of scope (see the engine's SampleProvider
// interface); this package is a convenience for anyone who wants to actually
// hear a Venue rather than render it to a file, built the same way the
// sibling engine this module was adapted from drives ebiten.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/dimodica/mmlfm/internal/score"
)

// VenueSource adapts a score.Venue's mono output into the interleaved stereo
// stream StreamReader expects, duplicating each mono sample across the left
// and right channels ebiten's stereo player requires.
type VenueSource struct {
	Venue      *score.Venue
	SampleRate int

	globalTime float64
}

func (s *VenueSource) next() float32 {
	dt := 1.0 / float64(s.SampleRate)
	sample := s.Venue.GetSample(0, s.globalTime, dt)
	s.globalTime += dt
	return float32(sample)
}

// Process fills dst with interleaved stereo frames pulled from the Venue.
func (s *VenueSource) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		v := s.next()
		dst[i] = v
		dst[i+1] = v
	}
}

// Finished reports whether the underlying Venue has run out of queued
// music, satisfying FinishingSource so StreamReader can signal io.EOF.
func (s *VenueSource) Finished() bool {
	return s.Venue.Idle()
}

// SampleSource is anything StreamReader can pull interleaved stereo float32
// frames from.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal when playback has ended.
// When Finished returns true right after a Read has filled its frames, that
// same Read returns io.EOF along with those frames.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// StreamReader turns a SampleSource into the io.Reader ebiten's NewPlayerF32
// wants: little-endian float32 stereo frames.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		u := math.Float32bits(r.buf[i])
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	n := frames * 8
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return n, io.EOF
	}
	return n, nil
}

func (r *StreamReader) Close() error { return nil }

// Player wraps an ebiten audio player over a Venue.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioContextErr  error
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioContextErr != nil {
		return nil, audioContextErr
	}
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// NewPlayer returns a Player driving venue in real time at sampleRate.
func NewPlayer(sampleRate int, venue *score.Venue) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(&VenueSource{Venue: venue, SampleRate: sampleRate})
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{player: pl, reader: reader}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
