// Command play_mml plays an MML voice file (or inline string) through the
// local audio device in real time.
package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dimodica/mmlfm/internal/audio"
	"github.com/dimodica/mmlfm/internal/mml"
	"github.com/dimodica/mmlfm/internal/pitch"
	"github.com/dimodica/mmlfm/internal/score"
)

const defaultMML = "e g b d f a" // six plain notes; the parser ignores the spaces

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 44100, "output sample rate")
		loop       = flag.Bool("loop", false, "loop the piece once it finishes")
		mmlPath    = flag.String("file", "", "path to an MML file")
		mmlInline  = flag.String("mml", "", "inline MML string")
	)
	flag.Parse()

	mmlText, err := resolveMMLInput(*mmlPath, *mmlInline)
	if err != nil {
		log.Fatal(err)
	}

	parser, err := mml.NewParser(mml.DefaultParserConfig(), mml.DefaultInstruments(), pitch.Table())
	if err != nil {
		log.Fatal(err)
	}

	maestro, err := parser.LoadMaestro(strings.NewReader(mmlText))
	if err != nil {
		log.Fatal(err)
	}

	venue := score.NewVenue()
	venue.SetLooping(*loop)
	venue.QueueMusic(maestro)

	player, err := audio.NewPlayer(*sampleRate, venue)
	if err != nil {
		log.Fatal(err)
	}
	player.Play()

	if *loop {
		select {} // looping playback runs until the process is killed
	}
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	player.Stop()
}

func resolveMMLInput(path string, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultMML, nil
}
