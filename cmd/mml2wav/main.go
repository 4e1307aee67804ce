// Command mml2wav renders an MML voice file to a WAV file.
//
// usage: mml2wav <input file> <output file>
//
// Exit codes: 0 success, 1 usage error, 2 input I/O error, 3 parse error,
// 4 output I/O error.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/dimodica/mmlfm/internal/mix"
	"github.com/dimodica/mmlfm/internal/mml"
	"github.com/dimodica/mmlfm/internal/pitch"
	"github.com/dimodica/mmlfm/internal/score"
	"github.com/dimodica/mmlfm/internal/wavfile"
)

// maxRenderSeconds bounds how long a single file is allowed to render for,
// as a backstop against a voice that loops forever.
const maxRenderSeconds = 600.0

// masterGain trims the rendered buffer slightly below full scale before
// quantization, leaving headroom for Maestro's per-voice averaging to still
// clip when several voices peak together on the same sample.
const masterGain = 0.9

// errLog writes diagnostics to stderr with no prefix or timestamp, kept
// separate from the exit-code-bearing control flow in run.
var errLog = log.New(os.Stderr, "", 0)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		errLog.Print("usage: mml2wav <input file> <output file>")
		return 1
	}

	inPath, outPath := args[0], args[1]

	in, err := os.Open(inPath)
	if err != nil {
		errLog.Printf("mml2wav: opening %s: %v", inPath, err)
		return 2
	}
	defer in.Close()

	parser, err := mml.NewParser(mml.DefaultParserConfig(), mml.DefaultInstruments(), pitch.Table())
	if err != nil {
		errLog.Printf("mml2wav: %v", err)
		return 2
	}

	maestro, err := parser.LoadMaestro(in)
	if err != nil {
		var perr *mml.ParseError
		if errors.As(err, &perr) {
			errLog.Printf("mml2wav: %v", perr)
			return 3
		}
		errLog.Printf("mml2wav: reading %s: %v", inPath, err)
		return 2
	}

	samples := score.Render(maestro, wavfile.SampleRate, maxRenderSeconds)
	quantized := wavfile.QuantizeMono(mix.ScaleBuffer(samples, masterGain))

	out, err := os.Create(outPath)
	if err != nil {
		errLog.Printf("mml2wav: creating %s: %v", outPath, err)
		return 4
	}
	defer out.Close()

	if err := wavfile.Write(out, quantized); err != nil {
		errLog.Printf("mml2wav: writing %s: %v", outPath, err)
		return 4
	}
	return 0
}
