package mml

import "github.com/dimodica/mmlfm/internal/synth"

// DefaultInstruments returns an instrument map holding only the mandatory
// default-instrument slot (key 0), set to a plain square wave. Callers that
// want `I X c` to resolve named instruments should copy this map and add
// their own entries before constructing a Parser.
func DefaultInstruments() map[byte]synth.Instrument {
	return map[byte]synth.Instrument{
		0: synth.SquareInstrument(),
	}
}
