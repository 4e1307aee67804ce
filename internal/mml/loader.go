package mml

import (
	"bufio"
	"io"
	"strings"

	"github.com/dimodica/mmlfm/internal/score"
)

// LoadVoices reads an MML source file: UTF-8 text, one voice per line, blank
// lines skipped, and lines whose first character is '/' treated as comments
// and skipped.
func (p *Parser) LoadVoices(r io.Reader) ([]*score.Voice, error) {
	scanner := bufio.NewScanner(r)
	var voices []*score.Voice
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}
		voice, err := p.ParseVoice(line)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = lineNum
				return nil, pe
			}
			return nil, err
		}
		voices = append(voices, voice)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return voices, nil
}

// LoadMaestro reads an MML source file and builds a single Maestro out of
// every voice line it contains.
func (p *Parser) LoadMaestro(r io.Reader) (*score.Maestro, error) {
	voices, err := p.LoadVoices(r)
	if err != nil {
		return nil, err
	}
	return score.NewMaestro(voices), nil
}
