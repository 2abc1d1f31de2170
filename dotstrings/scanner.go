package dotstrings

import (
	"strings"
	"unicode/utf8"
)

// scanner walks the input one rune at a time and tracks the line and column
// of the current offset.
type scanner struct {
	src  string
	off  int
	line int
	col  int
}

type scanMark struct {
	off, line, col int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func (s *scanner) eof() bool {
	return s.off >= len(s.src)
}

func (s *scanner) pos() Position {
	return Position{Offset: s.off, Line: s.line, Column: s.col}
}

func (s *scanner) mark() scanMark {
	return scanMark{off: s.off, line: s.line, col: s.col}
}

func (s *scanner) reset(m scanMark) {
	s.off, s.line, s.col = m.off, m.line, m.col
}

func (s *scanner) peekRune() rune {
	if s.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.off:])
	return r
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.src[s.off:], prefix)
}

// advance consumes one rune. Invalid UTF-8 is consumed one byte at a time.
func (s *scanner) advance() {
	if s.eof() {
		return
	}
	c := s.src[s.off]
	if c < utf8.RuneSelf {
		s.off++
	} else {
		_, size := utf8.DecodeRuneInString(s.src[s.off:])
		s.off += size
	}
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

// copyUntil copies raw input into b up to, but not including, the first byte
// contained in stop.
func (s *scanner) copyUntil(b *strings.Builder, stop string) {
	start := s.off
	for !s.eof() && strings.IndexByte(stop, s.src[s.off]) < 0 {
		s.advance()
	}
	b.WriteString(s.src[start:s.off])
}
