package dotstrings

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Escape encodes s for use between the quotes of a .strings literal.
// Only backslash, double quote and newline are escaped.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape decodes the body of a quoted .strings literal.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	sc := newScanner(s)
	var b strings.Builder
	for !sc.eof() {
		sc.copyUntil(&b, `\`)
		if sc.eof() {
			break
		}
		if err := sc.readEscape(&b); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// simpleEscapes maps the character after a backslash to its decoded form.
var simpleEscapes = map[byte]rune{
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
}

// readEscape decodes one escape sequence. The scanner is positioned on the
// backslash.
func (s *scanner) readEscape(b *strings.Builder) error {
	start := s.pos()
	s.advance() // backslash
	if s.eof() {
		return &SyntaxError{Kind: UnterminatedString, Pos: s.pos(), Msg: "input ends inside escape sequence"}
	}
	c := s.src[s.off]
	if r, ok := simpleEscapes[c]; ok {
		s.advance()
		b.WriteRune(r)
		return nil
	}
	if c != 'u' && c != 'U' {
		return &SyntaxError{Kind: InvalidEscape, Pos: start, Msg: "\\" + string(s.peekRune())}
	}
	s.advance()
	unit, err := s.readHex4(start)
	if err != nil {
		return err
	}
	r := rune(unit)
	if utf16.IsSurrogate(r) {
		// A high surrogate must be followed by an escaped low surrogate.
		if r < 0xdc00 && (s.hasPrefix(`\u`) || s.hasPrefix(`\U`)) {
			save := s.mark()
			s.advance()
			s.advance()
			low, err := s.readHex4(start)
			if err == nil {
				if pair := utf16.DecodeRune(r, rune(low)); pair != utf8.RuneError {
					b.WriteRune(pair)
					return nil
				}
			}
			s.reset(save)
		}
		return &SyntaxError{Kind: InvalidEscape, Pos: start, Msg: "unpaired surrogate in unicode escape"}
	}
	b.WriteRune(r)
	return nil
}

func (s *scanner) readHex4(start Position) (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		if s.eof() {
			return 0, &SyntaxError{Kind: InvalidEscape, Pos: start, Msg: "unicode escape needs 4 hex digits"}
		}
		d, ok := hexDigit(s.src[s.off])
		if !ok {
			return 0, &SyntaxError{Kind: InvalidEscape, Pos: start, Msg: "unicode escape needs 4 hex digits"}
		}
		v = v<<4 | uint16(d)
		s.advance()
	}
	return v, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
