package dotstrings

import (
	"fmt"
	"io"
	"strings"
)

const byteOrderMark = "\uFEFF"

// Parse reads the decoded text of a .strings file into a Table.
//
// Each statement has the form "key" = "value"; and may be preceded by one or
// more /* */ comments, which are joined with a newline and attached to the
// entry. A blank line between a comment and the statement detaches the
// comment and it is dropped, as are comments at the end of the input. Line
// comments are skipped. Keys and values may also be written unquoted when
// they consist only of ASCII letters, digits and _.$:/+-.
//
// Parsing stops at the first error, which is a *SyntaxError or a
// *DuplicateKeyError. No partial Table is returned.
func Parse(text string) (*Table, error) {
	p := &parser{
		sc:    newScanner(text),
		table: NewTable(),
		first: make(map[string]Position),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.table, nil
}

// ParseReader reads all of r and parses it. r must yield UTF-8 text.
func ParseReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read strings: %w", err)
	}
	return Parse(string(data))
}

type parser struct {
	sc    *scanner
	table *Table
	first map[string]Position
}

func (p *parser) parse() error {
	if p.sc.hasPrefix(byteOrderMark) {
		p.sc.advance()
	}

	for {
		comment, err := p.skipTrivia()
		if err != nil {
			return err
		}
		if p.sc.eof() {
			return nil
		}
		if err := p.statement(comment); err != nil {
			return err
		}
	}
}

func (p *parser) statement(comment string) error {
	keyPos := p.sc.pos()
	key, err := p.literal("key")
	if err != nil {
		return err
	}

	if err := p.expect('=', MissingSeparator, "after key "+quote(key)); err != nil {
		return err
	}

	if _, err := p.skipTrivia(); err != nil {
		return err
	}
	value, err := p.literal("value")
	if err != nil {
		return err
	}

	if err := p.expect(';', MissingTerminator, "after value of "+quote(key)); err != nil {
		return err
	}

	if first, ok := p.first[key]; ok {
		return &DuplicateKeyError{Key: key, Pos: keyPos, First: first}
	}
	p.first[key] = keyPos

	return p.table.Insert(Entry{Key: key, Value: value, Comment: comment, Line: keyPos.Line})
}

// expect skips trivia and consumes c, or reports kind at the current position.
func (p *parser) expect(c byte, kind ErrorKind, context string) error {
	if _, err := p.skipTrivia(); err != nil {
		return err
	}
	if p.sc.eof() {
		return &SyntaxError{Kind: kind, Pos: p.sc.pos(), Msg: "unexpected end of input " + context}
	}
	if p.sc.src[p.sc.off] != c {
		return &SyntaxError{Kind: kind, Pos: p.sc.pos(), Msg: fmt.Sprintf("found %q %s", p.sc.peekRune(), context)}
	}
	p.sc.advance()
	return nil
}

// skipTrivia consumes whitespace and comments and returns the comment that
// attaches to the next token.
func (p *parser) skipTrivia() (string, error) {
	var (
		comments  []string
		newlines  int  // newlines since the last block comment
		lineBlank bool // nothing but whitespace on the current line so far
	)
	for !p.sc.eof() {
		switch c := p.sc.src[p.sc.off]; {
		case c == '\n':
			if newlines > 0 && lineBlank {
				comments = nil
			}
			newlines++
			lineBlank = true
			p.sc.advance()
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			p.sc.advance()
		case p.sc.hasPrefix("//"):
			lineBlank = false
			for !p.sc.eof() && p.sc.src[p.sc.off] != '\n' {
				p.sc.advance()
			}
		case p.sc.hasPrefix("/*"):
			text, err := p.blockComment()
			if err != nil {
				return "", err
			}
			if text != "" {
				comments = append(comments, text)
			}
			newlines = 0
			lineBlank = false
		default:
			return strings.Join(comments, "\n"), nil
		}
	}
	// Comments at the end of the input belong to no statement.
	return "", nil
}

func (p *parser) blockComment() (string, error) {
	start := p.sc.pos()
	body := p.sc.src[p.sc.off+2:]
	end := strings.Index(body, "*/")
	if end < 0 {
		return "", &SyntaxError{Kind: UnterminatedComment, Pos: start, Msg: "no closing \"*/\""}
	}
	stop := p.sc.off + 2 + end + 2
	for p.sc.off < stop {
		p.sc.advance()
	}
	return strings.TrimSpace(body[:end]), nil
}

// literal reads a quoted or unquoted string token.
func (p *parser) literal(what string) (string, error) {
	if p.sc.eof() {
		return "", &SyntaxError{Kind: UnexpectedToken, Pos: p.sc.pos(), Msg: "expected " + what + ", found end of input"}
	}
	c := p.sc.src[p.sc.off]
	switch {
	case c == '"':
		return p.quoted()
	case isUnquoted(c):
		start := p.sc.off
		for !p.sc.eof() && isUnquoted(p.sc.src[p.sc.off]) && !p.sc.hasPrefix("//") && !p.sc.hasPrefix("/*") {
			p.sc.advance()
		}
		return p.sc.src[start:p.sc.off], nil
	default:
		return "", &SyntaxError{Kind: UnexpectedToken, Pos: p.sc.pos(), Msg: fmt.Sprintf("expected %s, found %q", what, p.sc.peekRune())}
	}
}

func (p *parser) quoted() (string, error) {
	open := p.sc.pos()
	p.sc.advance()

	var b strings.Builder
	for {
		p.sc.copyUntil(&b, `"\`)
		if p.sc.eof() {
			return "", &SyntaxError{Kind: UnterminatedString, Pos: p.sc.pos(), Msg: "string opened at " + open.String() + " is not closed"}
		}
		if p.sc.src[p.sc.off] == '"' {
			p.sc.advance()
			return b.String(), nil
		}
		if err := p.sc.readEscape(&b); err != nil {
			return "", err
		}
	}
}

func isUnquoted(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("_.$:/+-", c) >= 0
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
