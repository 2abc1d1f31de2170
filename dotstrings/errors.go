package dotstrings

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax matches every *SyntaxError via errors.Is.
	ErrSyntax = errors.New("strings syntax error")
	// ErrDuplicateKey matches every *DuplicateKeyError via errors.Is.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrCommentTerminator is returned when a comment cannot be written
	// because it contains the "*/" block terminator.
	ErrCommentTerminator = errors.New("comment contains \"*/\"")
	// ErrCommentWhitespace is returned for a comment with leading or
	// trailing whitespace, which Parse would not read back unchanged.
	ErrCommentWhitespace = errors.New("comment has surrounding whitespace")
)

// Position locates a point in the parsed text.
type Position struct {
	// Offset is the 0-based byte offset.
	Offset int
	// Line is 1-based.
	Line int
	// Column is 1-based and counted in runes. Zero when only the line is
	// known, in which case Offset is meaningless too.
	Column int
}

func (p Position) String() string {
	if p.Column == 0 {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	UnterminatedString ErrorKind = iota + 1
	MissingSeparator
	MissingTerminator
	UnterminatedComment
	InvalidEscape
	UnexpectedToken
)

var errorKindNames = map[ErrorKind]string{
	UnterminatedString:  "unterminated string",
	MissingSeparator:    "missing '='",
	MissingTerminator:   "missing ';'",
	UnterminatedComment: "unterminated comment",
	InvalidEscape:       "invalid escape sequence",
	UnexpectedToken:     "unexpected token",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError reports malformed .strings text.
type SyntaxError struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// DuplicateKeyError reports a key that already exists in a Table.
type DuplicateKeyError struct {
	Key string
	// Pos is where the repeated key was found; zero for programmatic inserts.
	Pos Position
	// First is where the key was first defined; zero when unknown.
	First Position
}

func (e *DuplicateKeyError) Error() string {
	switch {
	case e.Pos.Line > 0 && e.First.Line > 0:
		return fmt.Sprintf("%s: duplicate key %q (first defined at %s)", e.Pos, e.Key, e.First)
	case e.Pos.Line > 0:
		return fmt.Sprintf("%s: duplicate key %q", e.Pos, e.Key)
	default:
		return fmt.Sprintf("duplicate key %q", e.Key)
	}
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}
