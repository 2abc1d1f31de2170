// Package dotstrings reads and writes Apple .strings localization files.
//
// Parse turns the decoded text of a .strings file into a Table of entries and
// Serialize turns a Table back into canonical .strings text. Both are pure
// functions with no shared state, so they may be called concurrently on
// independent inputs. Byte-level encoding (UTF-16, BOMs) is handled by the
// textenc package; file access by the loader package.
package dotstrings

import (
	"dotstrings/internal/interpolation"
	"dotstrings/internal/textutil"
)

// Entry is one key/value record of a .strings file.
type Entry struct {
	// Key is unique within a Table.
	Key string
	// Value is the decoded localized text.
	Value string
	// Comment is the text of the /* */ block preceding the statement, without
	// delimiters or surrounding whitespace. Empty means no comment.
	Comment string
	// Line is the 1-based source line of the key, or 0 when the entry was
	// built programmatically.
	Line int
}

// Tokens returns the printf-style format specifiers in the value, in order.
func (e Entry) Tokens() []string {
	return interpolation.Tokens(e.Value)
}

// sameContent reports whether two entries carry the same key, value and comment.
func (e Entry) sameContent(o Entry) bool {
	return e.Key == o.Key && e.Value == o.Value && e.Comment == o.Comment
}

// GenerateKey derives a stable key from a value, the way genstrings-style
// tooling auto-keys strings. The extension differentiates identical values
// with different meanings and may be empty.
func GenerateKey(value, extension string) string {
	input := value
	if extension != "" {
		input += ":" + extension
	}
	return textutil.KeyHash(input)
}
