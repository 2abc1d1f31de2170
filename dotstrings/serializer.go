package dotstrings

import (
	"fmt"
	"io"
	"strings"
)

// Serialize renders t in canonical .strings form: each entry is its comment
// (if any) on its own line followed by "key" = "value";, and entries are
// separated by a blank line. An empty or nil table renders as "".
//
// Comments must not contain "*/" or begin or end with whitespace, since
// Parse trims comment text.
func Serialize(t *Table) (string, error) {
	var b strings.Builder
	first := true
	for e := range t.All() {
		if err := writeEntry(&b, e, first); err != nil {
			return "", err
		}
		first = false
	}
	return b.String(), nil
}

// SerializeEntries renders entries like Serialize. It rejects repeated keys
// with a *DuplicateKeyError rather than emit a file that cannot be parsed back.
func SerializeEntries(entries []Entry) (string, error) {
	seen := make(map[string]struct{}, len(entries))
	var b strings.Builder
	for i, e := range entries {
		if _, ok := seen[e.Key]; ok {
			return "", &DuplicateKeyError{Key: e.Key}
		}
		seen[e.Key] = struct{}{}
		if err := writeEntry(&b, e, i == 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Write serializes t to w.
func Write(w io.Writer, t *Table) error {
	text, err := Serialize(t)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write strings: %w", err)
	}
	return nil
}

func writeEntry(b *strings.Builder, e Entry, first bool) error {
	if strings.Contains(e.Comment, "*/") {
		return fmt.Errorf("entry %q: %w", e.Key, ErrCommentTerminator)
	}
	if strings.TrimSpace(e.Comment) != e.Comment {
		return fmt.Errorf("entry %q: %w", e.Key, ErrCommentWhitespace)
	}
	if !first {
		b.WriteByte('\n')
	}
	if e.Comment != "" {
		b.WriteString("/* ")
		b.WriteString(e.Comment)
		b.WriteString(" */\n")
	}
	b.WriteByte('"')
	b.WriteString(Escape(e.Key))
	b.WriteString(`" = "`)
	b.WriteString(Escape(e.Value))
	b.WriteString("\";\n")
	return nil
}
