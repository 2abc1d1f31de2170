// Package textenc detects and converts the byte encodings .strings files are
// stored in. Xcode writes UTF-16 with a byte order mark, most hand-edited
// files are UTF-8; this package turns either into Go text and back.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies a supported byte encoding.
type Encoding int

const (
	// Auto asks Decode to detect the encoding.
	Auto Encoding = iota
	UTF8
	UTF8BOM
	UTF16LE
	UTF16BE
)

var names = map[Encoding]string{
	Auto:    "auto",
	UTF8:    "utf-8",
	UTF8BOM: "utf-8-bom",
	UTF16LE: "utf-16le",
	UTF16BE: "utf-16be",
}

func (e Encoding) String() string {
	if n, ok := names[e]; ok {
		return n
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding maps a name such as "utf-16le" to an Encoding. Matching is
// case-insensitive and accepts the forms with and without a dash.
func ParseEncoding(name string) (Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "auto":
		return Auto, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-8-bom", "utf8bom", "utf-8-sig":
		return UTF8BOM, nil
	case "utf-16le", "utf16le", "utf-16":
		return UTF16LE, nil
	case "utf-16be", "utf16be":
		return UTF16BE, nil
	}
	return Auto, fmt.Errorf("unknown encoding %q", name)
}

// ErrInvalidText is wrapped by every EncodingError.
var ErrInvalidText = errors.New("invalid text encoding")

// EncodingError reports bytes that are not valid in the chosen encoding.
type EncodingError struct {
	Encoding Encoding
	// Offset is the byte offset of the first invalid byte, or -1 when unknown.
	Offset int
	Msg    string
}

func (e *EncodingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s at byte %d", e.Encoding, e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Encoding, e.Msg)
}

func (e *EncodingError) Unwrap() error {
	return ErrInvalidText
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the encoding of data from its byte order mark, falling back
// to the NUL byte layout of BOM-less UTF-16 and finally to UTF-8.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	}
	if len(data) >= 2 && len(data)%2 == 0 {
		// .strings files open with ASCII (a quote, comment or whitespace),
		// so one byte of the first UTF-16 unit is zero.
		switch {
		case data[0] != 0 && data[1] == 0:
			return UTF16LE
		case data[0] == 0 && data[1] != 0:
			return UTF16BE
		}
	}
	return UTF8
}

// Decode converts data to text. With Auto the encoding is detected. The
// encoding actually used is returned alongside the text. Any BOM is removed.
func Decode(data []byte, enc Encoding) (string, Encoding, error) {
	if enc == Auto {
		enc = Detect(data)
	}

	switch enc {
	case UTF8, UTF8BOM:
		body := bytes.TrimPrefix(data, bomUTF8)
		if off := invalidUTF8(body); off >= 0 {
			if len(body) < len(data) {
				off += len(bomUTF8)
			}
			return "", enc, &EncodingError{Encoding: enc, Offset: off, Msg: "invalid UTF-8"}
		}
		return string(body), enc, nil
	case UTF16LE, UTF16BE:
		if len(data)%2 != 0 {
			return "", enc, &EncodingError{Encoding: enc, Offset: len(data) - 1, Msg: "odd number of bytes"}
		}
		out, _, err := transform.Bytes(codec(enc).NewDecoder(), data)
		if err != nil {
			return "", enc, &EncodingError{Encoding: enc, Offset: -1, Msg: err.Error()}
		}
		return string(out), enc, nil
	}
	return "", enc, fmt.Errorf("decode: unsupported encoding %s", enc)
}

// Encode converts text to bytes in enc. UTF-16 output starts with a BOM.
// Auto encodes as plain UTF-8.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case Auto, UTF8:
		if off := invalidUTF8([]byte(text)); off >= 0 {
			return nil, &EncodingError{Encoding: UTF8, Offset: off, Msg: "invalid UTF-8"}
		}
		return []byte(text), nil
	case UTF8BOM, UTF16LE, UTF16BE:
		out, _, err := transform.Bytes(codec(enc).NewEncoder(), []byte(text))
		if err != nil {
			return nil, &EncodingError{Encoding: enc, Offset: -1, Msg: err.Error()}
		}
		return out, nil
	}
	return nil, fmt.Errorf("encode: unsupported encoding %s", enc)
}

func codec(enc Encoding) encoding.Encoding {
	switch enc {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	}
}

// invalidUTF8 returns the offset of the first invalid byte, or -1.
func invalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
