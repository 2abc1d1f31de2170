// Package loader reads and writes .strings and .stringsdict files that the
// caller has already located. It handles byte encodings and file I/O around
// the pure dotstrings codec and can parse many files concurrently.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dotstrings/dotstrings"
	"dotstrings/internal/config"
	"dotstrings/internal/textutil"
	"dotstrings/internal/worker"
	"dotstrings/stringsdict"
	"dotstrings/textenc"
)

// Format identifies a localization file type by extension.
type Format string

const (
	FormatStrings     Format = "strings"
	FormatStringsDict Format = "stringsdict"
)

// SupportedExtensions maps file extensions to the format handling them.
var SupportedExtensions = map[string]Format{
	".strings":     FormatStrings,
	".stringsdict": FormatStringsDict,
}

// ErrUnsupported is returned for paths whose extension has no format.
var ErrUnsupported = errors.New("unsupported file type")

// FormatOf returns the format for path based on its extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := SupportedExtensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupported)
}

// File is a loaded .strings table together with where it came from.
type File struct {
	Path string
	// Encoding is the byte encoding the file was read in and is written back in.
	Encoding textenc.Encoding
	Table    *dotstrings.Table
	// checksum of the bytes last read or written, empty for new files.
	checksum string
}

// NewFile returns a File for a table that does not exist on disk yet.
// Encoding Auto means the loader's write encoding.
func NewFile(path string, t *dotstrings.Table, enc textenc.Encoding) *File {
	return &File{Path: path, Encoding: enc, Table: t}
}

// Loader reads and writes localization files.
type Loader struct {
	readEncoding  textenc.Encoding
	writeEncoding textenc.Encoding
	workers       int
	logger        zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithReadEncoding forces the encoding of input files instead of detecting it.
func WithReadEncoding(enc textenc.Encoding) Option {
	return func(l *Loader) { l.readEncoding = enc }
}

// WithWriteEncoding sets the encoding for files without a source encoding.
func WithWriteEncoding(enc textenc.Encoding) Option {
	return func(l *Loader) { l.writeEncoding = enc }
}

// WithWorkers bounds the concurrency of LoadAll.
func WithWorkers(n int) Option {
	return func(l *Loader) { l.workers = n }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New creates a Loader that detects input encodings, writes UTF-8 and uses
// eight workers.
func New(opts ...Option) *Loader {
	l := &Loader{
		readEncoding:  textenc.Auto,
		writeEncoding: textenc.UTF8,
		workers:       8,
		logger:        log.Logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.workers < 1 {
		l.workers = 1
	}
	return l
}

// NewFromEnv creates a Loader configured from DOTSTRINGS_* environment
// variables and an optional .env file.
func NewFromEnv() *Loader {
	return newFromConfig(config.Load())
}

// newFromConfig creates a Loader from cfg.
func newFromConfig(cfg *config.Config) *Loader {
	return New(
		WithReadEncoding(cfg.ReadEncoding),
		WithWriteEncoding(cfg.WriteEncoding),
		WithWorkers(cfg.WorkerCount),
		WithLogger(log.Logger.Level(cfg.LogLevel)),
	)
}

// Load reads and parses the .strings file at path.
func (l *Loader) Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strings file: %w", err)
	}
	return l.Decode(path, data)
}

// Decode parses the raw bytes of a .strings file. path is only recorded.
func (l *Loader) Decode(path string, data []byte) (*File, error) {
	text, enc, err := textenc.Decode(data, l.readEncoding)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	table, err := dotstrings.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	l.logger.Debug().
		Str("path", path).
		Str("encoding", enc.String()).
		Int("entries", table.Len()).
		Msg("Loaded strings file")

	return &File{Path: path, Encoding: enc, Table: table, checksum: textutil.Hash(data)}, nil
}

// Save serializes f.Table and writes it to f.Path in f.Encoding. The file is
// left untouched when the bytes would not change. It reports whether a write
// happened.
func (l *Loader) Save(f *File) (bool, error) {
	enc := f.Encoding
	if enc == textenc.Auto {
		enc = l.writeEncoding
	}

	text, err := dotstrings.Serialize(f.Table)
	if err != nil {
		return false, fmt.Errorf("serialize %s: %w", f.Path, err)
	}
	data, err := textenc.Encode(text, enc)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", f.Path, err)
	}

	sum := textutil.Hash(data)
	if sum == f.checksum {
		l.logger.Debug().Str("path", f.Path).Msg("Strings file unchanged, skipping write")
		return false, nil
	}

	if err := writeFile(f.Path, data); err != nil {
		return false, err
	}
	f.Encoding = enc
	f.checksum = sum

	l.logger.Info().
		Str("path", f.Path).
		Str("encoding", enc.String()).
		Int("entries", f.Table.Len()).
		Msg("Wrote strings file")
	return true, nil
}

// Normalize rewrites the .strings file at path sorted by key as UTF-8, to
// output or back to path when output is empty. Duplicate keys fail the load
// like any other parse error.
func (l *Loader) Normalize(path, output string) error {
	f, err := l.Load(path)
	if err != nil {
		return err
	}
	f.Table.Sort()
	f.Encoding = textenc.UTF8
	if output != "" && output != path {
		f.Path = output
		f.checksum = ""
	}

	if _, err := l.Save(f); err != nil {
		return err
	}
	l.logger.Info().Str("path", path).Str("output", f.Path).Msg("Normalized strings file")
	return nil
}

// LoadDict reads and parses the .stringsdict file at path.
func (l *Loader) LoadDict(path string) ([]stringsdict.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stringsdict file: %w", err)
	}
	entries, err := stringsdict.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	l.logger.Debug().Str("path", path).Int("entries", len(entries)).Msg("Loaded stringsdict file")
	return entries, nil
}

// SaveDict writes entries to path as an XML property list.
func (l *Loader) SaveDict(path string, entries []stringsdict.Entry) error {
	data, err := stringsdict.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	l.logger.Info().Str("path", path).Int("entries", len(entries)).Msg("Wrote stringsdict file")
	return nil
}

// LoadAll loads the given .strings files concurrently. Results are in input
// order; the returned error joins every failure, and the File slot of a
// failed path is nil.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*File, error) {
	pool := worker.NewPool[string, *File](l.workers, l.logger,
		func(ctx context.Context, path string) (*File, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			format, err := FormatOf(path)
			if err != nil {
				return nil, err
			}
			if format != FormatStrings {
				return nil, fmt.Errorf("%s: %w: want .strings", path, ErrUnsupported)
			}
			return l.Load(path)
		},
	)

	results := pool.Execute(ctx, paths)

	files := make([]*File, len(results))
	var errs []error
	for i, r := range results {
		if r.Err != nil {
			l.logger.Error().Err(r.Err).Str("file", r.Input).Msg("Load failed")
			errs = append(errs, r.Err)
			continue
		}
		files[i] = r.Value
	}

	l.logger.Info().
		Int("files", len(paths)).
		Int("failed", len(errs)).
		Msg("Loaded strings files")

	return files, errors.Join(errs...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
