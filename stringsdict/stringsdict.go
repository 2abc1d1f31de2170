// Package stringsdict reads and writes .stringsdict plural rule files, the
// property list companion of .strings tables.
package stringsdict

import (
	"errors"
	"fmt"
	"sort"

	"howett.net/plist"
)

const (
	FormatKey     = "NSStringLocalizedFormatKey"
	SpecTypeKey   = "NSStringFormatSpecTypeKey"
	ValueTypeKey  = "NSStringFormatValueTypeKey"
	PluralRuleKey = "NSStringPluralRuleType"
)

// ErrFormat is wrapped by every structural error in a .stringsdict file.
var ErrFormat = errors.New("malformed stringsdict")

// Variable holds the plural forms of one %#@name@ placeholder. Empty fields
// are absent from the file.
type Variable struct {
	ValueType string
	Zero      string
	One       string
	Two       string
	Few       string
	Many      string
	Other     string
}

// Form returns the text for a CLDR plural category such as "one" or "other".
func (v Variable) Form(category string) (string, bool) {
	var s string
	switch category {
	case "zero":
		s = v.Zero
	case "one":
		s = v.One
	case "two":
		s = v.Two
	case "few":
		s = v.Few
	case "many":
		s = v.Many
	case "other":
		s = v.Other
	}
	return s, s != ""
}

// Entry is one localized format with its plural variables.
type Entry struct {
	Key       string
	Format    string
	Variables map[string]Variable
}

// VariableNames returns the variable names in sorted order.
func (e Entry) VariableNames() []string {
	names := make([]string, 0, len(e.Variables))
	for n := range e.Variables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge copies into e every variable that other also defines. Variables only
// present in other are ignored since e's format does not reference them.
func (e *Entry) Merge(other Entry) {
	for name := range e.Variables {
		if v, ok := other.Variables[name]; ok {
			e.Variables[name] = v
		}
	}
}

// Parse decodes a .stringsdict property list. Any plist format (XML, binary,
// OpenStep) is accepted. Entries are returned sorted by key.
func Parse(data []byte) ([]Entry, error) {
	var root map[string]interface{}
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode stringsdict: %w", err)
	}

	keys := make([]string, 0, len(root))
	for k := range root {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		raw, ok := root[key].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("entry %q is not a dictionary: %w", key, ErrFormat)
		}
		e, err := parseEntry(key, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(key string, raw map[string]interface{}) (Entry, error) {
	e := Entry{Key: key, Variables: make(map[string]Variable)}

	format, ok := raw[FormatKey].(string)
	if !ok {
		return e, fmt.Errorf("entry %q: missing %s: %w", key, FormatKey, ErrFormat)
	}
	e.Format = format

	for name, value := range raw {
		if name == FormatKey {
			continue
		}
		dict, ok := value.(map[string]interface{})
		if !ok {
			return e, fmt.Errorf("entry %q: variable %q is not a dictionary: %w", key, name, ErrFormat)
		}
		v, err := parseVariable(dict)
		if err != nil {
			return e, fmt.Errorf("entry %q: variable %q: %w", key, name, err)
		}
		e.Variables[name] = v
	}
	return e, nil
}

func parseVariable(dict map[string]interface{}) (Variable, error) {
	spec, ok := dict[SpecTypeKey]
	if !ok {
		return Variable{}, fmt.Errorf("%s missing: %w", SpecTypeKey, ErrFormat)
	}
	if spec != PluralRuleKey {
		return Variable{}, fmt.Errorf("%s is %v, want %s: %w", SpecTypeKey, spec, PluralRuleKey, ErrFormat)
	}

	str := func(k string) string {
		s, _ := dict[k].(string)
		return s
	}
	return Variable{
		ValueType: str(ValueTypeKey),
		Zero:      str("zero"),
		One:       str("one"),
		Two:       str("two"),
		Few:       str("few"),
		Many:      str("many"),
		Other:     str("other"),
	}, nil
}

// dict returns the on-disk shape of v, omitting empty forms.
func (v Variable) dict() map[string]interface{} {
	d := map[string]interface{}{SpecTypeKey: PluralRuleKey}
	for k, s := range map[string]string{
		ValueTypeKey: v.ValueType,
		"zero":       v.Zero,
		"one":        v.One,
		"two":        v.Two,
		"few":        v.Few,
		"many":       v.Many,
		"other":      v.Other,
	} {
		if s != "" {
			d[k] = s
		}
	}
	return d
}

// Marshal encodes entries as an XML property list. Keys must be unique.
func Marshal(entries []Entry) ([]byte, error) {
	root := make(map[string]map[string]interface{}, len(entries))
	for _, e := range entries {
		if _, dup := root[e.Key]; dup {
			return nil, fmt.Errorf("duplicate key %q: %w", e.Key, ErrFormat)
		}
		dict := map[string]interface{}{FormatKey: e.Format}
		for name, v := range e.Variables {
			if name == FormatKey {
				return nil, fmt.Errorf("entry %q: variable named %s: %w", e.Key, FormatKey, ErrFormat)
			}
			dict[name] = v.dict()
		}
		root[e.Key] = dict
	}

	out, err := plist.MarshalIndent(root, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode stringsdict: %w", err)
	}
	return out, nil
}
