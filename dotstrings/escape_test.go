package dotstrings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, `say \"hi\"`, Escape(`say "hi"`))
	assert.Equal(t, `a\\b`, Escape(`a\b`))
	assert.Equal(t, `line1\nline2`, Escape("line1\nline2"))
	assert.Equal(t, "tab\tstays", Escape("tab\tstays"))
	assert.Equal(t, "ünïcödé", Escape("ünïcödé"))
}

func TestEscapeUnescapeInverse(t *testing.T) {
	for _, s := range []string{
		"",
		`"`,
		`\`,
		"\n",
		`\n`,
		`\"`,
		"\"\\\n\"\\\n",
		`ends with backslash \`,
		"mixed \"quotes\" and \\slashes\\ over\nlines",
		`\u0041 is not decoded`,
	} {
		got, err := Unescape(Escape(s))
		require.NoError(t, err)
		assert.Equal(t, s, got, "escaped form %q", Escape(s))
	}
}

func TestUnescape(t *testing.T) {
	got, err := Unescape(`caf\U00E9 \u263A\t`)
	require.NoError(t, err)
	assert.Equal(t, "café ☺\t", got)

	got, err = Unescape(`no escapes here`)
	require.NoError(t, err)
	assert.Equal(t, "no escapes here", got)
}

func TestUnescapeErrors(t *testing.T) {
	for _, s := range []string{`\x41`, `\u00`, `\uZZZZ`, `\uDE00`, `trailing \`} {
		_, err := Unescape(s)
		require.Error(t, err, s)
		var syn *SyntaxError
		require.True(t, errors.As(err, &syn), s)
	}

	_, err := Unescape(`\q`)
	var syn *SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, InvalidEscape, syn.Kind)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, syn.Pos)
}
