package stringsdict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>i_have_cats_and_dogs</key>
	<dict>
		<key>NSStringLocalizedFormatKey</key>
		<string>I have %#@catCount@ and %#@dogCount@</string>
		<key>catCount</key>
		<dict>
			<key>NSStringFormatSpecTypeKey</key>
			<string>NSStringPluralRuleType</string>
			<key>NSStringFormatValueTypeKey</key>
			<string>d</string>
			<key>zero</key>
			<string>no cat</string>
			<key>one</key>
			<string>a cat</string>
			<key>other</key>
			<string>%d cats</string>
		</dict>
		<key>dogCount</key>
		<dict>
			<key>NSStringFormatSpecTypeKey</key>
			<string>NSStringPluralRuleType</string>
			<key>NSStringFormatValueTypeKey</key>
			<string>d</string>
			<key>one</key>
			<string>a dog</string>
			<key>other</key>
			<string>%d dogs</string>
		</dict>
	</dict>
	<key>apples</key>
	<dict>
		<key>NSStringLocalizedFormatKey</key>
		<string>%#@n@</string>
		<key>n</key>
		<dict>
			<key>NSStringFormatSpecTypeKey</key>
			<string>NSStringPluralRuleType</string>
			<key>other</key>
			<string>%d apples</string>
		</dict>
	</dict>
</dict>
</plist>
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(example))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "apples", entries[0].Key)

	e := entries[1]
	assert.Equal(t, "i_have_cats_and_dogs", e.Key)
	assert.Equal(t, "I have %#@catCount@ and %#@dogCount@", e.Format)
	assert.Equal(t, []string{"catCount", "dogCount"}, e.VariableNames())

	cat := e.Variables["catCount"]
	assert.Equal(t, "d", cat.ValueType)
	assert.Equal(t, "no cat", cat.Zero)
	assert.Equal(t, "a cat", cat.One)
	assert.Equal(t, "%d cats", cat.Other)
	assert.Empty(t, cat.Few)

	form, ok := cat.Form("one")
	assert.True(t, ok)
	assert.Equal(t, "a cat", form)
	_, ok = cat.Form("many")
	assert.False(t, ok)
}

func TestMarshalRoundTrip(t *testing.T) {
	entries, err := Parse([]byte(example))
	require.NoError(t, err)

	data, err := Marshal(entries)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<key>NSStringFormatSpecTypeKey</key>")

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"entry not a dict": `<plist version="1.0"><dict><key>a</key><string>x</string></dict></plist>`,
		"missing format": `<plist version="1.0"><dict><key>a</key><dict>
			<key>n</key><dict><key>NSStringFormatSpecTypeKey</key><string>NSStringPluralRuleType</string></dict>
			</dict></dict></plist>`,
		"wrong spec type": `<plist version="1.0"><dict><key>a</key><dict>
			<key>NSStringLocalizedFormatKey</key><string>%#@n@</string>
			<key>n</key><dict><key>NSStringFormatSpecTypeKey</key><string>Other</string></dict>
			</dict></dict></plist>`,
		"missing spec type": `<plist version="1.0"><dict><key>a</key><dict>
			<key>NSStringLocalizedFormatKey</key><string>%#@n@</string>
			<key>n</key><dict><key>other</key><string>x</string></dict>
			</dict></dict></plist>`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), err.Error())
		})
	}

	_, err := Parse([]byte("not a plist <<<"))
	assert.Error(t, err)
}

func TestMarshalRejectsDuplicates(t *testing.T) {
	_, err := Marshal([]Entry{{Key: "a", Format: "x"}, {Key: "a", Format: "y"}})
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestMerge(t *testing.T) {
	base := Entry{Key: "k", Format: "%#@n@", Variables: map[string]Variable{
		"n": {Other: "old"},
		"m": {Other: "keep"},
	}}
	base.Merge(Entry{Key: "k", Variables: map[string]Variable{
		"n":     {One: "one", Other: "new"},
		"extra": {Other: "ignored"},
	}})

	assert.Equal(t, Variable{One: "one", Other: "new"}, base.Variables["n"])
	assert.Equal(t, Variable{Other: "keep"}, base.Variables["m"])
	assert.NotContains(t, base.Variables, "extra")
}
