package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"plain text", nil},
		{"%@", []string{"%@"}},
		{"%1$@ and %2$@", []string{"%1$@", "%2$@"}},
		{"%d of %lu, %lld total", []string{"%d", "%lu", "%lld"}},
		{"%.2f%% done", []string{"%.2f"}},
		{"%%d is literal", nil},
		{"%-8s|%+05.1f", []string{"%-8s", "%+05.1f"}},
		{"done: 100%", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.text))
		})
	}
}
