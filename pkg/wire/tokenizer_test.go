package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizerWords(t *testing.T) {
	testCases := []struct {
		name  string
		line  string
		words []string
	}{
		{"single", "r\n", []string{"r"}},
		{"two args", "t 50 1000\n", []string{"t", "50", "1000"}},
		{"extra spaces", "  s   -5 \n", []string{"s", "-5"}},
		{"no terminator", "w 500", []string{"w", "500"}},
		{"empty", "\n", nil},
		{"spaces only", "   \n", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var tok Tokenizer
			tok.Reset(tc.line)
			var words []string
			for {
				word, ok := tok.Next()
				if !ok {
					break
				}
				words = append(words, word)
			}
			require.Equal(t, tc.words, words)
		})
	}
}

func TestTokenizerExhaustion(t *testing.T) {
	var tok Tokenizer
	tok.Reset("r\n")
	_, ok := tok.Next()
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		word, ok := tok.Next()
		require.False(t, ok)
		require.Empty(t, word)
	}

	tok.Reset("s 1\n")
	word, ok := tok.Next()
	require.True(t, ok)
	require.Equal(t, "s", word)
}
