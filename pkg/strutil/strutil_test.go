package strutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		sep  string
		want []string
	}{
		{"Basic", "a, , b,c", ",", []string{"a", "b", "c"}},
		{"Only separators", " , ,", ",", nil},
		{"Empty", "", ",", nil},
		{"Single", " key ", ",", []string{"key"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitAndTrim(tt.in, tt.sep))
		})
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "abcd***", Mask("abcdefgh"))
	assert.Equal(t, "1234***wxyz", Mask("1234567890:abcdefwxyz"))
}

func TestSplitByLength(t *testing.T) {
	t.Parallel()

	t.Run("Short message is returned as is", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, SplitByLength("hello", 10))
		assert.Nil(t, SplitByLength("", 10))
	})

	t.Run("Splits on paragraph boundaries", func(t *testing.T) {
		msg := "aaaa\n\nbbbb\n\ncccc"
		assert.Equal(t, []string{"aaaa\n\nbbbb", "cccc"}, SplitByLength(msg, 10))
	})

	t.Run("Long paragraph falls back to lines", func(t *testing.T) {
		msg := "line1\nline2\nline3"
		assert.Equal(t, []string{"line1", "line2", "line3"}, SplitByLength(msg, 6))
	})

	t.Run("Long line is cut by runes", func(t *testing.T) {
		msg := strings.Repeat("가", 25)
		chunks := SplitByLength(msg, 10)

		assert.Len(t, chunks, 3)
		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 10)
		}
		assert.Equal(t, msg, strings.Join(chunks, ""))
	})
}
