package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("short text is untouched", func(t *testing.T) {
		assert.Equal(t, "hello", tp.TruncateText("hello", 100))
	})

	t.Run("zero max size disables truncation", func(t *testing.T) {
		long := strings.Repeat("a", 500)
		assert.Equal(t, long, tp.TruncateText(long, 0))
	})

	t.Run("long text is cut with a marker", func(t *testing.T) {
		long := strings.Repeat("a", 500)
		out := tp.TruncateText(long, 100)
		assert.Contains(t, out, "Content truncated")
		assert.True(t, strings.HasPrefix(out, strings.Repeat("a", 100)))
	})

	t.Run("truncation never splits a rune", func(t *testing.T) {
		text := strings.Repeat("é", 50)
		out := tp.TruncateText(text, 51)
		assert.True(t, utf8.ValidString(out))
	})
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("valid text passes through", func(t *testing.T) {
		assert.Equal(t, "café", tp.SanitizeUTF8("café"))
	})

	t.Run("invalid bytes are dropped", func(t *testing.T) {
		broken := "abc" + string([]byte{0xff, 0xfe}) + "def"
		out := tp.SanitizeUTF8(broken)
		assert.True(t, utf8.ValidString(out))
		assert.Equal(t, "abcdef", out)
	})
}
