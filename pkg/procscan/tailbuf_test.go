package procscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailBufferNeverExceedsCapacity(t *testing.T) {
	const capacity = 100
	buf := NewTailBuffer(capacity)

	// Feed far more data than the buffer can hold and check it keeps
	// exactly the tail of the full stream.
	var full strings.Builder
	for i := 0; i < 500; i++ {
		chunk := strings.Repeat(string(rune('a'+i%26)), 7)
		full.WriteString(chunk)
		_, err := buf.Write([]byte(chunk))
		require.NoError(t, err)
		assert.LessOrEqual(t, buf.Len(), capacity)
	}

	streamed := full.String()
	assert.Equal(t, capacity, buf.Len())
	assert.Equal(t, streamed[len(streamed)-capacity:], buf.String())
}

func TestTailBufferShortStream(t *testing.T) {
	buf := NewTailBuffer(1000)
	buf.Write([]byte("hello "))
	buf.Write([]byte("world"))
	assert.Equal(t, "hello world", buf.String())
	assert.Equal(t, 11, buf.Len())
}

func TestTailBufferSplitUTF8Rune(t *testing.T) {
	buf := NewTailBuffer(1000)

	// "héllo" with the two-byte é split across writes.
	raw := []byte("h\xc3\xa9llo")
	buf.Write(raw[:2])
	buf.Write(raw[2:])
	assert.Equal(t, "héllo", buf.String())
}

func TestTailBufferCapacityCountsRunesNotBytes(t *testing.T) {
	const capacity = 4
	buf := NewTailBuffer(capacity)
	buf.Write([]byte("日本語テキスト")) // 7 runes, 21 bytes
	assert.Equal(t, capacity, buf.Len())
	assert.Equal(t, "テキスト", buf.String())
}
