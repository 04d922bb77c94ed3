package procscan

import "unicode/utf8"

// TailBuffer accumulates a stream of UTF-8 text and retains only the last
// Capacity characters. Older characters are evicted FIFO as new ones arrive,
// so verbose child processes cannot grow it without bound while the trailing
// status lines stay available for pattern extraction.
//
// Writes may split multi-byte sequences at arbitrary chunk boundaries; an
// incomplete trailing rune is carried over and completed by the next write.
type TailBuffer struct {
	capacity int
	runes    []rune
	carry    []byte
}

// NewTailBuffer returns a buffer retaining the last capacity characters.
func NewTailBuffer(capacity int) *TailBuffer {
	return &TailBuffer{capacity: capacity}
}

// Write implements io.Writer. It never fails; the returned length is always
// len(p) so the buffer can sit behind an io.MultiWriter.
func (b *TailBuffer) Write(p []byte) (int, error) {
	data := p
	if len(b.carry) > 0 {
		data = append(b.carry, p...)
		b.carry = nil
	}

	// Hold back an incomplete trailing rune for the next write.
	cut := len(data)
	for i := len(data) - 1; i >= 0 && len(data)-i < utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				cut = i
			}
			break
		}
	}
	if cut < len(data) {
		b.carry = append(b.carry, data[cut:]...)
		data = data[:cut]
	}

	b.runes = append(b.runes, []rune(string(data))...)
	if excess := len(b.runes) - b.capacity; excess > 0 {
		b.runes = b.runes[excess:]
	}
	return len(p), nil
}

// Len returns the number of characters currently retained.
func (b *TailBuffer) Len() int {
	return len(b.runes)
}

// String returns the retained tail as text. Carried incomplete bytes are not
// included; they only surface once the rune completes.
func (b *TailBuffer) String() string {
	return string(b.runes)
}
