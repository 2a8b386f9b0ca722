package eel

import "math"

// BufferSize is the number of slots in megabuf and gmegabuf.
const BufferSize = 1 << 23

const (
	pageBits = 12
	pageSize = 1 << pageBits
)

// Buffer is a fixed-size array of BufferSize float64 slots, all initially 0.
// Storage is allocated in pages on first write. A Buffer is not safe for
// concurrent use.
type Buffer struct {
	pages [BufferSize / pageSize]*[pageSize]float64
}

// NewBuffer creates a zeroed buffer.
func NewBuffer() *Buffer {
	return new(Buffer)
}

// Get returns the value in slot i. Slots outside [0, BufferSize) read as 0.
func (b *Buffer) Get(i int) float64 {
	if i < 0 || i >= BufferSize {
		return 0
	}
	p := b.pages[i>>pageBits]
	if p == nil {
		return 0
	}
	return p[i&(pageSize-1)]
}

// Set stores v in slot i and returns true. If i is outside [0, BufferSize),
// the store is discarded and the result is false.
func (b *Buffer) Set(i int, v float64) bool {
	if i < 0 || i >= BufferSize {
		return false
	}
	p := b.pages[i>>pageBits]
	if p == nil {
		p = new([pageSize]float64)
		b.pages[i>>pageBits] = p
	}
	p[i&(pageSize-1)] = v
	return true
}

// Len returns BufferSize.
func (b *Buffer) Len() int {
	return BufferSize
}

// Reset sets every slot to 0 and releases the buffer's storage.
func (b *Buffer) Reset() {
	b.pages = [BufferSize / pageSize]*[pageSize]float64{}
}

// pagesInUse returns the number of allocated pages.
func (b *Buffer) pagesInUse() int {
	n := 0
	for _, p := range b.pages {
		if p != nil {
			n++
		}
	}
	return n
}

// bufferIndex converts a value to a buffer slot. The value is offset by
// Epsilon and truncated toward zero, so 9.99999 addresses slot 10 and -1
// addresses slot 0. The result is -1 if the slot is out of range.
func bufferIndex(v float64) int {
	t := math.Trunc(v + Epsilon)
	if !(t >= 0 && t < BufferSize) {
		return -1
	}
	return int(t)
}
