package gg3d

// Buffer is a row-major 2D array of per-pixel values, top row first.
type Buffer[T any] struct {
	width  int
	height int
	data   []T
}

// NewBuffer creates a zeroed buffer with the given dimensions.
func NewBuffer[T any](width, height int) *Buffer[T] {
	if width < 0 || height < 0 {
		panic("gg3d: negative buffer dimensions")
	}
	return &Buffer[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}
}

// Width returns the width of the buffer.
func (b *Buffer[T]) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *Buffer[T]) Height() int {
	return b.height
}

// Data returns the backing slice, indexed by y*Width()+x.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Index returns the slice index of (x, y), or -1 if it is out of bounds.
func (b *Buffer[T]) Index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Set stores v at (x, y). Writes outside the buffer are dropped.
func (b *Buffer[T]) Set(x, y int, v T) {
	if i := b.Index(x, y); i >= 0 {
		b.data[i] = v
	}
}

// Get returns the value at (x, y), or the zero value outside the buffer.
func (b *Buffer[T]) Get(x, y int) T {
	if i := b.Index(x, y); i >= 0 {
		return b.data[i]
	}
	var zero T
	return zero
}

// Fill sets every element to v.
func (b *Buffer[T]) Fill(v T) {
	n := len(b.data)
	if n == 0 {
		return
	}
	// Copy-doubling is faster than a plain loop for large buffers.
	b.data[0] = v
	for i := 1; i < n; i *= 2 {
		copy(b.data[i:], b.data[:i])
	}
}

// CopyFrom copies src into b. Both buffers must have the same dimensions.
func (b *Buffer[T]) CopyFrom(src *Buffer[T]) {
	if src.width != b.width || src.height != b.height {
		panic("gg3d: buffer dimension mismatch")
	}
	copy(b.data, src.data)
}
