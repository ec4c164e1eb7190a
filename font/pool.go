package font

import "sync"

// linePool recycles the row buffers used to decompress RLE glyphs.
//
// Usage:
//
//	buf := getLine(w)
//	defer putLine(buf)
var linePool = sync.Pool{
	New: func() any {
		b := make([]uint8, 0, 64)
		return &b
	},
}

// getLine returns a buffer of length w.
func getLine(w int) *[]uint8 {
	b := linePool.Get().(*[]uint8)
	if cap(*b) < w {
		*b = make([]uint8, w)
	}
	*b = (*b)[:w]
	return b
}

// putLine returns a buffer to the pool.
func putLine(b *[]uint8) {
	if b == nil {
		return
	}
	linePool.Put(b)
}
