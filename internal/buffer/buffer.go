// Package buffer provides the growth primitive shared by memory streams and
// the line editor.
package buffer

import "errors"

// MinSize is the smallest capacity NextSize hands out.
const MinSize = 16

// ErrShrink is returned when a grow request is smaller than the current size.
// Callers treat it as an allocation failure.
var ErrShrink = errors.New("buffer: new size smaller than old size")

// ErrNegativeSize is returned when a size argument is negative.
var ErrNegativeSize = errors.New("buffer: negative size")

// Grow returns a buffer of length newSize whose first oldSize bytes are copied
// from buf. The returned slice never aliases buf.
func Grow(buf []byte, oldSize, newSize int) ([]byte, error) {
	if oldSize < 0 || newSize < 0 {
		return nil, ErrNegativeSize
	}
	if newSize < oldSize {
		return nil, ErrShrink
	}
	if oldSize > len(buf) {
		oldSize = len(buf)
	}
	grown := make([]byte, newSize)
	copy(grown, buf[:oldSize])
	return grown, nil
}

// NextSize returns the capacity to grow to so that at least need bytes fit,
// doubling from cur.
func NextSize(cur, need int) int {
	size := cur
	if size < MinSize {
		size = MinSize
	}
	for size < need {
		size += size
	}
	return size
}

// NextStep is like NextSize but grows by a fixed step. The line editor uses
// it with one screen row per step.
func NextStep(cur, need, step int) int {
	if step < 1 {
		step = 1
	}
	size := cur
	for size < need {
		size += step
	}
	return size
}
