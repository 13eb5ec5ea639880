// Package linebuf - Fixed-size, line-filled buffers
package linebuf

/*
 * linebuf.go
 * Fixed-size, line-filled buffers
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/magisterquis/bufcopy/lib/memcopy"
)

var (
	// ErrInvalidSize is returned by New when asked for a buffer with no
	// room.
	ErrInvalidSize = errors.New("buffer size must be positive")
	// ErrReleased is returned by ReadLine on a Released buffer.
	ErrReleased = errors.New("buffer released")
)

// Buffer is a fixed-size block of bytes.  It never grows.  Buffer's memory
// comes from a size-classed cache; call Release to give it back.  Buffer is
// not safe for concurrent use, except for Release.
type Buffer struct {
	b  []byte
	ro sync.Once
}

// New returns a new zeroed buffer of exactly size bytes.
func New(size int) (*Buffer, error) {
	if 0 >= size {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	/* The cache doesn't zero for us. */
	b := mcache.Malloc(size)
	clear(b)
	return &Buffer{b: b}, nil
}

// Bytes returns the whole of the buffer, terminator and all.  The returned
// slice aliases the buffer and is only valid until Release is called.
func (b *Buffer) Bytes() []byte { return b.b }

// Len returns the buffer's size.
func (b *Buffer) Len() int { return len(b.b) }

// String returns the buffer's contents up to the first NUL byte.
func (b *Buffer) String() string { return string(memcopy.CString(b.b)) }

// Release returns b's memory to the cache.  b must not be used after Release
// is called.  Calling Release more than once is harmless.
func (b *Buffer) Release() {
	b.ro.Do(func() {
		mcache.Free(b.b)
		b.b = nil
	})
}

// ReadLine reads at most b.Len()-1 bytes from r into b, stopping after a
// newline, which is kept.  The bytes read are followed by a NUL.  Any part of
// a line which doesn't fit is left in r for the next read.  If r is at EOF
// before any bytes are read, ReadLine returns io.EOF and b is not modified.
// The returned int is the number of bytes read, less the NUL.
func (b *Buffer) ReadLine(r *bufio.Reader) (int, error) {
	/* Make sure we have a buffer to read into. */
	if nil == b.b {
		return 0, ErrReleased
	}
	var (
		lim = len(b.b) - 1
		n   int
	)
	for n < lim {
		/* Grab the next byte. */
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			if 0 == n { /* Nothing at all. */
				return 0, io.EOF
			}
			break /* Last line had no newline. */
		} else if nil != err {
			b.b[n] = 0
			return n, fmt.Errorf(
				"reading byte %d: %w",
				n+1,
				err,
			)
		}
		/* Save it, and stop if we've a whole line. */
		b.b[n] = c
		n++
		if '\n' == c {
			break
		}
	}
	b.b[n] = 0

	return n, nil
}
