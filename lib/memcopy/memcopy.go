// Package memcopy - Bounded memory copies
//
// This package provides a memcpy-alike which never reads or writes past the
// ends of its slices.  Rather than overflowing, it copies what fits and
// reports how much was left behind.
package memcopy

/*
 * memcopy.go
 * Bounded memory copies
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import "bytes"

// Copy copies n bytes from src to dst.  If either slice is shorter than n,
// as many bytes as fit are copied and a TruncatedCopyError is returned.  In
// all cases, the returned int is the number of bytes actually copied.
func Copy(dst, src []byte, n int) (int, error) {
	if 0 > n {
		return 0, ErrNegativeLength
	}

	/* Work out how much we can really copy. */
	c := min(n, len(dst), len(src))
	copy(dst[:c], src[:c])

	/* Tell the caller if we came up short. */
	if c < n {
		return c, TruncatedCopyError{
			Want:   n,
			Copied: c,
			Src:    len(src),
			Dst:    len(dst),
		}
	}

	return c, nil
}

// CString returns the bytes in b before the first NUL byte.  If there is no
// NUL, b is returned whole.  The returned slice shares b's memory.
func CString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); -1 != i {
		return b[:i]
	}
	return b
}

// Fill copies as much of s as fits into dst and returns the number of bytes
// copied.  Nothing is terminated; dst's remaining bytes are left alone.
func Fill(dst []byte, s string) int { return copy(dst, s) }
