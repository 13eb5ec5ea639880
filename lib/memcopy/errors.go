package memcopy

/*
 * errors.go
 * Errors we might return
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"errors"
	"fmt"
)

// ErrNegativeLength indicates Copy was asked to copy fewer than zero bytes.
var ErrNegativeLength = errors.New("negative copy length")

// TruncatedCopyError indicates fewer bytes were copied than requested,
// because the source or destination was too small.
type TruncatedCopyError struct {
	Want   int /* Requested. */
	Copied int /* Actually copied. */
	Src    int /* Source length. */
	Dst    int /* Destination length. */
}

// Error implements the error interface.
func (err TruncatedCopyError) Error() string {
	return fmt.Sprintf(
		"copied %d of %d bytes (source %d bytes, destination %d bytes)",
		err.Copied,
		err.Want,
		err.Src,
		err.Dst,
	)
}

// ShortSource returns true if the source was too small to supply the
// requested bytes.
func (err TruncatedCopyError) ShortSource() bool { return err.Src < err.Want }

// ShortDestination returns true if the destination was too small to hold
// the requested bytes.
func (err TruncatedCopyError) ShortDestination() bool {
	return err.Dst < err.Want
}
