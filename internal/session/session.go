// Package session - Read two buffers and copy one into the other
package session

/*
 * session.go
 * Read two buffers and copy one into the other
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/magisterquis/bufcopy/lib/linebuf"
	"github.com/magisterquis/bufcopy/lib/memcopy"
)

// Prompts and buffer three's initial contents, settable at compile time.
var (
	PromptOne = "buf one: "
	PromptTwo = "buf two: "
	Prefill   = "hello world"
)

// Buffer sizes.
const (
	SizeOne   = 100
	SizeTwo   = 100
	SizeThree = 50
)

// DefaultCount is the default number of bytes to copy.
const DefaultCount = 100

// Log messages and keys.
const (
	LMFilled    = "Buffer filled"
	LMNoInput   = "No input for buffer"
	LMCopied    = "Buffer copied"
	LMTruncated = "Copy truncated"

	LKBuffer = "buffer"
	LKCopied = "copied"
	LKCount  = "count"
	LKData   = "data"
	LKLength = "length"
)

// Buffer names, for logging and dumps.
const (
	NameOne   = "buf one"
	NameTwo   = "buf two"
	NameThree = "buf three"
)

// Filler prompts for and reads lines into buffers, and takes output.  This is
// normally a *console.Console.
type Filler interface {
	io.Writer
	Fill(ctx context.Context, prompt string, b *linebuf.Buffer) (int, error)
}

// Config configures Run.
type Config struct {
	// Count is the number of bytes to copy.
	Count int

	// Strict makes Run return a memcopy.TruncatedCopyError if fewer than
	// Count bytes are copied.  Otherwise, truncation is only logged.
	Strict bool
}

// Result is what the buffers looked like after the copy.  The slices are
// copies; they outlive the buffers.
type Result struct {
	Copied   int
	BufOne   []byte
	BufTwo   []byte
	BufThree []byte
}

// Run prompts for and reads a line into each of two 100-byte buffers, then
// hands both, along with a 50-byte buffer holding Prefill, to ParamCopy.
// Hitting EOF before a line's read isn't an error; the buffer is left empty.
func Run(
	ctx context.Context,
	sl *slog.Logger,
	con Filler,
	conf Config,
) (Result, error) {
	/* Get our buffers ready. */
	var bufs [3]*linebuf.Buffer
	defer func() {
		for _, b := range bufs {
			if nil != b {
				b.Release()
			}
		}
	}()
	for i, size := range []int{SizeOne, SizeTwo, SizeThree} {
		var err error
		if bufs[i], err = linebuf.New(size); nil != err {
			return Result{}, fmt.Errorf(
				"allocating buffer %d: %w",
				i+1,
				err,
			)
		}
	}
	one, two, three := bufs[0], bufs[1], bufs[2]
	memcopy.Fill(three.Bytes(), Prefill)

	/* Fill the buffers from the user. */
	for _, f := range []struct {
		b      *linebuf.Buffer
		name   string
		prompt string
	}{
		{b: one, name: NameOne, prompt: PromptOne},
		{b: two, name: NameTwo, prompt: PromptTwo},
	} {
		sl := sl.With(LKBuffer, f.name)
		n, err := con.Fill(ctx, f.prompt, f.b)
		if errors.Is(err, io.EOF) {
			sl.Debug(LMNoInput)
			continue
		} else if nil != err {
			return Result{}, fmt.Errorf("reading %s: %w", f.name, err)
		}
		sl.Debug(LMFilled, LKLength, n, LKData, f.b.String())
	}

	/* Copy ALL the bytes. */
	n, err := ParamCopy(
		con,
		one.Bytes(),
		three.Bytes(),
		two.Bytes(),
		conf.Count,
	)
	var tce memcopy.TruncatedCopyError
	if errors.As(err, &tce) {
		sl.Warn(LMTruncated, LKCount, conf.Count, LKCopied, n)
		if !conf.Strict {
			err = nil
		}
	} else if nil == err {
		sl.Info(LMCopied, LKCount, conf.Count, LKCopied, n)
	}

	/* Snapshot what we have.  Dumping it is the caller's problem, as the
	terminal may well still be in raw mode. */
	res := Result{
		Copied:   n,
		BufOne:   bytes.Clone(one.Bytes()),
		BufTwo:   bytes.Clone(two.Bytes()),
		BufThree: bytes.Clone(three.Bytes()),
	}

	return res, err
}

// ParamCopy writes "dummy " and the NUL-terminated contents of dummy to w,
// then copies n bytes from src to dst.  It returns the number of bytes
// copied.  Copies which don't fit are truncated and reported as a
// memcopy.TruncatedCopyError.
func ParamCopy(w io.Writer, dst, dummy, src []byte, n int) (int, error) {
	if _, err := fmt.Fprintf(
		w,
		"dummy %s\n",
		memcopy.CString(dummy),
	); nil != err {
		return 0, fmt.Errorf("writing dummy: %w", err)
	}
	return memcopy.Copy(dst, src, n)
}
