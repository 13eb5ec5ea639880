// Package console - Prompt for and read lines from stdio
package console

/*
 * console.go
 * Prompt for and read lines from stdio
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/magisterquis/bufcopy/lib/linebuf"
	"github.com/magisterquis/bufcopy/lib/memcopy"
	"github.com/magisterquis/goxterm"
)

// ctrlC is what we get in raw mode instead of a SIGINT.
const ctrlC = 0x03

// ErrInterrupted is passed to Options.Interrupt when the user hits Ctrl+C
// while the terminal is in raw mode.
var ErrInterrupted = errors.New("interrupted")

// Options configures a Console.
type Options struct {
	// NoTerminal disables raw-mode line editing, even if input is a
	// terminal.
	NoTerminal bool

	// Interrupt, if not nil, is called with ErrInterrupted when Ctrl+C is
	// pressed in raw mode.  It's likely a context.CancelCauseFunc.
	Interrupt func(error)
}

// Console writes prompts and reads lines into fixed-size buffers.  Its
// output should be written via its Write method, which does the right thing
// whether or not the terminal's in raw mode.
type Console struct {
	out io.Writer
	t   *goxterm.Terminal /* Nil if we're not in raw mode. */
	r   *bufio.Reader
	rL  sync.Mutex /* Read lock. */
}

// New returns a new Console which reads from in and writes to out.  If in is
// a terminal and opts.NoTerminal isn't set, the terminal is put in raw mode
// and lines are read with a bit of editing.  Call the returned function to
// restore the terminal.
func New(in io.Reader, out io.Writer, opts Options) (*Console, func(), error) {
	/* If we're not talking to a terminal, life's easy. */
	f, ok := in.(*os.File)
	if opts.NoTerminal || !ok || !goxterm.IsTerminal(int(f.Fd())) {
		return newPlain(in, out), func() {}, nil
	}

	/* Fancy terminal it is. */
	c := newTerminal(stdioRW{in: in, out: out}, opts.Interrupt)
	fd := int(f.Fd())
	if w, h, err := goxterm.GetSize(fd); nil == err {
		if err := c.t.SetSize(w, h); nil != err {
			return nil, nil, fmt.Errorf(
				"setting terminal size: %w",
				err,
			)
		}
	}
	oldState, err := goxterm.MakeRaw(fd)
	if nil != err {
		return nil, nil, fmt.Errorf(
			"putting terminal in raw mode: %w",
			err,
		)
	}

	return c, sync.OnceFunc(func() { goxterm.Restore(fd, oldState) }), nil
}

// newPlain returns a Console which writes prompts to out and reads lines
// from in, with no terminal fanciness.
func newPlain(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, r: bufio.NewReader(in)}
}

// newTerminal returns a Console which uses a goxterm.Terminal wrapped around
// rw.  The caller is responsible for any raw mode setting.  If interrupt isn't
// nil, it's called on Ctrl+C.
func newTerminal(rw io.ReadWriter, interrupt func(error)) *Console {
	t := goxterm.NewTerminal(rw, "")
	t.ControlCharacterCallback = func(key rune) {
		switch key {
		case ctrlC:
			if nil != interrupt {
				interrupt(ErrInterrupted)
			}
		}
	}
	return &Console{
		out: t,
		t:   t,
		r:   bufio.NewReader(&termLineReader{t: t}),
	}
}

// Write writes b to the console's output.
func (c *Console) Write(b []byte) (int, error) { return c.out.Write(b) }

// Fill writes the prompt and reads a line into b with linebuf.Buffer.ReadLine
// semantics.  If there's still input left over from an earlier overlong line,
// a terminal won't show the prompt; the leftovers are used without waiting.
// If ctx is done before a line is read, Fill returns context.Cause(ctx) and b
// is not modified.  The read itself keeps going in the background, so the
// Console shouldn't be used once ctx is done.
func (c *Console) Fill(
	ctx context.Context,
	prompt string,
	b *linebuf.Buffer,
) (int, error) {
	/* Don't bother if we're already done. */
	if nil != ctx.Err() {
		return 0, context.Cause(ctx)
	}

	/* Show the user the prompt. */
	if nil != c.t {
		c.t.SetPrompt(prompt)
	} else if _, err := io.WriteString(c.out, prompt); nil != err {
		return 0, fmt.Errorf("writing prompt: %w", err)
	}

	/* Read into a scratch buffer, so a read we abandon doesn't scribble
	on b. */
	type res struct {
		line []byte
		n    int
		err  error
	}
	var (
		ch   = make(chan res, 1)
		size = b.Len()
	)
	go func() {
		c.rL.Lock()
		defer c.rL.Unlock()
		sb, err := linebuf.New(size)
		if nil != err {
			ch <- res{err: err}
			return
		}
		defer sb.Release()
		n, err := sb.ReadLine(c.r)
		ch <- res{
			line: bytes.Clone(sb.Bytes()[:n+1]),
			n:    n,
			err:  err,
		}
	}()

	/* Wait for a line or for someone to give up. */
	var r res
	select {
	case <-ctx.Done():
		return 0, context.Cause(ctx)
	case r = <-ch:
	}
	if errors.Is(r.err, io.EOF) {
		return 0, io.EOF
	} else if nil != r.err && nil == r.line {
		return 0, r.err
	}

	/* Line plus terminator. */
	if _, err := memcopy.Copy(b.Bytes(), r.line, r.n+1); nil != err {
		return 0, fmt.Errorf("saving line: %w", err)
	}
	return r.n, r.err
}

// termLineReader turns a goxterm.Terminal's lines into an io.Reader.  Each
// line gets its newline back.
type termLineReader struct {
	t       *goxterm.Terminal
	pending []byte /* Unread part of the last line. */
}

// Read reads a line from the terminal, if we've not got one already.  A line
// which ends during a bracketed paste is still a line.
func (tlr *termLineReader) Read(p []byte) (int, error) {
	if 0 == len(tlr.pending) {
		l, err := tlr.t.ReadLine()
		if nil != err && !errors.Is(err, goxterm.ErrPasteIndicator) {
			return 0, err
		}
		tlr.pending = []byte(l + "\n")
	}
	n := copy(p, tlr.pending)
	tlr.pending = tlr.pending[n:]
	return n, nil
}

// stdioRW combines stdin and stdout into an io.ReadWriter.
type stdioRW struct {
	in  io.Reader
	out io.Writer
}

func (s stdioRW) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s stdioRW) Write(p []byte) (int, error) { return s.out.Write(p) }
