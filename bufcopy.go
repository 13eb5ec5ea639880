// Program bufcopy - Read two lines, copy one buffer into another
package main

/*
 * bufcopy.go
 * Read two lines, copy one buffer into another
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magisterquis/bufcopy/internal/console"
	"github.com/magisterquis/bufcopy/internal/session"
	"golang.org/x/sync/errgroup"
)

var (
	// LogEnvVar is the environment variable we use for the default
	// logfile, which will be "" if unset.
	LogEnvVar = "BUFCOPY_LOG"
)

// Log messages and keys.
const (
	LMTerminating = "Program terminating"
	LMSignal      = "Caught signal"
	LMDumpError   = "Dump failed"

	LKError  = "error"
	LKSignal = "signal"
)

func main() { os.Exit(rmain()) }
func rmain() int {
	/* Command-line flags. */
	var (
		count = flag.Int(
			"count",
			session.DefaultCount,
			"Number of `bytes` to copy from buffer two to buffer one",
		)
		strict = flag.Bool(
			"strict",
			false,
			"Exit unhappily if the copy is truncated",
		)
		dump = flag.Bool(
			"dump",
			false,
			"Hexdump the buffers to stderr after the copy",
		)
		logFile = flag.String(
			"log",
			os.Getenv(LogEnvVar),
			"Optional `file` to which to write JSON logs",
		)
		noTerminal = flag.Bool(
			"no-terminal",
			false,
			"Don't use line editing, even if stdin is a terminal",
		)
	)
	flag.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			`Usage: %s [options]

Reads a line into each of two %d-byte buffers and copies up to -count bytes
from the second into the first, printing a %d-byte buffer along the way.
Copies which would run off the end of a buffer are truncated.

Options:
`,
			os.Args[0],
			session.SizeOne,
			session.SizeThree,
		)
		flag.PrintDefaults()
	}
	flag.Parse()

	/* Set up logging.  If we're not writing to a logfile, we'll just kinda
	discard log messages. */
	var lw = io.Discard
	if "" != *logFile {
		f, err := os.OpenFile(
			*logFile,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0600,
		)
		if nil != err {
			log.Printf("Error opening logfile %s: %s", *logFile, err)
			return 2
		}
		defer f.Close()
		lw = f
	}
	sl := slog.New(slog.NewJSONHandler(
		lw,
		&slog.HandlerOptions{Level: slog.LevelDebug},
	))

	/* Something to read from. */
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	con, cleanup, err := console.New(os.Stdin, os.Stdout, console.Options{
		NoTerminal: *noTerminal,
		Interrupt:  cancel,
	})
	if nil != err {
		log.Printf("Error setting up console: %s", err)
		return 2
	}
	defer cleanup()

	/* Where dumps go, if they go anywhere. */
	var dw io.Writer
	if *dump {
		dw = os.Stderr
	}

	/* Run the session, stopping early on a signal. */
	var (
		res         session.Result
		eg, ectx    = errgroup.WithContext(ctx)
		sctx, sdone = context.WithCancel(ectx)
	)
	eg.Go(func() error {
		defer sdone()
		var err error
		res, err = session.Run(ectx, sl, con, session.Config{
			Count:  *count,
			Strict: *strict,
		})
		return err
	})
	eg.Go(func() error { return watchSignals(sctx, sl) })

	/* Wait for it to finish, and show the user what happened. */
	err = eg.Wait()
	if derr := restoreThenDump(cleanup, dw, res); nil != derr {
		sl.Error(LMDumpError, LKError, derr)
		err = errors.Join(err, fmt.Errorf("dumping buffers: %w", derr))
	}
	if nil != err {
		log.Printf("Error: %s", err)
		sl.Info(LMTerminating, LKError, err)
		return 1
	}
	sl.Info(LMTerminating)

	return 0
}

// restoreThenDump calls restore, then dumps res's buffers to w.  Nothing is
// dumped if w is nil or the session never got as far as the copy.  A raw-mode
// terminal doesn't turn newlines into CRLFs, hence restoring first.
func restoreThenDump(restore func(), w io.Writer, res session.Result) error {
	restore()
	if nil == w || nil == res.BufOne {
		return nil
	}
	return session.DumpResult(w, res)
}

// watchSignals returns an error on SIGINT or SIGTERM.  It returns nil when ctx
// is done.
func watchSignals(ctx context.Context, sl *slog.Logger) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ch)

	select {
	case s := <-ch:
		sl.Warn(LMSignal, LKSignal, s.String())
		return fmt.Errorf("caught %s", s)
	case <-ctx.Done():
		return nil
	}
}
