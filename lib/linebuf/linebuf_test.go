package linebuf

/*
 * linebuf_test.go
 * Tests for linebuf.go
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	for _, size := range []int{1, 11, 50, 100, 4097} {
		b, err := New(size)
		if nil != err {
			t.Fatalf("New(%d): %s", size, err)
		}
		if got := b.Len(); got != size {
			t.Errorf("Len: got:%d want:%d", got, size)
		}
		if !bytes.Equal(b.Bytes(), make([]byte, size)) {
			t.Errorf("Buffer of size %d not zeroed", size)
		}
		b.Release()
	}
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf(
				"New(%d): expected ErrInvalidSize, got %v",
				size,
				err,
			)
		}
	}
}

func TestBufferReadLine(t *testing.T) {
	for _, c := range []struct {
		name  string
		size  int
		have  string
		wants []string /* Successive String()s */
		wantN []int
		rest  string /* Left in the reader. */
	}{{
		name:  "two_lines",
		size:  100,
		have:  "kittens\nmoose\n",
		wants: []string{"kittens\n", "moose\n"},
		wantN: []int{8, 6},
	}, {
		name:  "no_newline",
		size:  100,
		have:  "kittens",
		wants: []string{"kittens"},
		wantN: []int{7},
	}, {
		name:  "long_line",
		size:  5,
		have:  "kittens\n",
		wants: []string{"kitt", "ens\n"},
		wantN: []int{4, 4},
	}, {
		name:  "exact_fit",
		size:  9,
		have:  "kittens\nmoose",
		wants: []string{"kittens\n"},
		wantN: []int{8},
		rest:  "moose",
	}, {
		name:  "one_too_many",
		size:  8,
		have:  "kittens\n",
		wants: []string{"kittens", "\n"},
		wantN: []int{7, 1},
	}, {
		name:  "blank_line",
		size:  10,
		have:  "\nmoose\n",
		wants: []string{"\n"},
		wantN: []int{1},
		rest:  "moose\n",
	}, {
		name:  "size_one",
		size:  1,
		have:  "kittens\n",
		wants: []string{"", ""},
		wantN: []int{0, 0},
		rest:  "kittens\n",
	}} {
		t.Run(c.name, func(t *testing.T) {
			b, err := New(c.size)
			if nil != err {
				t.Fatalf("New: %s", err)
			}
			defer b.Release()
			r := bufio.NewReader(strings.NewReader(c.have))
			for i, want := range c.wants {
				n, err := b.ReadLine(r)
				if nil != err {
					t.Fatalf("ReadLine %d: %s", i, err)
				}
				if n != c.wantN[i] {
					t.Errorf(
						"ReadLine %d: got:%d want:%d",
						i,
						n,
						c.wantN[i],
					)
				}
				if got := b.String(); got != want {
					t.Errorf(
						"ReadLine %d: got:%q want:%q",
						i,
						got,
						want,
					)
				}
			}
			rest, err := io.ReadAll(r)
			if nil != err {
				t.Fatalf("Reading leftovers: %s", err)
			}
			if string(rest) != c.rest {
				t.Errorf(
					"Incorrect leftovers: got:%q want:%q",
					rest,
					c.rest,
				)
			}
		})
	}
}

func TestBufferReadLine_EOF(t *testing.T) {
	b, err := New(10)
	if nil != err {
		t.Fatalf("New: %s", err)
	}
	defer b.Release()
	r := bufio.NewReader(strings.NewReader("moose\n"))
	if _, err := b.ReadLine(r); nil != err {
		t.Fatalf("First ReadLine: %s", err)
	}
	/* EOF shouldn't touch what we have. */
	n, err := b.ReadLine(r)
	if !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF, got %v", err)
	}
	if 0 != n {
		t.Errorf("Read %d bytes at EOF", n)
	}
	if got, want := b.String(), "moose\n"; got != want {
		t.Errorf("Buffer changed at EOF: got:%q want:%q", got, want)
	}
}

func TestBufferReadLine_NulTerminated(t *testing.T) {
	b, err := New(10)
	if nil != err {
		t.Fatalf("New: %s", err)
	}
	defer b.Release()
	r := bufio.NewReader(strings.NewReader("kittens\nab\n"))
	for range 2 {
		if _, err := b.ReadLine(r); nil != err {
			t.Fatalf("ReadLine: %s", err)
		}
	}
	/* Second line is shorter; the old bytes are past the NUL. */
	want := []byte("ab\n\x00ens\n\x00\x00")
	if got := b.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Incorrect bytes:\n got: %q\nwant: %q", got, want)
	}
}

func TestBufferRelease(t *testing.T) {
	b, err := New(10)
	if nil != err {
		t.Fatalf("New: %s", err)
	}
	b.Release()
	b.Release()
	r := bufio.NewReader(strings.NewReader("kittens\n"))
	if _, err := b.ReadLine(r); !errors.Is(err, ErrReleased) {
		t.Errorf("Expected ErrReleased, got %v", err)
	}
}
