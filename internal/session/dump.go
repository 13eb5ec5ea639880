package session

/*
 * dump.go
 * Hexdump buffers
 * By J. Stuart McMurray
 * Created 20241016
 * Last Modified 20241016
 */

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/magisterquis/bufcopy/lib/memcopy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Named is a named chunk of bytes.
type Named struct {
	Name string
	Data []byte
}

// Dump writes a header and a hexdump for each of ns to w.  The header is the
// title-cased name, the buffer's size, and the length of its NUL-terminated
// contents.
func Dump(w io.Writer, ns []Named) error {
	var (
		b     = new(bytes.Buffer)
		title = cases.Title(language.English)
	)
	for _, n := range ns {
		fmt.Fprintf(
			b,
			"%s (%d bytes, %d before NUL):\n",
			title.String(n.Name),
			len(n.Data),
			len(memcopy.CString(n.Data)),
		)
		b.WriteString(hex.Dump(n.Data))
	}
	_, err := b.WriteTo(w)
	return err
}

// DumpResult is like Dump, but dumps all three of res's buffers.
func DumpResult(w io.Writer, res Result) error {
	return Dump(w, []Named{
		{Name: NameOne, Data: res.BufOne},
		{Name: NameTwo, Data: res.BufTwo},
		{Name: NameThree, Data: res.BufThree},
	})
}
