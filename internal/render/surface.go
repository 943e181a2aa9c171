package render

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/todolist"
)

// Buffer keeps only the latest fragment it was given.
type Buffer struct {
	last     todolist.Fragment
	replaced int
}

func (b *Buffer) Replace(f todolist.Fragment) {
	b.last = f
	b.replaced++
}

func (b *Buffer) Fragment() todolist.Fragment { return b.last }

// Replaced reports how many fragments have been received.
func (b *Buffer) Replaced() int { return b.replaced }

// Writer writes the markup of every fragment to W.
// Write errors are kept in Err; the first one stops further output.
type Writer struct {
	W   io.Writer
	Err error
}

func (w *Writer) Replace(f todolist.Fragment) {
	if w.Err != nil {
		return
	}
	if _, err := fmt.Fprintln(w.W, f.Markup); err != nil {
		w.Err = fmt.Errorf("write fragment: %w", err)
	}
}
