package todolist

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/todolist/internal/model"
)

// ErrStaleBinding is returned when a delete binding from an older fragment is used.
var ErrStaleBinding = errors.New("stale delete binding")

// IndexError reports a RemoveAt index outside the list at call time.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: have %d, got %d", e.Len, e.Index)
}

// Formatter turns the rows of one render into display markup.
type Formatter interface {
	Format(rows []Row) (string, error)
}

// Surface receives every rendered fragment as a full replacement of the previous one.
type Surface interface {
	Replace(f Fragment)
}

// Row is one rendered entry plus the delete action bound to its current position.
type Row struct {
	model.Entry
	Delete Binding
}

// Fragment is the output of a single render.
type Fragment struct {
	Generation uint64
	Rows       []Row
	Markup     string
}

// Binding deletes the row it was rendered for. It is only valid until the
// next mutation of the list that produced it.
type Binding struct {
	Index      int
	generation uint64
	list       *List
}

// Delete removes the bound row and re-renders.
func (b Binding) Delete() error {
	if b.list == nil {
		return ErrStaleBinding
	}
	return b.list.removeBound(b)
}

// List is an ordered, in-memory todo list. Every mutation is followed by a
// full render; there is no partial update of the surface.
type List struct {
	entries    []model.Entry
	generation uint64

	format  Formatter
	surface Surface
	last    Fragment
}

// New creates a list holding a copy of seed and renders it once.
func New(format Formatter, surface Surface, seed ...model.Entry) (*List, error) {
	l := &List{
		entries: append([]model.Entry(nil), seed...),
		format:  format,
		surface: surface,
	}
	if err := l.Render(); err != nil {
		return nil, err
	}
	return l, nil
}

// Add appends an entry. Blank names and dates are accepted as-is.
// If formatting the new state fails the list is left unchanged.
func (l *List) Add(name, dueDate string) error {
	next := make([]model.Entry, len(l.entries), len(l.entries)+1)
	copy(next, l.entries)
	next = append(next, model.Entry{Name: name, DueDate: dueDate})
	return l.commit(next, l.generation+1)
}

// RemoveAt removes the entry at index and shifts the following entries left.
// If formatting the new state fails the list is left unchanged.
func (l *List) RemoveAt(index int) error {
	if index < 0 || index >= len(l.entries) {
		return &IndexError{Index: index, Len: len(l.entries)}
	}
	next := make([]model.Entry, 0, len(l.entries)-1)
	next = append(next, l.entries[:index]...)
	next = append(next, l.entries[index+1:]...)
	return l.commit(next, l.generation+1)
}

func (l *List) removeBound(b Binding) error {
	if b.list != l || b.generation != l.generation {
		return fmt.Errorf("delete row %d: %w", b.Index, ErrStaleBinding)
	}
	return l.RemoveAt(b.Index)
}

// Render rebuilds every row and its delete binding from the current order and
// hands the result to the surface.
func (l *List) Render() error {
	return l.commit(l.entries, l.generation)
}

// commit formats entries at generation and only then makes them current.
func (l *List) commit(entries []model.Entry, generation uint64) error {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			Entry:  e,
			Delete: Binding{Index: i, generation: generation, list: l},
		}
	}
	f := Fragment{Generation: generation, Rows: rows}
	if l.format != nil {
		markup, err := l.format.Format(rows)
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
		f.Markup = markup
	}
	l.entries = entries
	l.generation = generation
	l.last = f
	if l.surface != nil {
		l.surface.Replace(f)
	}
	return nil
}

// Entries returns a copy of the current entries in display order.
func (l *List) Entries() []model.Entry {
	return append([]model.Entry(nil), l.entries...)
}

func (l *List) Len() int { return len(l.entries) }

// Fragment returns the most recent render.
func (l *List) Fragment() Fragment {
	f := l.last
	f.Rows = append([]Row(nil), l.last.Rows...)
	return f
}
