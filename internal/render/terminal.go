package render

import (
	"strings"

	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/ui"
)

const maxNameWidth = 60

// Terminal formats one styled line per row using the active theme.
type Terminal struct{}

func (Terminal) Format(rows []todolist.Row) (string, error) {
	t := ui.Current()
	if len(rows) == 0 {
		return t.Muted.Render("no items"), nil
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = Line(r)
	}
	return strings.Join(lines, "\n"), nil
}

// Line renders a single row; the result never contains a line break.
func Line(r todolist.Row) string {
	due := oneLine(r.DueDate)
	if due == "" {
		due = "-"
	}
	return truncate(oneLine(r.Name), maxNameWidth) + "  " + ui.Current().Due.Render(due)
}

// oneLine keeps the one-line-per-row layout intact.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-3]) + "..."
}
