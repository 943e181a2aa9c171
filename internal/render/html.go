package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/idilsaglam/todolist/internal/todolist"
)

var rowTmpl = template.Must(template.New("row").Parse(
	`<div>{{.Name}}</div>` +
		`<div>{{.DueDate}}</div>` +
		`<button class="delete-todo-button js-delete-todo-button" data-index="{{.Delete.Index}}">Delete</button>` + "\n"))

// HTML formats rows as the markup fragment placed into the todo list container.
type HTML struct{}

func (HTML) Format(rows []todolist.Row) (string, error) {
	var b strings.Builder
	for _, r := range rows {
		if err := rowTmpl.Execute(&b, r); err != nil {
			return "", fmt.Errorf("html row %d: %w", r.Delete.Index, err)
		}
	}
	return b.String(), nil
}
