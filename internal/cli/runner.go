package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/render"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options carry what the root flags and config resolved to.
type Options struct {
	Config *config.Config

	Stdout, Stderr io.Writer

	// Interactive runs the TUI; tests swap it out.
	Interactive func(seed []model.Entry) (tui.Model, error)
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Interactive == nil {
		o.Interactive = func(seed []model.Entry) (tui.Model, error) {
			return tui.Run(seed, tea.WithAltScreen())
		}
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		args = []string{"ls"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		return doInteractive(opt)

	case "print":
		return doPrint(opt)

	case "html":
		return doHTML(opt)

	case "init":
		if len(a) > 1 {
			ui.FFail(opt.Stderr, "usage: todo init [path]")
			return 2
		}
		path := config.LocalFile
		if len(a) == 1 {
			path = a[0]
		}
		return doInit(opt, path)

	case "add":
		if len(a) == 0 || len(a) > 2 {
			ui.FFail(opt.Stderr, "usage: todo add <name> [due-date]")
			return 2
		}
		due := ""
		if len(a) == 2 {
			due = a[1]
		}
		return doAdd(opt, a[0], due)

	case "rm":
		if len(a) != 1 {
			ui.FFail(opt.Stderr, "usage: todo rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.FFail(opt.Stderr, "rm: not a number: "+a[0])
			return 2
		}
		return doRemove(opt, n)
	}

	ui.FFail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a tiny todo list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  ls                      Interactive list (default)
  print                   Print the list
  html                    Print the list as an HTML fragment
  add <name> [due-date]   Append a todo (quote names with spaces)
  rm <index>              Remove the todo at 1-based index
  init [path]             Write the current config (default ./.todolist.toml)

Examples:
  todo add "buy milk" 2022-12-23
  todo print
  todo rm 1
`)
}

// -------------- subcommand impls ----------------

// load returns the saved entries, or the configured seed when nothing is saved yet.
func load(opt Options) ([]model.Entry, error) {
	entries, ok, err := jsonstore.Load(opt.Config.DataFile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return opt.Config.Seed, nil
	}
	return entries, nil
}

func doInteractive(opt Options) int {
	entries, err := load(opt)
	if err != nil {
		ui.FFail(opt.Stderr, "load: "+err.Error())
		return 1
	}
	fm, err := opt.Interactive(entries)
	if err != nil {
		ui.FFail(opt.Stderr, "tui: "+err.Error())
		return 1
	}
	if !fm.Changed() {
		return 0
	}
	if err := jsonstore.Save(opt.Config.DataFile, fm.Entries()); err != nil {
		ui.FFail(opt.Stderr, "save: "+err.Error())
		return 1
	}
	ui.FOK(opt.Stdout, "saved")
	return 0
}

func doPrint(opt Options) int {
	entries, err := load(opt)
	if err != nil {
		ui.FFail(opt.Stderr, "load: "+err.Error())
		return 1
	}
	l, err := todolist.New(render.Terminal{}, nil, entries...)
	if err != nil {
		ui.FFail(opt.Stderr, "render: "+err.Error())
		return 1
	}
	t := ui.Current()
	frag := l.Fragment()
	lines := []string{
		fmt.Sprintf("%s   %s %d", t.Title.Render("Todos"), t.Accent.Render("Total"), len(frag.Rows)),
		"",
	}
	if len(frag.Rows) == 0 {
		lines = append(lines, frag.Markup)
	}
	for i, row := range frag.Rows {
		lines = append(lines, fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), render.Line(row)))
	}
	ui.FPanel(opt.Stdout, lines)
	return 0
}

func doHTML(opt Options) int {
	entries, err := load(opt)
	if err != nil {
		ui.FFail(opt.Stderr, "load: "+err.Error())
		return 1
	}
	out := &render.Writer{W: opt.Stdout}
	if _, err := todolist.New(render.HTML{}, out, entries...); err != nil {
		ui.FFail(opt.Stderr, "render: "+err.Error())
		return 1
	}
	if out.Err != nil {
		ui.FFail(opt.Stderr, out.Err.Error())
		return 1
	}
	return 0
}

// mutate loads the list, applies fn and saves the result.
func mutate(opt Options, fn func(l *todolist.List) error) error {
	entries, err := load(opt)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	l, err := todolist.New(nil, nil, entries...)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	if err := jsonstore.Save(opt.Config.DataFile, l.Entries()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func doAdd(opt Options, name, due string) int {
	err := mutate(opt, func(l *todolist.List) error { return l.Add(name, due) })
	if err != nil {
		ui.FFail(opt.Stderr, err.Error())
		return 1
	}
	ui.FOK(opt.Stdout, "added")
	return 0
}

func doRemove(opt Options, userIndex int) int {
	err := mutate(opt, func(l *todolist.List) error { return l.RemoveAt(userIndex - 1) })
	var ie *todolist.IndexError
	if errors.As(err, &ie) {
		ui.FFail(opt.Stderr, fmt.Sprintf("index out of range: have %d, got %d", ie.Len, userIndex))
		ui.Hint(opt.Stderr, "Hint: run `todo print` to see valid indexes")
		return 2
	}
	if err != nil {
		ui.FFail(opt.Stderr, err.Error())
		return 1
	}
	ui.FOK(opt.Stdout, "removed")
	return 0
}

func doInit(opt Options, path string) int {
	if _, err := os.Stat(path); err == nil {
		ui.FFail(opt.Stderr, "init: "+path+" already exists")
		return 1
	}
	if err := config.SaveToPath(opt.Config, path); err != nil {
		ui.FFail(opt.Stderr, "init: "+err.Error())
		return 1
	}
	log.Printf("Config written to %s", path)
	ui.FOK(opt.Stdout, "wrote "+path)
	return 0
}
