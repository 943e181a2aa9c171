package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to a TOML config file")
	theme := flag.String("theme", "", "classic, neon or mono (overrides config)")
	dataFile := flag.String("data", "", "JSON data file (overrides config)")
	flag.Parse()

	cfg, used, err := config.Resolve(*configPath)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	ui.SetTheme(cfg.Theme)

	// Logs never go to the terminal; the TUI owns it.
	log.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			ui.Fail("could not open log file: " + err.Error())
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}
	if used != "" {
		log.Printf("Loaded config from %s", used)
	}

	code := cli.Run(flag.Args(), cli.Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
