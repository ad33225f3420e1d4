// Package main is the entry point for pomo.
// It parses the command line, loads configuration and dispatches to the
// selected command. Running pomo with no command starts the timer.
package main

import (
	"fmt"
	"io"
	"os"

	"pomo/internal/config"
	"pomo/internal/logging"
	"pomo/internal/storage"

	"github.com/alecthomas/kong"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	Debug     bool             `help:"Enable debug logging."`
	StateFile string           `name:"state-file" type:"path" placeholder:"PATH" help:"Session file (default ~/.pomo.json)."`
	Version   kong.VersionFlag `short:"v" help:"Show version information."`

	Stdout io.Writer `kong:"-"`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Run    RunCmd    `cmd:"" default:"1" help:"Start or resume the timer."`
	Status StatusCmd `cmd:"" help:"Print the current session without changing it."`
	Reset  ResetCmd  `cmd:"" help:"Start over with a fresh work session."`
	Config ConfigCmd `cmd:"" help:"Show or create the configuration file."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("pomo"),
		kong.Description("A Pomodoro timer for your terminal: 25 minutes of work, 5 minutes of break, repeat.\n\n" +
			"Keys while running: p pause, r resume, space toggle, ? help, q quit."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("pomo version %s (commit %s, built %s)", version, commit, date)},
	}
	return kong.New(cli, append(opts, options...)...)
}

func main() {
	logging.ToConsole(os.Stderr)

	cli := CLI{Globals: Globals{Stdout: os.Stdout}}
	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

// setup loads the configuration, applies the log level and opens the
// session store. --state-file wins over the config file.
func (g *Globals) setup() (*config.Config, *storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logging.SetLevel(cfg.Log.Level, g.Debug)

	path := g.StateFile
	if path == "" {
		path = cfg.GetStateFile()
	}
	if path == "" {
		path = storage.DefaultPath()
	}
	return cfg, storage.New(path), nil
}

func (g *Globals) out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}
