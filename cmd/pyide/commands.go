package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/pyide/internal/app"
	"github.com/dshills/pyide/internal/config"
	"github.com/dshills/pyide/internal/config/loader"
	"github.com/dshills/pyide/internal/renderer/backend"
)

// ErrNotTerminal is returned when the editor is started without a terminal.
var ErrNotTerminal = errors.New("standard input and output must be a terminal; use 'pyide run FILE' to run a script without the editor")

// flags are shared by every command.
type flags struct {
	configPath  string
	theme       string
	interpreter string
	timeout     time.Duration
	logLevel    string
	logFile     string
}

func (f *flags) overrides() config.Overrides {
	return config.Overrides{
		Theme:       f.theme,
		Interpreter: f.interpreter,
		Timeout:     f.timeout,
		LogLevel:    f.logLevel,
		LogFile:     f.logFile,
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "pyide [files...]",
		Short: "A small tabbed editor that runs Python scripts",
		Long: `pyide edits Python files in tabs and runs the active one with an
interpreter, showing what it printed in the output pane.

Configuration is read from $XDG_CONFIG_HOME/pyide/config.toml (or
config.yaml), then PYIDE_* environment variables, then flags. The file is
reloaded while the editor runs.`,
		Example: `  pyide                     Start with an empty tab
  pyide main.py util.py     Open files in tabs
  pyide --theme dark        Start with the dark theme
  pyide run main.py         Run a script without the editor`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), f, args)
		},
	}
	root.SetVersionTemplate(versionString() + "\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "configuration file")
	pf.StringVar(&f.theme, "theme", "", "theme name (light, dark or one from the configuration)")
	pf.StringVar(&f.interpreter, "interpreter", "", "interpreter used to run files")
	pf.DurationVar(&f.timeout, "timeout", 0, "run deadline, e.g. 30s")
	pf.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&f.logFile, "log-file", "", "log file")

	root.AddCommand(newRunCmd(f), newThemesCmd(f), newVersionCmd())
	return root
}

// setup resolves the configuration file and opens the log. The returned
// close function closes the log file.
func setup(f *flags) (app.Options, func()) {
	var dir string
	if f.configPath == "" {
		if d, err := config.Dir(); err == nil {
			dir = d
		}
	}
	opts := app.Options{
		ConfigPath: config.Locate(loader.DefaultFS(), f.configPath, dir),
		Overrides:  f.overrides(),
		LookupEnv:  os.LookupEnv,
		LogLevel:   new(slog.LevelVar),
	}

	// The log file and level may come from the configuration itself. A
	// configuration that does not load is reported by app.New.
	logPath := config.DefaultLogFile()
	src := config.Source{Path: opts.ConfigPath, LookupEnv: opts.LookupEnv, Overrides: opts.Overrides}
	if cfg, err := src.Load(); err == nil {
		if cfg.Log.File != "" {
			logPath = cfg.Log.File
		}
		if level, err := cfg.LogLevel(); err == nil {
			opts.LogLevel.Set(level)
		}
	} else if f.logFile != "" {
		logPath = f.logFile
	}

	var out io.Writer = io.Discard
	closeLog := func() {}
	if file, err := app.OpenLogFile(logPath); err == nil {
		out = file
		closeLog = func() { _ = file.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	opts.Logger = app.NewLogger(opts.LogLevel, out)
	return opts, closeLog
}

func runEditor(ctx context.Context, f *flags, files []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	opts, closeLog := setup(f)
	defer closeLog()
	opts.Files = files
	opts.Watch = true

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	screen, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(screen); err != nil {
		return err
	}

	// SIGINT cancels a running script first; the next one exits.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		for range signals {
			application.Interrupt()
		}
	}()

	return application.Run(ctx)
}

func newRunCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Run a file with the configured interpreter and print its output",
		Long: `run executes FILE the way the editor's Run command does and prints
the text the output pane would show. The exit status of the program is
passed through.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog := setup(f)
			defer closeLog()
			opts.Logger = app.Tee(opts.Logger, cmd.ErrOrStderr(), slog.LevelWarn)

			application, err := app.New(opts)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer application.Shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := application.RunFile(ctx, args[0])
			if res != nil {
				fmt.Fprint(cmd.OutOrStdout(), res.Display)
			}
			return err
		},
	}
}

func newThemesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, closeLog := setup(f)
			defer closeLog()

			application, err := app.New(opts)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer application.Shutdown()

			current := application.Tabs().Theme()
			for _, name := range application.Tabs().Themes().Names() {
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func versionString() string {
	return fmt.Sprintf("pyide %s\nCommit: %s\nBuilt: %s", version, commit, date)
}
