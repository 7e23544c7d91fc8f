// Package main is the entry point for the touchstone list demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/touchstone/internal/app"
	"github.com/dshills/touchstone/internal/config"
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/logging"
	"github.com/dshills/touchstone/internal/platform/terminal"
	"github.com/dshills/touchstone/internal/recycler"
	"github.com/dshills/touchstone/internal/script"
	"github.com/dshills/touchstone/internal/view"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath  string
	ScriptPath  string
	Rows        int
	LogLevel    string
	LogFile     string
	PrintConfig bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.Rows > 0 {
		cfg.Demo.Rows = opts.Rows
	}
	if opts.ScriptPath != "" {
		cfg.Demo.Script = opts.ScriptPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	if opts.PrintConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	log, closeLog, err := openLog(opts.LogFile, cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := runDemo(cfg, opts.ConfigPath, log); err != nil {
		if errors.Is(err, app.ErrQuit) || errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runDemo(cfg config.Config, configPath string, log *logging.Logger) error {
	term, err := terminal.New(terminal.DefaultMetrics(), log)
	if err != nil {
		return app.NewComponentError("terminal", "create", err)
	}
	if err := term.Start(); err != nil {
		return app.NewComponentError("terminal", "start", err)
	}
	defer term.Stop()

	tree := view.NewTree(log)
	size := term.Size()
	root := tree.Create(view.Options{Name: "root", Frame: geom.R(0, 0, size.Width, size.Height), Axis: view.AxisColumn})
	tree.SetRoot(root)

	list := recycler.New(tree, view.Options{Name: "list", Frame: listFrame(size, term.Metrics())}, cfg.RecyclerOptions(), log)
	if err := tree.AddChild(root, list.ID()); err != nil {
		return app.NewComponentError("view", "add list", err)
	}

	if cfg.Demo.Script != "" {
		ds, err := script.LoadFile(cfg.Demo.Script, script.WithLogger(log))
		if err != nil {
			return app.NewComponentError("script", "load", err)
		}
		defer ds.Close()
		ds.Attach(list)
	} else {
		newDemoSource(cfg.Demo.Rows).Attach(list)
	}
	tree.GiveFocus(list.ID())

	var updates <-chan config.Config
	if configPath != "" {
		w, err := config.NewWatcher(configPath, config.DefaultDebounce, log)
		if err != nil {
			log.Warn("live reload disabled: %v", err)
		} else {
			defer w.Close()
			updates = w.Updates()
		}
	}

	renderer := terminal.NewRenderer(term.Screen(), term.Metrics(), tree)
	application, err := app.New(app.Options{
		Tree:    tree,
		Sampler: term,
		Config:  cfg,
		Log:     log,
		Updates: updates,
		Draw: func(res app.FrameResult) {
			if term.Resized() {
				size := term.Size()
				tree.SetFrame(root, geom.R(0, 0, size.Width, size.Height))
				list.SetViewport(listFrame(size, term.Metrics()))
			}
			renderer.Draw(status(tree, list, res), list)
		},
	})
	if err != nil {
		return err
	}
	application.AddAnimated(list)
	application.SoundRequested.Subscribe(func(s gesture.Sound) {
		if s == gesture.SoundFocusError || s == gesture.SoundClickError {
			term.Beep()
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("touchstone %s started", version)
	err = application.Run(ctx)

	snap := application.Metrics().Snapshot()
	log.Info("%d frames, avg %v, %.1f%% dropped, %d error sounds",
		snap.Frame.Count, snap.Frame.Avg, snap.DropRate(), snap.Errors())
	return err
}

// listFrame leaves the bottom line for the status bar.
func listFrame(size geom.Size, m terminal.Metrics) geom.Rect {
	return geom.R(0, 0, size.Width, max(0, size.Height-m.CellHeight))
}

func status(tree *view.Tree, list *recycler.Frame, res app.FrameResult) string {
	first, last := list.VisibleRange()
	focused := "-"
	for _, c := range list.LiveCells() {
		if tree.IsAncestorOrSelf(c.View(), tree.Focus()) {
			if p, ok := c.IndexPath(); ok {
				focused = p.String()
			}
		}
	}
	return fmt.Sprintf("%s  entries %d-%d of %d  focus %s  %.0f fps  q quit",
		res.InputType, first, last, list.Len(), focused, res.Frame.FPS)
}

func openLog(path string, level logging.Level) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.New(logging.Config{Level: level, Output: io.Discard}), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log := logging.New(logging.Config{Level: level, Output: f, Prefix: "touchstone"})
	return log, func() { _ = f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script providing the list rows")
	flag.IntVar(&opts.Rows, "rows", 0, "Number of rows in the built-in list")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.PrintConfig, "print-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Touchstone - focus and gesture driven list demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: touchstone [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: arrows or hjkl move focus, Enter/Space select, q quits.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  touchstone -rows 10000           Scroll a long list\n")
		fmt.Fprintf(os.Stderr, "  touchstone -script list.lua      Rows from a Lua script\n")
		fmt.Fprintf(os.Stderr, "  touchstone -c touchstone.toml    Live-reloaded configuration\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Touchstone %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
