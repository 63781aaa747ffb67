package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-toolfile/toolfile"
	"github.com/go-toolfile/toolfile/verbose"
)

// Version information set at build time.
var Version = "dev"

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	flags  appFlags
	cfg    appConfig
	logger *zap.Logger
}

// appFlags holds the raw persistent flag values before config resolution.
type appFlags struct {
	configPath  string
	dir         string
	prefix      string
	suffix      string
	maxDepth    int
	engine      string
	definitions string
	verbosity   int
	noThrow     bool
}

// NewApp creates the CLI application.
func NewApp() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "toolfile",
		Short: "Manage directories of LLM tool files",
		Long: `toolfile turns a directory of script files into callable LLM tools.

Each tool lives in its own file; the file name carries the tool name between
a configurable prefix and suffix (calc_tool.go defines "calc"). Files are
executed in a fresh interpreter on every scan, so only point toolfile at
directories you trust.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	pf := app.root.PersistentFlags()
	pf.StringVarP(&app.flags.configPath, "config", "c", "", "Path to a YAML config file")
	pf.StringVarP(&app.flags.dir, "dir", "d", ".", "Directory holding the tool files")
	pf.StringVar(&app.flags.prefix, "prefix", "", "Filename prefix before the tool name")
	pf.StringVar(&app.flags.suffix, "suffix", "_tool", "Filename suffix after the tool name")
	pf.IntVar(&app.flags.maxDepth, "max-depth", 0, "How many directory levels below the base to scan")
	pf.StringVar(&app.flags.engine, "engine", "go", `Tool file engine ("go" or "js")`)
	pf.StringVar(&app.flags.definitions, "definitions", "compact", `Definition handling ("compact", "validated" or "raw")`)
	pf.CountVarP(&app.flags.verbosity, "verbose", "v", "Scan trace verbosity (-v, -vv, -vvv)")
	pf.BoolVar(&app.flags.noThrow, "no-throw", false, "Log scan and dispatch failures instead of failing")

	app.root.AddCommand(
		app.newListCmd(),
		app.newRunCmd(),
		app.newNewCmd(),
		app.newWatchCmd(),
		app.newVersionCmd(),
	)

	return app
}

// WithOutput sets custom output writers (useful for testing).
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application until done or interrupted.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup resolves the effective configuration and initializes logging. Runs
// before every subcommand.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	if cfg.Verbosity > 0 {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.logger = logger
	return nil
}

// openToolset scans the configured directory and returns the toolset.
func (a *App) openToolset() (*toolfile.Toolset, error) {
	opts, err := a.toolsetOptions()
	if err != nil {
		return nil, err
	}
	ts, err := toolfile.New(a.cfg.Dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", a.cfg.Dir, err)
	}

	stats := ts.Stats()
	a.logger.Debug("scan finished",
		zap.String("dir", a.cfg.Dir),
		zap.Int("tools", ts.Len()),
		zap.Int("dirs_visited", stats.DirsVisited),
		zap.Int("files_seen", stats.FilesSeen),
		zap.Int("accepted", stats.Accepted))
	return ts, nil
}

func (a *App) toolsetOptions() ([]toolfile.Option, error) {
	engine, err := engineFor(a.cfg.Engine)
	if err != nil {
		return nil, err
	}
	mode, err := toolfile.ParseDefinitionMode(a.cfg.Definitions)
	if err != nil {
		return nil, err
	}

	opts := []toolfile.Option{
		toolfile.WithEngine(engine),
		toolfile.WithPrefix(a.cfg.Prefix),
		toolfile.WithSuffix(a.cfg.Suffix),
		toolfile.WithMaxDepth(a.cfg.MaxDepth),
		toolfile.WithVerbose(&verbose.Settings{
			Level:   verbose.Level(min(a.cfg.Verbosity, int(verbose.High))),
			NoThrow: a.cfg.NoThrow,
			Output:  a.stderr,
		}),
	}
	switch mode {
	case toolfile.DefinitionValidated:
		opts = append(opts, toolfile.WithValidatedDefinitions())
	case toolfile.DefinitionRaw:
		opts = append(opts, toolfile.WithRawDefinitions())
	}
	return opts, nil
}

func engineFor(name string) (toolfile.Engine, error) {
	switch name {
	case "go":
		return toolfile.NewGoEngine(), nil
	case "js":
		return toolfile.NewJSEngine(), nil
	default:
		return nil, fmt.Errorf(`unknown engine %q (use "go" or "js")`, name)
	}
}

func (a *App) printNames(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No tools found.")
		return
	}
	fmt.Fprintln(a.stdout, strings.Join(names, ", "))
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "toolfile version %s\n", Version)
		},
	}
}
