package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/projector/internal/config"
	"github.com/roach88/projector/internal/projector"
	"github.com/roach88/projector/internal/store"
)

// RootOptions holds the command-line flags. Empty values defer to the
// environment, the settings file and the built-in defaults.
type RootOptions struct {
	Config   string
	Pwd      string
	Backend  string
	Format   string
	Settings string
	Verbose  bool
}

// NewRootCommand creates the projector command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "projector [key] | add <key> <value> | rm <key>",
		Short: "Directory-scoped key/value overlay",
		Long: `Attach key/value pairs to directories and resolve them from anywhere below.

A lookup walks from the current directory up to the root; a value set on a
closer directory overrides the same key set further up.

Examples:
  projector                   print every value visible from here as JSON
  projector foo               print the value of foo, or nothing
  projector add foo bar       set foo=bar on the current directory
  projector rm foo            remove foo from the current directory
  projector --pwd /srv foo    resolve foo as if run from /srv`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjector(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "backing file (default <config dir>/projector/projector.json)")
	cmd.Flags().StringVarP(&opts.Pwd, "pwd", "p", "", "directory to resolve from (default working directory)")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "storage backend (json|sqlite)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format for all values (json|yaml|text)")
	cmd.Flags().StringVar(&opts.Settings, "settings", "", "settings file (default <config dir>/projector/settings.yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	return cmd
}

func runProjector(opts *RootOptions, args []string, cmd *cobra.Command) error {
	req, err := config.ParseRequest(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}

	cfg, err := loadConfig(opts, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	backend, err := store.Open(cfg.Backend, cfg.Config, store.WithLogger(logger))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	proj := projector.New(backend.Load(ctx), cfg.Pwd)
	logger.Debug("resolving", "pwd", cfg.Pwd, "store", backend.Path(), "backend", cfg.Backend, "op", req.Op.String())

	out := &OutputFormatter{Format: cfg.Format, Writer: cmd.OutOrStdout()}
	return Dispatch(ctx, proj, backend, req, out)
}

// loadConfig layers explicitly set flags over env, settings file and defaults.
// Without a user config directory the default settings file is skipped.
func loadConfig(opts *RootOptions, cmd *cobra.Command) (*config.Config, error) {
	settings := opts.Settings
	if settings == "" {
		// An empty path makes the loader skip the settings layer.
		settings, _ = config.DefaultSettingsFile()
	}

	loader := config.NewLoader(
		config.WithSettingsFile(settings),
		config.WithFlags(changedFlags(opts, cmd)),
	)
	return loader.Load()
}

func changedFlags(opts *RootOptions, cmd *cobra.Command) map[string]any {
	flags := map[string]any{}
	set := func(name string, value any) {
		if cmd.Flags().Changed(name) {
			flags[name] = value
		}
	}

	set(config.KeyConfig, opts.Config)
	set(config.KeyPwd, opts.Pwd)
	set(config.KeyBackend, opts.Backend)
	set(config.KeyFormat, opts.Format)
	set(config.KeyVerbose, opts.Verbose)

	return flags
}

// newLogger writes text logs to w at info level, or debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}
