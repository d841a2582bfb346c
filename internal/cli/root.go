package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toyz/gypgen/internal/utils"
)

// Version is the gypgen release, overridden at build time with -ldflags
var Version = "1.0.0"

// flagValues holds the raw command line before it is merged into a Config
type flagValues struct {
	init     bool
	update   bool
	set      string
	get      string
	unset    string
	clear    bool
	dir      string
	dryRun   bool
	cacheDir string
	excludes []string
	verbose  bool
	quiet    bool
}

// runState carries the command line and the configuration it resolved to
type runState struct {
	flags  flagValues
	config *Config
}

// verboseErrors reports whether errors get the detailed report. The resolved
// configuration wins; the raw flag is used when it could not be built.
func (s *runState) verboseErrors() bool {
	if s.config != nil {
		return s.config.Verbose
	}
	return s.flags.verbose
}

// NewRootCommand builds the gypgen command writing to stdout and stderr
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd, _ := newRootCommand(stdout, stderr)
	return cmd
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, *runState) {
	state := &runState{}
	flags := &state.flags

	cmd := &cobra.Command{
		Use:   "gypgen",
		Short: "Generate and maintain binding.gyp files for Node.js native addons",
		Long: `gypgen scans a Node.js native addon project for C and C++ sources
(.c, .cc, .cpp, skipping node_modules and .git) and writes a binding.gyp
build manifest for node-gyp. It detects node-addon-api and nan from
package.json and an include/ directory at the project root.

Only one operation runs per invocation, checked in this order:
--set, --get, --unset, --clear-cache, --init, --update.`,
		Example: `  gypgen --init                 # generate binding.gyp in the current directory
  gypgen --update --dry-run      # show how binding.gyp would change
  gypgen -C ./addon -u           # update the manifest of another project
  gypgen --set registry=local    # store a value in the local cache
  gypgen --get registry          # print a stored value`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, state, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.BoolVarP(&flags.init, "init", "i", false, "generate binding.gyp")
	f.BoolVarP(&flags.update, "update", "u", false, "update binding.gyp with the current sources and helpers")
	f.StringVarP(&flags.set, "set", "s", "", "store a `key=value` pair in the local cache")
	f.StringVarP(&flags.get, "get", "g", "", "print the value stored under `key`")
	f.StringVar(&flags.unset, "unset", "", "remove `key` from the local cache")
	f.BoolVar(&flags.clear, "clear-cache", false, "remove every key from the local cache")
	f.StringVarP(&flags.dir, "dir", "C", ".", "project root directory")
	f.BoolVar(&flags.dryRun, "dry-run", false, "with --update, report changes without writing")
	f.StringVar(&flags.cacheDir, "cache-dir", "", "key/value cache directory (default $TMPDIR/gyp-cli)")
	f.StringSliceVar(&flags.excludes, "exclude", nil, "additional directory names to skip while scanning")
	f.BoolVar(&flags.verbose, "verbose", false, "enable verbose output and detailed error reporting")
	f.BoolVar(&flags.quiet, "quiet", false, "only show errors and requested values")

	return cmd, state
}

// run resolves the configuration and dispatches to a single operation
func run(cmd *cobra.Command, state *runState, stdout, stderr io.Writer) error {
	flags := &state.flags
	cfg, fromFile, err := buildConfig(cmd, flags)
	if err != nil {
		return err
	}
	state.config = &cfg

	diagnostics := utils.NewDiagnosticSystemWithWriters(cfg.DiagnosticLevel(), stdout, stderr)
	if fromFile {
		diagnostics.Verbose("Loaded %s", filepath.Join(cfg.Root, ConfigFileName))
	}

	g := NewGenerator(cfg, diagnostics)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case cmd.Flags().Changed("set"):
		return g.Set(flags.set)
	case cmd.Flags().Changed("get"):
		return g.Get(flags.get)
	case cmd.Flags().Changed("unset"):
		return g.Unset(flags.unset)
	case flags.clear:
		return g.ClearCache()
	case flags.init:
		return g.Init(ctx)
	case flags.update:
		return g.Update(ctx)
	default:
		return cmd.Help()
	}
}

// buildConfig layers defaults, the project config file and flags
func buildConfig(cmd *cobra.Command, flags *flagValues) (Config, bool, error) {
	cfg := DefaultConfig()
	cfg.Root = flags.dir

	cfg, fromFile, err := LoadConfigFile(cfg)
	if err != nil {
		return Config{}, false, err
	}

	changed := cmd.Flags().Changed
	if changed("cache-dir") {
		cfg.CacheDir = flags.cacheDir
	}
	if changed("exclude") {
		cfg.ExtraExcludes = append(cfg.ExtraExcludes, flags.excludes...)
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	if changed("quiet") {
		cfg.Quiet = flags.quiet
	}
	if cfg.Quiet && changed("verbose") && !changed("quiet") {
		cfg.Quiet = false
	}
	if cfg.Verbose && changed("quiet") && !changed("verbose") {
		cfg.Verbose = false
	}
	cfg.DryRun = flags.dryRun

	if err := cfg.Validate(); err != nil {
		return Config{}, false, err
	}
	return cfg, fromFile, nil
}

// Execute runs gypgen with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd, state := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		NewDiagnosticReporter(state.verboseErrors(), stderr).ReportError(err)
		return 1
	}
	return 0
}
