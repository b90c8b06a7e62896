// Command exttally counts the files below a directory by extension and lists
// the files that have no extension.
//
//	exttally [flags] <directory>
//
// The report goes to stdout. Diagnostics go to stderr. The exit status is 0
// whenever a report was printed, including for an empty tree, and 1 for a bad
// invocation or a path that is not a directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/garethgeorge/exttally/internal/config"
	"github.com/garethgeorge/exttally/internal/logging"
	"github.com/garethgeorge/exttally/internal/progress"
	"github.com/garethgeorge/exttally/internal/report"
	"github.com/garethgeorge/exttally/internal/scanner"
	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "0.1.0-dev"

// codeUsage marks a malformed invocation: wrong argument count or bad flags.
const codeUsage errors.ErrorCode = "USAGE"

const usageLine = "Usage: exttally <directory>"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.DefaultConfig()
	cmd := newRootCommand(&cfg, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.GetCode(err) == codeUsage:
		fmt.Fprintln(stdout, usageLine)
		if cfg.Verbose {
			fmt.Fprintf(stderr, "exttally: %v\n", err)
		}
		return 1
	case scanner.IsInvalidDirectory(err):
		var pe errors.PlatformError
		errors.As(err, &pe)
		fmt.Fprintf(stdout, "Error: %s\n", pe.Message())
		return 1
	default:
		fmt.Fprintf(stderr, "exttally: %v\n", err)
		return 1
	}
}

func newRootCommand(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "exttally <directory>",
		Short:         "Count files by extension below a directory",
		Version:       version,
		Args:          exactlyOneDirectory,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Root = args[0]
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, codeUsage, "invalid configuration")
			}
			log := logging.New(cfg, stderr)
			defer func() { _ = log.Sync() }()
			return scanAndReport(cmd.Context(), cfg, log, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(err, codeUsage, "invalid flags")
	})

	flags := cmd.Flags()
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log debug diagnostics to stderr")
	flags.Var(&cfg.LogFormat, "log-format", "Diagnostic log format: console | json")
	flags.IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "Files between progress lines in verbose mode")
	return cmd
}

func exactlyOneDirectory(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.Newf(codeUsage, "expected exactly one directory argument, got %d", len(args))
	}
	return nil
}

func scanAndReport(ctx context.Context, cfg *config.Config, log *zap.Logger, stdout io.Writer) error {
	log.Debug("starting scan", zap.String("root", cfg.Root), zap.String("version", version))

	res, err := scanner.Scan(ctx, cfg.Root,
		scanner.WithLogger(log),
		scanner.WithProgress(progress.NewLogSpinnerProgressTracker(log, cfg.ProgressEvery)))
	if err != nil {
		if !scanner.IsInvalidDirectory(err) {
			log.Error("scan failed", zap.String("root", cfg.Root), zap.Error(err))
		}
		return err
	}

	if err := report.Write(stdout, res); err != nil {
		log.Error("writing report", zap.Error(err))
		return err
	}
	return nil
}
