package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/stagefmt/internal/config"
	"github.com/raphi011/stagefmt/internal/git"
	"github.com/raphi011/stagefmt/internal/log"
	"github.com/raphi011/stagefmt/internal/output"
)

// globalFlags are shared by all subcommands.
type globalFlags struct {
	verbose    bool
	quiet      bool
	configPath string
}

// newRootCmd builds the command tree. Primary output goes to stdout,
// diagnostics to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}
	runOpts := &runFlags{}

	rootCmd := &cobra.Command{
		Use:   "stagefmt",
		Short: "Format staged files before commit",
		Long: `stagefmt runs formatters on the files staged for commit.

Each task in .stagefmt.toml maps glob patterns to a command. Matching staged
files that exist and are not symbolic links are appended to the command.
Tasks left without files are skipped. Formatted files are re-staged.

Without a subcommand, stagefmt behaves like "stagefmt run".`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		Args:                       cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			ctx = log.WithLogger(ctx, log.New(stderr, flags.verbose, flags.quiet))
			ctx = output.WithPrinter(ctx, output.ColorWriter(stdout, os.Environ()))
			ctx = withConfigPath(ctx, flags.configPath)
			cmd.SetContext(ctx)

			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), nil, runOpts)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show external commands and formatter output")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: <repo>/"+config.FileName+")")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	runOpts.register(rootCmd)

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stagefmt: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = config.WithWorkDir(ctx, workDir)

	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "stagefmt:", err)
		os.Exit(1)
	}
}

type configPathKey struct{}

func withConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey{}, path)
}

func configPathFromContext(ctx context.Context) string {
	p, _ := ctx.Value(configPathKey{}).(string)
	return p
}
