package main

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/stagefmt/internal/log"
	"github.com/raphi011/stagefmt/internal/output"
	"github.com/raphi011/stagefmt/internal/runner"
	"github.com/raphi011/stagefmt/internal/ui/styles"
)

// runFlags are shared by "stagefmt" and "stagefmt run".
type runFlags struct {
	dryRun      bool
	noRestage   bool
	concurrency int
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "d", false, "Print commands without executing")
	cmd.Flags().BoolVar(&f.noRestage, "no-restage", false, "Leave formatted files unstaged")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", 0, "Tasks to run at once (default: config value)")
}

func newRunCmd() *cobra.Command {
	opts := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Format staged files",
		Long: `Format staged files with the configured tasks.

Without arguments, the files staged in the index are used. Files given as
arguments are used instead, relative to the current directory.

Symbolic links and files that no longer exist are never passed to a
formatter. A task without remaining files is skipped.`,
		Example: `  stagefmt run                  # Format staged files
  stagefmt run -d               # Show commands without running them
  stagefmt run -j 4             # Run up to 4 tasks at once
  stagefmt run src/app.json     # Format specific files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), args, opts)
		},
	}
	opts.register(cmd)

	return cmd
}

func runFormat(ctx context.Context, args []string, opts *runFlags) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	p, err := loadPlan(ctx, args)
	if err != nil {
		return err
	}
	if len(p.files) == 0 {
		l.Println("No staged files")
		return nil
	}
	if len(p.jobs) == 0 {
		l.Println("No staged files match any task")
		return nil
	}

	concurrency := p.cfg.Concurrency
	if opts.concurrency > 0 {
		concurrency = opts.concurrency
	}

	summary, err := runner.Run(ctx, p.jobs, runner.Options{
		Root:        p.root,
		Concurrency: concurrency,
		DryRun:      opts.dryRun,
		Restage:     p.cfg.Restage && !opts.noRestage && p.inRepo,
		Stdin:       interactiveStdin(),
		OnResult: func(r runner.Result) {
			printResult(out, r, l.IsVerbose())
		},
	})
	if len(summary.Restaged) > 0 {
		l.Debug("restaged files", "count", len(summary.Restaged))
	}
	for _, f := range summary.Partial {
		l.Printf("Kept unstaged changes in %s out of the commit\n", f)
	}
	return err
}

// printResult prints a status line per job. Formatter output is shown for
// failures, and for successes only in verbose mode.
func printResult(out *output.Printer, r runner.Result, verbose bool) {
	switch r.Status {
	case runner.StatusSkipped:
		out.Println(styles.Skipped(r.Job.Name))
	case runner.StatusDryRun:
		out.Println(styles.DryRun(r.Job.Name, r.Job.Command))
	case runner.StatusFailed:
		out.Println(styles.Failed(r.Job.Name, r.Err))
		out.Print(styles.Indent(string(r.Output)))
	default:
		out.Println(styles.OK(r.Job.Name, len(r.Job.Files), r.Duration))
		if verbose {
			out.Print(styles.Indent(string(r.Output)))
		}
	}
}

// interactiveStdin hands the terminal to formatters that prompt, and nothing
// otherwise so a formatter never blocks on a pipe.
func interactiveStdin() io.Reader {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return os.Stdin
	}
	return nil
}
