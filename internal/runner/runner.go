// Package runner executes planned formatter jobs and re-stages their files.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/stagefmt/internal/cmd"
	"github.com/raphi011/stagefmt/internal/dispatch"
	"github.com/raphi011/stagefmt/internal/git"
	"github.com/raphi011/stagefmt/internal/log"
)

// Status is the outcome of one job.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
	StatusDryRun
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// Result describes a finished job.
type Result struct {
	Job      dispatch.Job
	Status   Status
	Output   []byte // combined stdout and stderr of the command
	Err      error
	Duration time.Duration
}

// Options controls a run.
type Options struct {
	Root        string // repository root; commands run here
	Concurrency int    // <= 1 runs jobs in order, one at a time
	DryRun      bool   // report commands without running them
	Restage     bool   // git add the files of successful jobs
	Stdin       io.Reader

	// OnResult is called once per job as it finishes. Calls never overlap.
	OnResult func(Result)
}

// Summary is the outcome of a run.
type Summary struct {
	Results  []Result // in job order
	Restaged []string
	// Partial lists files with unstaged changes that were set aside while
	// formatting and restored afterwards.
	Partial []string
}

// Failed returns the results of jobs that failed.
func (s Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Run executes jobs. Skipped jobs spawn no process and count as success.
// A failing job does not stop the others. Files are re-staged only if every
// job succeeded. When re-staging, unstaged changes of the jobs' files are set
// aside first and restored afterwards so they never reach the index. The
// returned error joins all job failures.
func Run(ctx context.Context, jobs []dispatch.Job, opts Options) (Summary, error) {
	l := log.FromContext(ctx)
	restage := opts.Restage && !opts.DryRun

	var hidden *git.Unstaged
	if restage {
		var err error
		hidden, err = git.HideUnstaged(ctx, opts.Root, jobFiles(jobs))
		if err != nil {
			return Summary{}, err
		}
		if hidden != nil {
			l.Debug("set aside unstaged changes", "files", len(hidden.Files), "patch", hidden.Patch)
		}
	}

	summary := Summary{Results: execute(ctx, jobs, opts)}
	err := finish(ctx, &summary, restage, opts.Root)

	if hidden != nil {
		summary.Partial = hidden.Files
		if rerr := hidden.Restore(context.WithoutCancel(ctx)); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}
	return summary, err
}

// execute runs jobs and returns their results in job order.
func execute(ctx context.Context, jobs []dispatch.Job, opts Options) []Result {
	results := make([]Result, len(jobs))
	var mu sync.Mutex
	report := func(i int, r Result) {
		mu.Lock()
		defer mu.Unlock()
		results[i] = r
		if opts.OnResult != nil {
			opts.OnResult(r)
		}
	}

	var g errgroup.Group
	g.SetLimit(max(opts.Concurrency, 1))
	for i, job := range jobs {
		g.Go(func() error {
			report(i, runJob(ctx, job, opts))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// finish joins job failures, or re-stages the formatted files when every
// job succeeded.
func finish(ctx context.Context, summary *Summary, restage bool, root string) error {
	var errs []error
	for _, r := range summary.Results {
		if r.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("task %q failed: %w", r.Job.Name, r.Err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if !restage {
		return nil
	}

	files := restageFiles(summary.Results)
	if len(files) == 0 {
		return nil
	}
	log.FromContext(ctx).Debug("restaging", "files", len(files))
	if err := git.Add(ctx, root, files); err != nil {
		return fmt.Errorf("restage formatted files: %w", err)
	}
	summary.Restaged = files
	return nil
}

func runJob(ctx context.Context, job dispatch.Job, opts Options) Result {
	l := log.FromContext(ctx)

	if job.Skipped() {
		l.Debug("skipping task", "task", job.Name)
		return Result{Job: job, Status: StatusSkipped}
	}
	if opts.DryRun {
		return Result{Job: job, Status: StatusDryRun}
	}
	if err := ctx.Err(); err != nil {
		return Result{Job: job, Status: StatusFailed, Err: err}
	}

	// Output is buffered per job so concurrent jobs never interleave.
	var out bytes.Buffer
	start := time.Now()
	err := cmd.ShellContext(ctx, cmd.Shell{
		Dir:    opts.Root,
		Stdin:  opts.Stdin,
		Stdout: &out,
		Stderr: &out,
	}, job.Command)

	r := Result{Job: job, Output: out.Bytes(), Duration: time.Since(start), Status: StatusOK}
	if err != nil {
		r.Status = StatusFailed
		r.Err = err
	}
	return r
}

// jobFiles collects the files of jobs that will run, first occurrence wins.
func jobFiles(jobs []dispatch.Job) []string {
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = Result{Job: job, Status: StatusOK}
		if job.Skipped() {
			results[i].Status = StatusSkipped
		}
	}
	return restageFiles(results)
}

// restageFiles collects the files of jobs that ran, first occurrence wins.
func restageFiles(results []Result) []string {
	seen := make(map[string]bool)
	var files []string
	for _, r := range results {
		if r.Status != StatusOK {
			continue
		}
		for _, f := range r.Job.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}
