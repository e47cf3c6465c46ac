package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raphi011/stagefmt/internal/config"
	"github.com/raphi011/stagefmt/internal/dispatch"
	"github.com/raphi011/stagefmt/internal/git"
	"github.com/raphi011/stagefmt/internal/log"
)

// plan is everything a run or list needs, resolved once per invocation.
type plan struct {
	root   string
	inRepo bool // false when explicit files were given outside a git repo
	cfg    config.Config
	table  *dispatch.Table
	files  []string // repo-relative, slash-separated
	jobs   []dispatch.Job
}

// loadPlan resolves the repo root, loads config, collects files (explicit
// args or the staged set) and matches them against the task table.
func loadPlan(ctx context.Context, args []string) (*plan, error) {
	l := log.FromContext(ctx)
	workDir := config.WorkDirFromContext(ctx)

	p := &plan{root: workDir, inRepo: true}
	root, err := git.RepoRoot(ctx, workDir)
	switch {
	case err == nil:
		p.root = root
	case len(args) > 0:
		p.inRepo = false
	default:
		return nil, err
	}

	cfgPath := config.Path(p.root, configPathFromContext(ctx))
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	l.Debug("loaded config", "path", cfgPath, "tasks", len(cfg.Tasks))

	p.table, err = dispatch.FromConfig(cfg, p.root)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		p.files, err = relativeFiles(p.root, workDir, args)
		if err != nil {
			return nil, err
		}
	} else {
		p.files, err = git.StagedFiles(ctx, p.root)
		if err != nil {
			return nil, err
		}
	}
	l.Debug("collected files", "count", len(p.files), "explicit", len(args) > 0)

	p.jobs = p.table.Plan(p.files)
	return p, nil
}

// relativeFiles turns paths given on the command line (relative to workDir
// or absolute) into root-relative, slash-separated paths.
func relativeFiles(root, workDir string, args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, a := range args {
		abs := a
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, a)
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", a, err)
		}
		files = append(files, filepath.ToSlash(rel))
	}
	return files, nil
}
