package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// unstagedPatch is the name of the saved diff inside the git directory.
const unstagedPatch = "stagefmt-unstaged.patch"

// UnstagedFiles lists paths whose working tree content differs from the
// index, relative to the repository root.
func UnstagedFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := git(ctx, dir, "diff", "--name-only", "-z")
	if err != nil {
		return nil, fmt.Errorf("list unstaged files: %w", err)
	}
	return splitNUL(out), nil
}

// Unstaged holds working tree changes set aside while staged content is
// formatted.
type Unstaged struct {
	dir   string
	Files []string // files whose changes were set aside
	Patch string   // saved diff, kept when Restore fails
}

// HideUnstaged saves the unstaged changes of files to a patch in the git
// directory and resets those files to their staged content, so formatting
// and re-staging only see what was staged. Returns nil when none of files
// has unstaged changes.
func HideUnstaged(ctx context.Context, dir string, files []string) (*Unstaged, error) {
	if len(files) == 0 {
		return nil, nil
	}
	changed, err := UnstagedFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	var partial []string
	for _, f := range files {
		if slices.Contains(changed, f) && !slices.Contains(partial, f) {
			partial = append(partial, f)
		}
	}
	if len(partial) == 0 {
		return nil, nil
	}

	diff, err := git(ctx, dir, append([]string{"diff", "--binary", "--no-color", "--no-ext-diff", "--"}, partial...)...)
	if err != nil {
		return nil, fmt.Errorf("save unstaged changes: %w", err)
	}
	patch, err := gitPath(ctx, dir, unstagedPatch)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(patch, diff, 0644); err != nil {
		return nil, fmt.Errorf("save unstaged changes: %w", err)
	}

	if err := batched(ctx, dir, []string{"checkout", "--"}, partial); err != nil {
		// The working tree may be partly reset; put everything back.
		if _, aerr := git(ctx, dir, "apply", "--whitespace=nowarn", patch); aerr == nil {
			os.Remove(patch)
		}
		return nil, fmt.Errorf("hide unstaged changes: %w", err)
	}
	return &Unstaged{dir: dir, Files: partial, Patch: patch}, nil
}

// Restore applies the saved changes on top of the working tree and removes
// the patch. On failure the patch stays at u.Patch for manual recovery.
func (u *Unstaged) Restore(ctx context.Context) error {
	if _, err := git(ctx, u.dir, "apply", "--whitespace=nowarn", u.Patch); err != nil {
		return fmt.Errorf("restore unstaged changes (saved in %s): %w", u.Patch, err)
	}
	if err := os.Remove(u.Patch); err != nil {
		return fmt.Errorf("remove %s: %w", u.Patch, err)
	}
	return nil
}

// gitPath resolves name inside the git directory of dir.
func gitPath(ctx context.Context, dir, name string) (string, error) {
	out, err := git(ctx, dir, "rev-parse", "--git-path", name)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	p := strings.TrimSpace(string(out))
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return p, nil
}
