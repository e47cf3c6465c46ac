package git

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/raphi011/stagefmt/internal/cmd"
)

// addBatchSize bounds the number of paths per "git add" so long file lists
// stay below the OS argument limit.
const addBatchSize = 500

// git runs git in dir and returns its stdout.
func git(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, dir, "git", args...)
}

// StagedFiles lists staged paths relative to the repository root, in the
// order git reports them. Deleted files are left out since there is nothing
// to format.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := git(ctx, dir, "diff", "--cached", "--name-only", "-z", "--diff-filter=ACMR")
	if err != nil {
		return nil, fmt.Errorf("list staged files: %w", err)
	}
	return splitNUL(out), nil
}

// splitNUL splits NUL-terminated output, dropping empty entries.
func splitNUL(out []byte) []string {
	var files []string
	for _, f := range bytes.Split(out, []byte{0}) {
		if len(f) > 0 {
			files = append(files, string(f))
		}
	}
	return files
}

// Add stages files, relative to dir. Does nothing for an empty list.
func Add(ctx context.Context, dir string, files []string) error {
	if err := batched(ctx, dir, []string{"add", "--"}, files); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

// batched runs git with args followed by files, at most addBatchSize files
// per invocation.
func batched(ctx context.Context, dir string, args, files []string) error {
	for start := 0; start < len(files); start += addBatchSize {
		end := min(start+addBatchSize, len(files))
		if err := cmd.RunContext(ctx, dir, "git", append(slices.Clip(args), files[start:end]...)...); err != nil {
			return err
		}
	}
	return nil
}
