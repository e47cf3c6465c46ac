package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with an initial commit containing README.md.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if err := CheckGit(); err != nil {
		t.Skip("git not available")
	}
	repoPath := filepath.Join(resolveTempDir(t), "test-repo")

	ctx := context.Background()
	if _, err := git(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if _, err := git(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}

	writeFile(t, repoPath, "README.md", "# test\n")
	if _, err := git(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if _, err := git(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	return repoPath
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func stage(t *testing.T, repo string, args ...string) {
	t.Helper()
	if _, err := git(context.Background(), repo, args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

func TestStagedFiles(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	writeFile(t, repo, "b.json", "{}\n")
	writeFile(t, repo, "dir/a file.yml", "a: 1\n")
	writeFile(t, repo, "unstaged.js", "x\n")
	writeFile(t, repo, "README.md", "# changed\n")
	stage(t, repo, "add", "b.json", "dir/a file.yml", "README.md")

	got, err := StagedFiles(ctx, repo)
	if err != nil {
		t.Fatalf("StagedFiles() = %v", err)
	}
	want := []string{"README.md", "b.json", "dir/a file.yml"}
	if !slices.Equal(got, want) {
		t.Errorf("StagedFiles() = %q, want %q", got, want)
	}
}

func TestStagedFiles_SkipsDeletions(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	stage(t, repo, "rm", "-q", "README.md")
	writeFile(t, repo, "new.json", "{}\n")
	stage(t, repo, "add", "new.json")

	got, err := StagedFiles(context.Background(), repo)
	if err != nil {
		t.Fatalf("StagedFiles() = %v", err)
	}
	if !slices.Equal(got, []string{"new.json"}) {
		t.Errorf("StagedFiles() = %q, want [new.json]", got)
	}
}

func TestStagedFiles_Empty(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	got, err := StagedFiles(context.Background(), repo)
	if err != nil {
		t.Fatalf("StagedFiles() = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("StagedFiles() = %q, want empty", got)
	}
}

func TestStagedFiles_NotARepo(t *testing.T) {
	t.Parallel()
	if err := CheckGit(); err != nil {
		t.Skip("git not available")
	}
	_, err := StagedFiles(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("StagedFiles(non-repo) = nil, want error")
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	writeFile(t, repo, "a.json", "{}\n")
	stage(t, repo, "add", "a.json")
	// Simulate a formatter rewriting the staged file.
	writeFile(t, repo, "a.json", "{ }\n")

	if err := Add(ctx, repo, []string{"a.json"}); err != nil {
		t.Fatalf("Add() = %v", err)
	}

	out, err := exec.Command("git", "-C", repo, "diff", "--name-only").Output()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != "" {
		t.Errorf("unstaged changes after Add: %q", out)
	}
}

func TestAdd_Empty(t *testing.T) {
	t.Parallel()
	// No git invocation happens for an empty list, so any dir works.
	if err := Add(context.Background(), "/nonexistent", nil); err != nil {
		t.Errorf("Add(nil) = %v, want nil", err)
	}
}

func TestRepoRoot(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	sub := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := RepoRoot(context.Background(), sub)
	if err != nil {
		t.Fatalf("RepoRoot() = %v", err)
	}
	if got != repo {
		t.Errorf("RepoRoot() = %q, want %q", got, repo)
	}
}

func TestHooksDir(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	got, err := HooksDir(context.Background(), repo)
	if err != nil {
		t.Fatalf("HooksDir() = %v", err)
	}
	want := filepath.Join(repo, ".git", "hooks")
	if got != want {
		t.Errorf("HooksDir() = %q, want %q", got, want)
	}
}

func TestSplitNUL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a\x00", []string{"a"}},
		{"a\x00b c\x00", []string{"a", "b c"}},
		{"a\x00\x00b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := splitNUL([]byte(tt.in)); !slices.Equal(got, tt.want) {
			t.Errorf("splitNUL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnstagedFiles(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	writeFile(t, repo, "a.json", "{}\n")
	stage(t, repo, "add", "a.json")
	writeFile(t, repo, "a.json", "{}\nwip\n")
	writeFile(t, repo, "README.md", "# edited\n")
	writeFile(t, repo, "untracked.json", "{}\n")

	got, err := UnstagedFiles(context.Background(), repo)
	if err != nil {
		t.Fatalf("UnstagedFiles() = %v", err)
	}
	if want := []string{"README.md", "a.json"}; !slices.Equal(got, want) {
		t.Errorf("UnstagedFiles() = %q, want %q", got, want)
	}
}

func TestHideUnstaged(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	writeFile(t, repo, "a.json", "staged\n")
	writeFile(t, repo, "b.json", "clean\n")
	stage(t, repo, "add", "a.json", "b.json")
	writeFile(t, repo, "a.json", "staged\nwip\n")
	writeFile(t, repo, "README.md", "# not selected\n")

	u, err := HideUnstaged(ctx, repo, []string{"a.json", "b.json"})
	if err != nil {
		t.Fatalf("HideUnstaged() = %v", err)
	}
	if u == nil {
		t.Fatal("HideUnstaged() = nil, want changes set aside for a.json")
	}
	if !slices.Equal(u.Files, []string{"a.json"}) {
		t.Errorf("Files = %q, want [a.json]", u.Files)
	}
	if got := readFile(t, repo, "a.json"); got != "staged\n" {
		t.Errorf("a.json while hidden = %q, want staged content", got)
	}
	if got := readFile(t, repo, "README.md"); got != "# not selected\n" {
		t.Errorf("README.md = %q, unselected file must be untouched", got)
	}

	if err := u.Restore(ctx); err != nil {
		t.Fatalf("Restore() = %v", err)
	}
	if got := readFile(t, repo, "a.json"); got != "staged\nwip\n" {
		t.Errorf("a.json after restore = %q", got)
	}
	if _, err := os.Stat(u.Patch); !os.IsNotExist(err) {
		t.Errorf("patch still present after restore: %v", err)
	}
}

func TestHideUnstaged_NothingToHide(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	writeFile(t, repo, "a.json", "{}\n")
	stage(t, repo, "add", "a.json")

	u, err := HideUnstaged(context.Background(), repo, []string{"a.json"})
	if err != nil {
		t.Fatalf("HideUnstaged() = %v", err)
	}
	if u != nil {
		t.Errorf("HideUnstaged() = %+v, want nil", u)
	}
}

func TestRestore_ConflictKeepsPatch(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	writeFile(t, repo, "a.json", "one\n")
	stage(t, repo, "add", "a.json")
	writeFile(t, repo, "a.json", "one\ntwo\n")

	u, err := HideUnstaged(ctx, repo, []string{"a.json"})
	if err != nil || u == nil {
		t.Fatalf("HideUnstaged() = %v, %v", u, err)
	}
	// A formatter rewriting the line the hidden hunk depends on.
	writeFile(t, repo, "a.json", "ONE\n")

	if err := u.Restore(ctx); err == nil {
		t.Fatal("Restore() = nil, want conflict error")
	}
	if _, err := os.Stat(u.Patch); err != nil {
		t.Errorf("patch should be kept for recovery: %v", err)
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
