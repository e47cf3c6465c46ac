// Package git provides the few git operations stagefmt needs, via the git CLI.
//
// All operations shell out to git rather than using a Go git library, so
// index handling, core.hooksPath and worktree layouts behave exactly as the
// user's git does.
//
//   - [StagedFiles]: paths added, copied, modified or renamed in the index
//   - [Add]: re-stage files after formatting, in batches
//   - [RepoRoot], [HooksDir]: locate the work tree and its hooks directory
//   - [CheckGit]: fail early when git is missing
package git
