// Package dispatch turns configured tasks into a table of glob patterns and
// command-building handlers, and plans which commands a set of staged files
// produces.
package dispatch

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/raphi011/stagefmt/internal/config"
	"github.com/raphi011/stagefmt/internal/staged"
)

// Handler turns the files matched by a pattern into a shell command.
// An empty result means there is nothing to run.
type Handler func(paths []string) string

// NewHandler returns a Handler that drops symbolic links and vanished files
// with f, then appends the rest to prefix joined by sep. A nil f appends
// paths as given.
func NewHandler(f *staged.Filter, prefix, sep string) Handler {
	return func(paths []string) string {
		if f != nil {
			paths = f.FilterSymlinks(paths)
		}
		return staged.BuildCommand(prefix, paths, sep)
	}
}

// Entry is one row of the table. Plan hands Handler the matched files after
// filtering them with the table's filter.
type Entry struct {
	Name     string
	Patterns []string
	Exclude  []string
	Absolute bool // hand absolute paths to the handler
	Handler  Handler
}

// Matches reports whether the repo-relative, slash-separated file is
// selected by e.
func (e *Entry) Matches(file string) bool {
	return matchAny(e.Patterns, file) && !matchAny(e.Exclude, file)
}

// matchAny reports whether any pattern matches file. Patterns without a
// slash are matched against the base name only.
func matchAny(patterns []string, file string) bool {
	for _, p := range patterns {
		name := file
		if !strings.Contains(p, "/") {
			name = path.Base(file)
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Table holds the entries in evaluation order.
// A file may be picked up by more than one entry.
type Table struct {
	root    string
	filter  *staged.Filter
	entries []Entry
}

// New returns an empty table rooted at the repository root.
func New(root string) *Table {
	return &Table{root: root, filter: staged.NewFilter(root)}
}

// FromConfig builds the table for cfg. Patterns are validated again here
// since cfg may not come from Load.
func FromConfig(cfg config.Config, root string) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := New(root)
	for _, task := range cfg.Tasks {
		t.Add(Entry{
			Name:     task.Name,
			Patterns: task.Patterns,
			Exclude:  task.Exclude,
			Absolute: task.Absolute,
			Handler:  NewHandler(nil, task.Command, task.Separator),
		})
	}
	return t, nil
}

// Add appends an entry.
func (t *Table) Add(e Entry) {
	t.entries = append(t.entries, e)
}

// Entries returns the entries in evaluation order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Root returns the repository root the table resolves paths against.
func (t *Table) Root() string {
	return t.root
}

// Job is the planned work for one entry.
type Job struct {
	Name    string
	Files   []string // repo-relative paths that survived filtering, for re-staging
	Command string   // empty means skip
}

// Skipped reports whether the job has nothing to run.
func (j Job) Skipped() bool {
	return j.Command == ""
}

// Plan matches files against every entry. Entries matching nothing are left
// out; entries whose matches were all filtered away yield a skipped job.
func (t *Table) Plan(files []string) []Job {
	var jobs []Job
	for i := range t.entries {
		e := &t.entries[i]

		var matched []string
		for _, f := range files {
			if e.Matches(filepath.ToSlash(f)) {
				matched = append(matched, f)
			}
		}
		if len(matched) == 0 {
			continue
		}

		// One metadata query per file, so Files and Command always agree.
		kept := t.filter.FilterSymlinks(matched)
		args := kept
		if e.Absolute {
			args = t.absolute(kept)
		}
		jobs = append(jobs, Job{
			Name:    e.Name,
			Files:   kept,
			Command: e.Handler(args),
		})
	}
	return jobs
}

func (t *Table) absolute(files []string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		if filepath.IsAbs(f) {
			out[i] = f
		} else {
			out[i] = filepath.Join(t.root, filepath.FromSlash(f))
		}
	}
	return out
}

// String renders the table for debugging.
func (t *Table) String() string {
	var b strings.Builder
	for _, e := range t.entries {
		fmt.Fprintf(&b, "%s: %s", e.Name, strings.Join(e.Patterns, " | "))
		if len(e.Exclude) > 0 {
			fmt.Fprintf(&b, " !%s", strings.Join(e.Exclude, " !"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
