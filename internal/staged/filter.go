package staged

import (
	"path/filepath"
	"strings"
)

// Filter drops symbolic links and unreadable entries from path lists.
// The zero value queries the OS relative to the working directory.
type Filter struct {
	// Root resolves relative paths for the metadata query. The returned
	// paths are always the caller's original strings.
	Root string
	// FS answers the metadata queries. Nil means OS.
	FS Lstater
}

// NewFilter returns a Filter resolving relative paths against root.
func NewFilter(root string) *Filter {
	return &Filter{Root: root, FS: OS}
}

// Classify queries p and reports what kind of entry it is.
func (f *Filter) Classify(p string) Kind {
	return Query(f.fs(), f.resolve(p)).Kind()
}

// FilterSymlinks returns the paths that exist and are not symbolic links,
// in input order. Duplicates are kept.
func (f *Filter) FilterSymlinks(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if f.Classify(p) == KindRegular {
			kept = append(kept, p)
		}
	}
	return kept
}

func (f *Filter) fs() Lstater {
	if f.FS == nil {
		return OS
	}
	return f.FS
}

func (f *Filter) resolve(p string) string {
	if f.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.Root, filepath.FromSlash(p))
}

// FilterSymlinks filters paths relative to the working directory.
func FilterSymlinks(paths []string) []string {
	return (&Filter{}).FilterSymlinks(paths)
}

// BuildCommand appends paths joined by sep to prefix.
// Returns "" when paths is empty, meaning nothing should run.
func BuildCommand(prefix string, paths []string, sep string) string {
	if len(paths) == 0 {
		return ""
	}
	return prefix + strings.Join(paths, sep)
}
