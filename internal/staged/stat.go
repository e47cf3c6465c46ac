package staged

import (
	"io/fs"
	"os"
)

// Lstater reports metadata for a path without following symbolic links.
type Lstater interface {
	Lstat(name string) (fs.FileInfo, error)
}

// OS is the Lstater backed by the operating system.
var OS Lstater = osFS{}

type osFS struct{}

func (osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// Stat is the outcome of one metadata query. Exactly one of Info and Err is set.
type Stat struct {
	Info fs.FileInfo
	Err  error
}

// Kind classifies a queried path.
type Kind int

const (
	KindRegular     Kind = iota // anything that is not a link, including directories
	KindSymlink                 // the entry itself is a symbolic link
	KindUnavailable             // the metadata query failed
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindSymlink:
		return "symlink"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Kind classifies the result.
func (s Stat) Kind() Kind {
	switch {
	case s.Err != nil || s.Info == nil:
		return KindUnavailable
	case s.Info.Mode()&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindRegular
	}
}

// Query runs a link-aware metadata query and wraps the outcome.
func Query(fsys Lstater, name string) Stat {
	info, err := fsys.Lstat(name)
	if err != nil {
		return Stat{Err: err}
	}
	return Stat{Info: info}
}
