// Package staged decides which staged paths are safe to hand to a formatter
// and composes the formatter's command line.
//
// # Symlink Filtering
//
// Every candidate path is checked with a link-aware status query
// ([os.Lstat], never [os.Stat]). Following the link would report the target's
// type and let links through. A path is dropped when:
//
//   - the query fails (missing file, permission denied, removed since git
//     listed it)
//   - the entry itself is a symbolic link, dangling or not
//
// Failures are not errors. They are folded into the result so the caller
// sees fewer paths, never an error.
//
// # Command Composition
//
// [BuildCommand] joins the surviving paths onto a fixed prefix. An empty path
// list yields the empty string, which callers treat as "skip". This keeps
// tools like prettier from being invoked without file arguments and falling
// back to formatting the whole project.
//
// Paths are not shell-quoted: they come from git, not from user input.
package staged
