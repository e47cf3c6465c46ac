// Package config handles loading and validation of stagefmt configuration.
//
// Configuration is read from .stagefmt.toml in the repository root. The
// location can be overridden with --config or the STAGEFMT_CONFIG env var.
// A missing file is not an error: the built-in task table is used.
//
// # Configuration Sources (highest priority first)
//
//   - --config flag
//   - STAGEFMT_CONFIG env var
//   - <repo root>/.stagefmt.toml
//   - Default()
//
// # Tasks
//
// Tasks are [[tasks]] tables, evaluated in file order:
//
//	[[tasks]]
//	name = "prettier"
//	patterns = ["**/*.{json,js,yml,yaml}"]
//	exclude = ["**/pnpm-lock.{json,js,yml,yaml}"]
//	command = "prettier --write --ignore-unknown "
//	separator = " "
//
// Declaring any task replaces the built-in table. Leaving tasks out keeps it,
// so a file containing only "concurrency = 4" still formats with the defaults.
//
// # Validation
//
// Task names must be unique and non-empty, every task needs a command and at
// least one pattern, and every pattern must be a valid doublestar glob.
// Unknown keys are rejected to catch typos like "pattern" for "patterns".
package config
