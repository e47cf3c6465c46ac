package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks the task table and global settings.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency %d: must be >= 0", c.Concurrency)
	}

	seen := make(map[string]bool, len(c.Tasks))
	for i, t := range c.Tasks {
		if t.Name == "" {
			return fmt.Errorf("tasks[%d]: name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("tasks[%d]: duplicate task name %q", i, t.Name)
		}
		seen[t.Name] = true

		if t.Command == "" {
			return fmt.Errorf("task %q: command is required", t.Name)
		}
		if len(t.Patterns) == 0 {
			return fmt.Errorf("task %q: at least one pattern is required", t.Name)
		}
		if err := validatePatterns(t.Patterns, "patterns", t.Name); err != nil {
			return err
		}
		if err := validatePatterns(t.Exclude, "exclude", t.Name); err != nil {
			return err
		}
	}
	return nil
}

// validatePatterns checks that all patterns are valid doublestar globs.
func validatePatterns(patterns []string, field, task string) error {
	for i, pat := range patterns {
		if pat == "" {
			return fmt.Errorf("task %q: %s[%d] is empty", task, field, i)
		}
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("task %q: invalid %s[%d] %q", task, field, i, pat)
		}
	}
	return nil
}
