package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the per-repo config file, looked up in the repository root.
const FileName = ".stagefmt.toml"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "STAGEFMT_CONFIG"

// DefaultSeparator joins paths when a task does not set one.
const DefaultSeparator = " "

// Task maps glob patterns to a formatter command.
// The command is Command followed by the matched paths joined with Separator.
type Task struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description,omitempty"`
	Patterns    []string `toml:"patterns"`          // doublestar globs; no "/" means match the base name
	Exclude     []string `toml:"exclude,omitempty"` // same syntax, applied after Patterns
	Command     string   `toml:"command"`           // prefix, paths are appended verbatim
	Separator   string   `toml:"separator"`
	Absolute    bool     `toml:"absolute"` // pass absolute paths instead of repo-relative ones
}

// Config holds the stagefmt configuration
type Config struct {
	Concurrency int    `toml:"concurrency"` // 0 or 1 runs tasks one at a time
	Restage     bool   `toml:"restage"`     // git add formatted files afterwards
	Tasks       []Task `toml:"tasks"`
}

// Default returns the built-in task table.
func Default() Config {
	return Config{
		Concurrency: 1,
		Restage:     true,
		Tasks: []Task{
			mavenTask("framework-dependencies"),
			mavenTask("framework-infra"),
			{
				Name:        "prettier",
				Description: "Format JSON, JavaScript and YAML",
				Patterns:    []string{"**/*.{json,js,yml,yaml}"},
				Exclude:     []string{"**/pnpm-lock.{json,js,yml,yaml}"},
				Command:     "prettier --write --ignore-unknown ",
				Separator:   " ",
			},
		},
	}
}

// mavenTask formats Java/Kotlin sources and the pom of one maven subproject
// with the spotless plugin.
func mavenTask(dir string) Task {
	return Task{
		Name:        dir,
		Description: "Run spotless in " + dir,
		Patterns:    []string{dir + "/**/*.{java,kt}", dir + "/**/pom.xml"},
		Command:     "cd " + dir + " && ./mvnw spotless:apply -DspotlessFiles=",
		Separator:   ",",
		Absolute:    true,
	}
}

// Path returns the config file to load.
// Precedence: explicit override, STAGEFMT_CONFIG, <root>/.stagefmt.toml.
func Path(root, override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return filepath.Join(root, FileName)
}

// rawConfig distinguishes unset keys from zero values.
type rawConfig struct {
	Concurrency *int   `toml:"concurrency"`
	Restage     *bool  `toml:"restage"`
	Tasks       []Task `toml:"tasks"`
}

// Load reads the config file at path.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config content.
// Keys left out keep their defaults. A file without any [[tasks]] uses the
// built-in task table; a file with tasks replaces it entirely.
func Parse(content string) (Config, error) {
	var raw rawConfig
	md, err := toml.Decode(content, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	cfg := Default()
	if raw.Concurrency != nil {
		cfg.Concurrency = *raw.Concurrency
	}
	if raw.Restage != nil {
		cfg.Restage = *raw.Restage
	}
	if md.IsDefined("tasks") {
		cfg.Tasks = raw.Tasks
	}

	for i := range cfg.Tasks {
		if cfg.Tasks[i].Separator == "" {
			cfg.Tasks[i].Separator = DefaultSeparator
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
