package config

// DefaultContent is the commented config written by "stagefmt config init".
// Parsing it yields Default().
func DefaultContent() string {
	return `# stagefmt configuration
# Location: .stagefmt.toml in the repository root (override with --config or STAGEFMT_CONFIG)

# Number of tasks to run at the same time (1 = one after another)
concurrency = 1

# Re-add formatted files to the index after all tasks succeeded
restage = true

# Each task matches staged files against "patterns" (doublestar globs),
# drops files matching "exclude", skips symbolic links and vanished files,
# and runs "command" with the remaining paths appended, joined by "separator".
# A pattern without "/" matches the file's base name.
# Tasks without remaining files are skipped.

[[tasks]]
name = "framework-dependencies"
description = "Run spotless in framework-dependencies"
patterns = ["framework-dependencies/**/*.{java,kt}", "framework-dependencies/**/pom.xml"]
command = "cd framework-dependencies && ./mvnw spotless:apply -DspotlessFiles="
separator = ","
absolute = true

[[tasks]]
name = "framework-infra"
description = "Run spotless in framework-infra"
patterns = ["framework-infra/**/*.{java,kt}", "framework-infra/**/pom.xml"]
command = "cd framework-infra && ./mvnw spotless:apply -DspotlessFiles="
separator = ","
absolute = true

[[tasks]]
name = "prettier"
description = "Format JSON, JavaScript and YAML"
patterns = ["**/*.{json,js,yml,yaml}"]
exclude = ["**/pnpm-lock.{json,js,yml,yaml}"]
command = "prettier --write --ignore-unknown "
separator = " "
`
}
