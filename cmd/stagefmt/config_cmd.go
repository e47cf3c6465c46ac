package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/stagefmt/internal/config"
	"github.com/raphi011/stagefmt/internal/git"
	"github.com/raphi011/stagefmt/internal/log"
	"github.com/raphi011/stagefmt/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		Long: `Manage stagefmt configuration.

Config file: .stagefmt.toml in the repository root.
Override with --config or STAGEFMT_CONFIG.`,
		Example: `  stagefmt config init     # Write the default config
  stagefmt config show     # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  stagefmt config init      # Create .stagefmt.toml
  stagefmt config init -f   # Overwrite existing config
  stagefmt config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if stdout {
				output.FromContext(ctx).Print(config.DefaultContent())
				return nil
			}

			path, err := configPath(ctx)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
			}
			if err := os.WriteFile(path, []byte(config.DefaultContent()), 0644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, err := configPath(ctx)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			out := output.FromContext(ctx)
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				out.Println("# built-in defaults (" + path + " not found)")
			} else {
				out.Println("# " + path)
			}
			return config.Encode(out.Writer(), cfg)
		},
	}
}

// configPath returns the config file location for the current repository.
func configPath(ctx context.Context) (string, error) {
	root, err := git.RepoRoot(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return "", err
	}
	return config.Path(root, configPathFromContext(ctx)), nil
}
