package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/stagefmt/internal/config"
	"github.com/raphi011/stagefmt/internal/git"
	"github.com/raphi011/stagefmt/internal/log"
)

// hookMarker identifies a pre-commit hook written by stagefmt.
const hookMarker = "# installed by stagefmt"

const hookScript = `#!/bin/sh
` + hookMarker + `
exec stagefmt run
`

func newInstallCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the git pre-commit hook",
		Long: `Install a pre-commit hook that runs "stagefmt run".

An existing hook not written by stagefmt is left alone unless -f is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := git.HooksDir(ctx, config.WorkDirFromContext(ctx))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create hooks dir: %w", err)
			}

			path := filepath.Join(dir, "pre-commit")
			existing, err := os.ReadFile(path)
			switch {
			case err == nil && !force && !bytes.Contains(existing, []byte(hookMarker)):
				return fmt.Errorf("pre-commit hook already exists: %s (use -f to overwrite)", path)
			case err != nil && !errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("read existing hook: %w", err)
			}

			if err := os.WriteFile(path, []byte(hookScript), 0755); err != nil {
				return fmt.Errorf("write hook: %w", err)
			}
			// WriteFile keeps the mode of an existing file.
			if err := os.Chmod(path, 0755); err != nil {
				return fmt.Errorf("make hook executable: %w", err)
			}
			log.FromContext(ctx).Printf("Installed pre-commit hook: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing hook")

	return cmd
}
