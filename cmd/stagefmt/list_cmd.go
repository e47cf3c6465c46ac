package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/stagefmt/internal/log"
	"github.com/raphi011/stagefmt/internal/output"
	"github.com/raphi011/stagefmt/internal/ui/static"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [file...]",
		Short:   "Show which tasks the staged files would run",
		Aliases: []string{"ls"},
		Example: `  stagefmt list                 # Plan for the staged files
  stagefmt list a.json b.yml    # Plan for specific files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			p, err := loadPlan(ctx, args)
			if err != nil {
				return err
			}
			if len(p.jobs) == 0 {
				l.Println("No staged files match any task")
				return nil
			}
			out.Print(static.RenderPlan(p.jobs))
			return nil
		},
	}

	return cmd
}
