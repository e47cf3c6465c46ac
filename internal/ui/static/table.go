// Package static provides non-interactive terminal output components.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/stagefmt/internal/dispatch"
	"github.com/raphi011/stagefmt/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// PlanHeaders are the columns of the plan table.
var PlanHeaders = []string{"TASK", "FILES", "COMMAND"}

// PlanRow formats one planned job.
func PlanRow(job dispatch.Job) []string {
	command := job.Command
	if job.Skipped() {
		command = styles.MutedStyle.Render("(skip)")
	}
	return []string{job.Name, strconv.Itoa(len(job.Files)), command}
}

// RenderPlan renders jobs as a table, or "" when there are none.
func RenderPlan(jobs []dispatch.Job) string {
	rows := make([][]string, len(jobs))
	for i, job := range jobs {
		rows[i] = PlanRow(job)
	}
	return RenderTable(PlanHeaders, rows)
}
