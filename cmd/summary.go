package cmd

import (
	"fmt"
	"strconv"

	"github.com/amasdatadriven/backend/internal/cli"
	"github.com/amasdatadriven/backend/internal/money"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagSummaryTask uint

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compare budgets with spending",
	Long:  "Print budget, spent and remaining per phase. With --task, print them for a single task.",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().UintVar(&flagSummaryTask, "task", 0, "ID of the task")
	rootCmd.AddCommand(summaryCmd)
}

// remaining formats the remaining budget, highlighting overspending.
func remaining(f money.Formatter, d decimal.Decimal) string {
	if d.IsNegative() {
		return cli.Alert(f.Format(d))
	}
	return f.Format(d)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}

	err = connect()
	if err != nil {
		return err
	}

	if flagSummaryTask != 0 {
		return taskSummary(cmd, f)
	}

	rows, err := models.PhaseSummary(models.DB)
	if err != nil {
		return err
	}

	table := cli.Table{
		Title:   fmt.Sprintf("Phases (%s)", f.Currency()),
		Headers: []string{"Phase", "Tasks", "Start", "End", "Budget", "Spent", "Remaining"},
	}

	for _, row := range rows {
		if row.Total {
			table.Rows = append(table.Rows, cli.Separator)
		}

		table.Rows = append(table.Rows, []string{
			row.Phase,
			strconv.FormatInt(row.Tasks, 10),
			row.StartDate.String(),
			row.EndDate.String(),
			f.Format(row.Budget),
			f.Format(row.Spent),
			remaining(f, row.Remaining),
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), table.Render())
	return nil
}

func taskSummary(cmd *cobra.Command, f money.Formatter) error {
	var task models.Task
	err := models.DB.First(&task, flagSummaryTask).Error
	if err != nil {
		return err
	}

	summary, err := models.GetSpendSummary(models.DB, task.ID)
	if err != nil {
		return err
	}

	table := cli.Table{
		Headers: []string{"Budget", "Spent", "Remaining"},
		Rows:    [][]string{{f.Format(summary.Budget), f.Format(summary.Spent), remaining(f, summary.Remaining)}},
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTitle(fmt.Sprintf("%d: %s", task.ID, task.Name)))
	fmt.Fprint(cmd.OutOrStdout(), table.Render())
	return nil
}
