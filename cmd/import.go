package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/amasdatadriven/backend/pkg/importer"
	"github.com/amasdatadriven/backend/pkg/importer/parser/budgetlines"
	"github.com/amasdatadriven/backend/pkg/importer/parser/tasks"
	"github.com/amasdatadriven/backend/pkg/importer/parser/transactions"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/spf13/cobra"
)

var (
	flagDelimiter string
	flagLinesTask uint
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV files",
}

var importLinesCmd = &cobra.Command{
	Use:   "lines FILE",
	Short: "Import the budget lines of a task and reconcile its budget",
	Long:  "Import budget lines with the columns Item, Detail, Unit, Quantity, Unit Cost, Total Cost and Notes. Any invalid row rejects the whole file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportLines,
}

var importTransactionsCmd = &cobra.Command{
	Use:   "transactions FILE",
	Short: "Import transactions",
	Long:  "Import transactions. Rows with an unknown task, a missing date, a non-positive amount or that have already been imported are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportTransactions,
}

var importTasksCmd = &cobra.Command{
	Use:   "tasks FILE",
	Short: "Import task definitions",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportTasks,
}

func init() {
	importCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "Delimiter of the CSV file, one of ',', ';', '|' or 'tab'. Detected if not set.")

	importLinesCmd.Flags().UintVar(&flagLinesTask, "task", 0, "ID of the task")
	_ = importLinesCmd.MarkFlagRequired("task")

	importCmd.AddCommand(importLinesCmd, importTransactionsCmd, importTasksCmd)
	rootCmd.AddCommand(importCmd)
}

// openCSV connects to the database and opens the file.
func openCSV(path string) (*os.File, rune, error) {
	delimiter, err := importer.ParseDelimiter(flagDelimiter)
	if err != nil {
		return nil, 0, err
	}

	err = connect()
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	return f, delimiter, nil
}

func printReport(w io.Writer, what string, report importer.Report) {
	fmt.Fprintf(w, "Imported %d %s\n", report.Imported, what)

	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d rows:\n", len(report.Skipped))
	}
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "  line %d: %s\n", s.Line, s.Reason)
	}
}

func runImportLines(cmd *cobra.Command, args []string) error {
	f, delimiter, err := openCSV(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	amounts, err := formatter()
	if err != nil {
		return err
	}

	creates, err := budgetlines.Parse(f, delimiter)
	if err != nil {
		return err
	}

	lines, err := models.InsertLines(models.DB, flagLinesTask, creates)
	if err != nil {
		return err
	}

	summary, err := models.GetSpendSummary(models.DB, flagLinesTask)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d budget lines, the budget of task %d is now %s\n", len(lines), flagLinesTask, amounts.Format(summary.Budget))
	return nil
}

func runImportTransactions(cmd *cobra.Command, args []string) error {
	f, delimiter, err := openCSV(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := transactions.Parse(f, delimiter)
	if err != nil {
		return err
	}

	report, err := importer.CreateTransactions(models.DB, rows)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), "transactions", report)
	return nil
}

func runImportTasks(cmd *cobra.Command, args []string) error {
	f, delimiter, err := openCSV(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := tasks.Parse(f, delimiter)
	if err != nil {
		return err
	}

	report, created, err := importer.CreateTasks(models.DB, rows)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), "tasks", report)
	for _, task := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d: %s\n", task.ID, task.Name)
	}

	return nil
}
