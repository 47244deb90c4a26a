package cmd

import (
	"errors"
	"fmt"

	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/spf13/cobra"
)

var (
	flagReconcileTask uint
	flagReconcileAll  bool
)

var errReconcileTarget = errors.New("set exactly one of --task and --all")

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute task budgets from their budget lines",
	Long:  "Recompute the budget of a task as the sum of the total costs of its budget lines. Manually set budgets of itemized tasks are overwritten.",
	Args:  cobra.NoArgs,
	RunE:  runReconcile,
}

func init() {
	reconcileCmd.Flags().UintVar(&flagReconcileTask, "task", 0, "ID of the task to reconcile")
	reconcileCmd.Flags().BoolVar(&flagReconcileAll, "all", false, "Reconcile all itemized tasks")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	if (flagReconcileTask == 0) == !flagReconcileAll {
		return errReconcileTarget
	}

	err := connect()
	if err != nil {
		return err
	}

	if flagReconcileAll {
		n, err := models.ReconcileAll(models.DB)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d tasks\n", n)
		return nil
	}

	amounts, err := formatter()
	if err != nil {
		return err
	}

	task, err := models.Reconcile(models.DB, flagReconcileTask)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "The budget of task %d (%s) is %s\n", task.ID, task.Name, amounts.Format(task.Budget))
	return nil
}
