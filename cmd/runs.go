package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/store"
)

var (
	runsJob    string
	runsStatus string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List review runs from the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ledger, err := store.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer ledger.Close()
		if err := ledger.Migrate(ctx); err != nil {
			return err
		}

		runs, err := ledger.ListRuns(ctx, store.RunFilter{
			JobName: runsJob,
			Status:  model.RunStatus(runsStatus),
			Limit:   runsLimit,
		})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, run := range runs {
			finished := "-"
			if run.FinishedAt != nil {
				finished = run.FinishedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%s\t%s\t%s\t%s\teval=%d skip=%d fail=%d\t%s -> %s\n",
				run.ID, run.JobName, run.Trigger, run.Status,
				run.Evaluated, run.Skipped, run.Failed,
				run.StartedAt.Format("2006-01-02 15:04:05"), finished,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsJob, "job", "", "filter by job name")
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (running, complete, failed)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
