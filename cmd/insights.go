package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var insightsRegenerate bool

var insightsCmd = &cobra.Command{
	Use:   "insights <job-name>",
	Short: "Show or regenerate a job's learned screening insights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		jobName := args[0]

		if insightsRegenerate {
			env, err := initEnv(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			insights, err := env.Feedback.Regenerate(ctx, jobName)
			if err != nil {
				return eris.Wrap(err, "regenerate insights")
			}
			zap.L().Info("insights regenerated",
				zap.String("job", jobName),
				zap.Int("feedback_count", insights.FeedbackCount),
			)
			fmt.Println(insights.Insights)
			return nil
		}

		recs := initRecords()
		insights, err := recs.LoadInsights(jobName)
		if err != nil {
			return err
		}
		if insights == nil {
			fmt.Println("no insights yet; collect feedback or run with --regenerate")
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(insights)
	},
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsRegenerate, "regenerate", false, "regenerate insights from all recorded feedback")
	rootCmd.AddCommand(insightsCmd)
}
