package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reEvaluateOnly []string

var reEvaluateCmd = &cobra.Command{
	Use:   "re-evaluate <job-name>",
	Short: "Re-score existing candidates with current insights and filters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Pipeline.ReEvaluate(ctx, args[0], reEvaluateOnly)
		if err != nil {
			return eris.Wrap(err, "re-evaluate")
		}

		zap.L().Info("re-evaluation complete",
			zap.String("job", args[0]),
			zap.String("run_id", run.ID),
			zap.Int("evaluated", run.Evaluated),
			zap.Int("failed", run.Failed),
		)
		return nil
	},
}

func init() {
	reEvaluateCmd.Flags().StringSliceVar(&reEvaluateOnly, "candidate", nil,
		"re-evaluate only the named candidates (repeatable; includes rejected ones)")
	rootCmd.AddCommand(reEvaluateCmd)
}
