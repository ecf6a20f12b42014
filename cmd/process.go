package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var processCmd = &cobra.Command{
	Use:   "process <job-name>",
	Short: "Process intake files and evaluate new candidates for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Pipeline.Process(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "process")
		}

		zap.L().Info("processing complete",
			zap.String("job", args[0]),
			zap.String("run_id", run.ID),
			zap.Int("evaluated", run.Evaluated),
			zap.Int("skipped", run.Skipped),
			zap.Int("failed", run.Failed),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
