package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rejectReason string

var rejectCmd = &cobra.Command{
	Use:   "reject <job-name> <candidate-name>",
	Short: "Permanently reject a candidate",
	Long:  "Marks a candidate as rejected. Rejected candidates keep their record and history but are excluded from batch re-evaluation unless named explicitly.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs := initRecords()
		if err := recs.Reject(args[0], args[1], rejectReason); err != nil {
			return err
		}
		zap.L().Info("candidate rejected",
			zap.String("job", args[0]),
			zap.String("candidate", args[1]),
			zap.String("reason", rejectReason),
		)
		return nil
	},
}

func init() {
	rejectCmd.Flags().StringVar(&rejectReason, "reason", "", "rejection reason")
	rootCmd.AddCommand(rejectCmd)
}
