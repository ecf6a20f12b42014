package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/report"
)

var reportsCmd = &cobra.Command{
	Use:   "reports <job-name>",
	Short: "Regenerate ranking reports from stored evaluations",
	Long:  "Rebuilds the CSV, HTML, and XLSX ranking reports from evaluations already on disk, without calling the API.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs := initRecords()

		gen := report.NewGenerator(recs, cfg.Data)
		artifacts, err := gen.Generate(args[0])
		if err != nil {
			return eris.Wrap(err, "reports")
		}

		zap.L().Info("reports generated",
			zap.String("job", args[0]),
			zap.Int("candidates", artifacts.Rows),
			zap.String("csv", artifacts.CSV),
			zap.String("html", artifacts.HTML),
			zap.String("xlsx", artifacts.XLSX),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}
