package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/intake"
	"github.com/sells-group/screening-cli/internal/model"
)

var (
	setupDescription    string
	setupIdealCandidate string
	setupWarningFlags   string
)

var setupJobCmd = &cobra.Command{
	Use:   "setup-job <job-name>",
	Short: "Create a job with its description and guidance documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobName := intake.NormalizeName(args[0])
		if jobName == "" {
			return eris.Errorf("invalid job name %q", args[0])
		}

		job := model.JobContext{Name: jobName}
		var err error
		if job.Description, err = readDoc(setupDescription); err != nil {
			return err
		}
		if job.Description == "" {
			return eris.New("a job description is required (--description)")
		}
		if job.IdealCandidate, err = readDoc(setupIdealCandidate); err != nil {
			return err
		}
		if job.WarningFlags, err = readDoc(setupWarningFlags); err != nil {
			return err
		}

		if err := initRecords().SaveJobContext(job); err != nil {
			return err
		}
		zap.L().Info("job created", zap.String("job", jobName))
		return nil
	},
}

// readDoc treats the argument as a file path when one exists, otherwise as
// literal text.
func readDoc(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	info, err := os.Stat(arg)
	if err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", eris.Wrapf(err, "read %s", arg)
		}
		return string(data), nil
	}
	return arg, nil
}

func init() {
	setupJobCmd.Flags().StringVar(&setupDescription, "description", "", "job description text or file path (required)")
	setupJobCmd.Flags().StringVar(&setupIdealCandidate, "ideal-candidate", "", "ideal candidate profile text or file path")
	setupJobCmd.Flags().StringVar(&setupWarningFlags, "warning-flags", "", "warning flags text or file path")
	_ = setupJobCmd.MarkFlagRequired("description")
	rootCmd.AddCommand(setupJobCmd)
}
