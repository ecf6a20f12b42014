package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/screening-cli/internal/model"
)

var showHistory bool

var showCmd = &cobra.Command{
	Use:   "show <job-name> <candidate-name>",
	Short: "Show a candidate's record: evaluation, feedback, and flags",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobName, candidateName := args[0], args[1]
		recs := initRecords()

		current, err := recs.CurrentEvaluation(jobName, candidateName)
		if err != nil {
			return err
		}
		if current == nil {
			return eris.Errorf("no evaluation on record for %s", candidateName)
		}

		meta, err := recs.LoadMeta(jobName, candidateName)
		if err != nil {
			return err
		}

		out := struct {
			Evaluation      *model.Evaluation  `json:"evaluation"`
			Rejected        bool               `json:"rejected,omitempty"`
			RejectionReason string             `json:"rejection_reason,omitempty"`
			DuplicateOf     string             `json:"possible_duplicate_of,omitempty"`
			History         []model.Evaluation `json:"history,omitempty"`
		}{
			Evaluation:      current,
			Rejected:        meta.Rejected,
			RejectionReason: meta.RejectionReason,
			DuplicateOf:     recs.WarningCounterpart(jobName, candidateName),
		}
		if showHistory {
			if out.History, err = recs.History(jobName, candidateName); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showHistory, "history", false, "include superseded evaluations")
	rootCmd.AddCommand(showCmd)
}
