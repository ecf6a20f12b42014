package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List configured jobs and their candidate counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs := initRecords()

		jobs, err := recs.ListJobs()
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("no jobs configured")
			return nil
		}

		for _, job := range jobs {
			names, err := recs.List(job)
			if err != nil {
				return err
			}
			evals, err := recs.Evaluations(job)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%d candidates\t%d evaluated\n", job, len(names), len(evals))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
