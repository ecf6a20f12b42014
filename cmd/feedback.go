package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/model"
)

var (
	feedbackRecommendation string
	feedbackScore          int
	feedbackNotes          string
	feedbackCorrections    []string
	feedbackReject         bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <job-name> <candidate-name>",
	Short: "Record a reviewer's verdict on a candidate's evaluation",
	Long:  "Stores human feedback against the current evaluation. Once enough feedback accumulates, job insights are regenerated automatically.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := model.Recommendation(strings.ToUpper(feedbackRecommendation))
		if !rec.Valid() {
			return eris.Errorf("invalid recommendation %q, want one of STRONG_NO, NO, MAYBE, YES, STRONG_YES", feedbackRecommendation)
		}

		fb := model.HumanFeedback{
			HumanRecommendation: rec,
			Notes:               feedbackNotes,
		}
		if cmd.Flags().Changed("score") {
			if feedbackScore < 0 || feedbackScore > 100 {
				return eris.Errorf("score %d out of range [0,100]", feedbackScore)
			}
			fb.HumanScore = &feedbackScore
		}
		if len(feedbackCorrections) > 0 {
			fb.SpecificCorrections = make(map[string]string, len(feedbackCorrections))
			for _, c := range feedbackCorrections {
				field, correction, ok := strings.Cut(c, "=")
				if !ok {
					return eris.Errorf("invalid correction %q, want field=text", c)
				}
				fb.SpecificCorrections[field] = correction
			}
		}

		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		insights, err := env.Feedback.Collect(ctx, args[0], args[1], fb)
		if err != nil {
			return eris.Wrap(err, "feedback")
		}

		if feedbackReject {
			reason := feedbackNotes
			if reason == "" {
				reason = "rejected during feedback review"
			}
			if err := env.Records.Reject(args[0], args[1], reason); err != nil {
				return err
			}
		}

		fields := []zap.Field{
			zap.String("job", args[0]),
			zap.String("candidate", args[1]),
			zap.String("recommendation", string(rec)),
		}
		if insights != nil {
			fields = append(fields, zap.Int("insight_feedback_count", insights.FeedbackCount))
		}
		zap.L().Info("feedback recorded", fields...)
		return nil
	},
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackRecommendation, "recommendation", "", "human recommendation (required)")
	feedbackCmd.Flags().IntVar(&feedbackScore, "score", 0, "human score, 0 to 100")
	feedbackCmd.Flags().StringVar(&feedbackNotes, "notes", "", "free-form feedback notes")
	feedbackCmd.Flags().StringSliceVar(&feedbackCorrections, "correct", nil, "field correction as field=text (repeatable)")
	feedbackCmd.Flags().BoolVar(&feedbackReject, "reject", false, "also mark the candidate as permanently rejected")
	_ = feedbackCmd.MarkFlagRequired("recommendation")
	rootCmd.AddCommand(feedbackCmd)
}
