package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"skillreel/internal/services/moderation/domain"
	modmod "skillreel/internal/services/moderation/module"
)

func newModerateCommand(ctx *commandContext) *cobra.Command {
	var (
		in   domain.ModerateInput
		save bool
	)

	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Run safety analysis and skill classification for one video",
		Long: "Run the moderation pipeline once against the configured providers.\n" +
			"Without --save nothing is written; with --save the record is upserted like the API does.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.VideoURL) == "" {
				return fmt.Errorf("--url is required")
			}
			if in.VideoID == "" {
				in.VideoID = uuid.NewString()
			}

			var (
				rec domain.Record
				err error
			)
			if save {
				mod, merr := ctx.module(cmd.Context())
				if merr != nil {
					return merr
				}
				rec, err = mod.Service().ModerateVideo(cmd.Context(), in)
			} else {
				pipe := modmod.NewPipeline(modmod.FromConfig(ctx.cfg))
				req := in.Request()
				res, rerr := pipe.Moderate(cmd.Context(), req)
				err = rerr
				rec = domain.RecordFrom(in.VideoID, req, res, time.Now())
			}
			if err != nil {
				return err
			}

			if wantJSON(ctx.jsonOut, cmd.OutOrStdout()) {
				return writeJSON(cmd, rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords([]domain.Record{rec}))
			fmt.Fprintf(cmd.OutOrStdout(), "safety: %s\n", rec.Safety.Summary)
			if rec.Skill.Reasoning != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "skill:  %s\n", rec.Skill.Reasoning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.VideoID, "video-id", "", "Video id (uuid); random when omitted")
	cmd.Flags().StringVar(&in.VideoURL, "url", "", "Video URL (stored, never fetched)")
	cmd.Flags().StringVar(&in.Title, "title", "", "Video title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Video description")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the record to Postgres")
	return cmd
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <video-id>",
		Short: "Show the stored moderation record for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := ctx.module(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := mod.Service().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if wantJSON(ctx.jsonOut, cmd.OutOrStdout()) {
				return writeJSON(cmd, rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords([]domain.Record{rec}))
			return nil
		},
	}
}

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "List records whose analysis degraded and need a manual look",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := ctx.module(cmd.Context())
			if err != nil {
				return err
			}
			recs, err := mod.Service().ListReview(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if wantJSON(ctx.jsonOut, cmd.OutOrStdout()) {
				return writeJSON(cmd, domain.ReviewOutput{Items: recs})
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Review queue is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(recs))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum records to list (max 500)")
	return cmd
}
