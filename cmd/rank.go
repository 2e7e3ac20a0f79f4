package cmd

import (
	"errors"
	"time"

	"github.com/goatarena/goatrank/core/algo"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/internal/outwriter"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// rankModelID optionally selects which model's stored scores to show.
var rankModelID string

// rankCmd shows previously computed rankings without re-scoring.
var rankCmd = &cobra.Command{
	Use:   "rank <category-id>",
	Short: "Show stored rankings for a category.",
	Long: `Display the most recently persisted final scores for a category.

Unlike 'score', this command does not recompute anything. It reads the
final scores saved by the last scoring run and prints them in ranked order.

Examples:
  # Show the current leaderboard
  goatrank rank <category-id>

  # Show the top 10 with colored tier labels disabled
  goatrank rank <category-id> --limit 10 --color no

  # Export stored rankings as JSON
  goatrank rank <category-id> --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		categoryID, err := uuid.Parse(args[0])
		if err != nil {
			contract.LogFatal("Invalid category ID", err)
		}
		modelID, err := parseOptionalModelFlag(rankModelID)
		if err != nil {
			contract.LogFatal("Invalid model ID", err)
		}

		store := goatstore.GetStore()
		start := time.Now()

		if modelID == nil {
			model, err := store.GetActiveScoringModel(rootCtx, categoryID)
			if err != nil {
				contract.LogFatal("Cannot load active scoring model", err)
			}
			if model == nil {
				contract.LogFatal("Cannot resolve model", errors.New("category has no active scoring model; pass --model"))
			}
			modelID = &model.ID
		}

		scores, err := store.ListFinalScores(rootCtx, categoryID, *modelID)
		if err != nil {
			contract.LogFatal("Cannot list stored rankings", err)
		}
		ranked := algo.RankScores(scores, cfg.ResultLimit)

		if err := outwriter.NewOutWriter().WriteRankings(ranked, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write ranking results", err)
		}
	},
}
