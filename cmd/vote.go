package cmd

import (
	"fmt"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// expertVoteInput collects the flag values for 'vote expert'.
var expertVoteInput struct {
	expertID   string
	entityID   string
	modelID    string
	score      float64
	confidence float64
	rationale  string
}

// fanVoteInput collects the flag values for 'vote fan'.
var fanVoteInput struct {
	userID     string
	entityID   string
	categoryID string
	rating     float64
	weight     float64
}

// voteCmd groups vote submission operations.
var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Submit expert or fan votes",
	Long: `Submit votes that feed the expert and fan sentiment overlays.

Expert votes are weighted by reputation, confidence and domain match, then
averaged into a per-entity consensus. Fan votes are weighted by user trust
and aggregated into a running sentiment score. Both overlays are blended
into final scores during the next scoring run.

Subcommands:
  expert - Submit a vote as a verified expert
  fan    - Submit or revise a fan rating

Examples:
  # Record an expert's assessment
  goatrank vote expert --expert <id> --entity <id> --model <id> --score 9.5

  # Record a fan rating
  goatrank vote fan --user <id> --entity <id> --category <id> --rating 8`,
}

// voteExpertCmd submits an expert vote.
var voteExpertCmd = &cobra.Command{
	Use:   "expert",
	Short: "Submit a vote as a verified expert.",
	Long: `Submit an expert's score for an entity under a scoring model.

The expert must be active and verified. Each expert may vote once per
(entity, model) pair; duplicates are rejected. The vote's weight is the
expert's reputation (clamped to [0.5, 1.5]) times confidence times how
well the expert's domain matches the category.

Examples:
  # A confident vote with rationale
  goatrank vote expert --expert <id> --entity <id> --model <id> \
    --score 9.5 --confidence 0.9 --rationale "Unmatched peak dominance"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		expertID, err := uuid.Parse(expertVoteInput.expertID)
		if err != nil {
			contract.LogFatal("Invalid expert ID", err)
		}
		entityID, err := uuid.Parse(expertVoteInput.entityID)
		if err != nil {
			contract.LogFatal("Invalid entity ID", err)
		}
		modelID, err := uuid.Parse(expertVoteInput.modelID)
		if err != nil {
			contract.LogFatal("Invalid model ID", err)
		}

		vote := &schema.ExpertVote{
			ID:         uuid.New(),
			ExpertID:   expertID,
			EntityID:   entityID,
			ModelID:    modelID,
			Score:      expertVoteInput.score,
			Confidence: expertVoteInput.confidence,
			Rationale:  expertVoteInput.rationale,
		}
		if err := core.SubmitExpertVote(rootCtx, goatstore.GetStore(), vote); err != nil {
			contract.LogFatal("Cannot submit expert vote", err)
		}
		fmt.Printf("Expert vote %s recorded.\n", vote.ID)
	},
}

// voteFanCmd submits or revises a fan vote.
var voteFanCmd = &cobra.Command{
	Use:   "fan",
	Short: "Submit or revise a fan rating.",
	Long: `Submit a fan's rating for an entity within a category.

A user has one live vote per (entity, category) pair. Submitting again
revises the vote; the prior value is versioned for audit. The aggregate
sentiment for the pair is recomputed synchronously and printed.

Examples:
  # First vote
  goatrank vote fan --user <id> --entity <id> --category <id> --rating 8

  # Revise it later with a custom trust weight
  goatrank vote fan --user <id> --entity <id> --category <id> --rating 9 --weight 1.2`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		userID, err := uuid.Parse(fanVoteInput.userID)
		if err != nil {
			contract.LogFatal("Invalid user ID", err)
		}
		entityID, err := uuid.Parse(fanVoteInput.entityID)
		if err != nil {
			contract.LogFatal("Invalid entity ID", err)
		}
		categoryID, err := uuid.Parse(fanVoteInput.categoryID)
		if err != nil {
			contract.LogFatal("Invalid category ID", err)
		}

		vote := &schema.FanVote{
			ID:         uuid.New(),
			UserID:     userID,
			EntityID:   entityID,
			CategoryID: categoryID,
			Rating:     fanVoteInput.rating,
			Weight:     fanVoteInput.weight,
		}
		svc := core.NewFanVoteService(goatstore.GetStore())
		agg, err := svc.SubmitVote(rootCtx, vote)
		if err != nil {
			contract.LogFatal("Cannot submit fan vote", err)
		}
		fmt.Printf("Fan vote recorded. Aggregate sentiment: %.*f from %d votes.\n",
			cfg.Precision, agg.Score, agg.VoteCount)
	},
}
