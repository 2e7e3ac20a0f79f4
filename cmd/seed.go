package cmd

import (
	"fmt"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/spf13/cobra"
)

// seedCmd loads a demo dataset for exploration.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo basketball dataset into the datastore.",
	Long: `Load a small demo dataset so every command has data to work with.

Creates a Basketball category with scoring components, two eras, an active
scoring model, four entities with raw scores, expert and fan votes, and
influence evidence. Era factors and influence scores are computed as part
of seeding.

Examples:
  # Seed the default SQLite datastore
  goatrank seed

  # Then score the seeded category
  goatrank score <category-id-from-seed-output>`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.SeedDemo(rootCtx, goatstore.GetStore(), goatstore.GetSeeder())
		if err != nil {
			contract.LogFatal("Cannot seed demo data", err)
		}

		fmt.Printf("Seeded demo dataset: %d entities, %d components, %d raw scores, "+
			"%d experts, %d fan votes, %d influence events.\n",
			result.Entities, result.Components, result.RawScores,
			result.Experts, result.FanVotes, result.Events)
		fmt.Printf("Category ID: %s\n", result.CategoryID)
		fmt.Printf("Active model ID: %s\n", result.ModelID)
	},
}
