package cmd

import (
	"errors"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/internal/outwriter"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// eraCmd groups era-adjustment operations.
var eraCmd = &cobra.Command{
	Use:   "era",
	Short: "Manage era adjustment factors",
	Long: `Manage the statistical factors used to compare entities across eras.

Raw achievement numbers are not comparable across time periods. Era factors
capture the mean and standard deviation of each component within an era so
scoring can adjust for how dominant a value was relative to contemporaries.

Subcommands:
  calc - Recompute mean and standard deviation per component for an era

Examples:
  # Recompute factors after loading new raw scores
  goatrank era calc <era-id>`,
}

// eraCalcCmd recomputes era factors for one era.
var eraCalcCmd = &cobra.Command{
	Use:   "calc <era-id>",
	Short: "Recompute per-component era factors from raw scores.",
	Long: `Recompute the mean and standard deviation of every scoring component
from the raw scores tagged with this era.

Curator-set multipliers on existing factors are preserved; only the
statistical fields are refreshed. Components with no era-tagged raw
scores are skipped.

Examples:
  # Refresh factors for the modern era
  goatrank era calc <era-id>

  # Export the computed factors as CSV
  goatrank era calc <era-id> --output csv --output-file factors.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		eraID, err := uuid.Parse(args[0])
		if err != nil {
			contract.LogFatal("Invalid era ID", err)
		}

		store := goatstore.GetStore()

		era, err := store.GetEra(rootCtx, eraID)
		if err != nil {
			contract.LogFatal("Cannot load era", err)
		}
		if era == nil {
			contract.LogFatal("Cannot load era", errors.New("era not found"))
		}

		if err := core.CalculateEraFactors(rootCtx, store, eraID); err != nil {
			contract.LogFatal("Cannot calculate era factors", err)
		}

		// Collect the stored factor for every component that has one.
		components, err := store.ListComponents(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list components", err)
		}
		var rows []outwriter.EraFactorRow
		for _, c := range components {
			factor, err := store.GetEraFactor(rootCtx, eraID, c.ID)
			if err != nil {
				contract.LogFatal("Cannot load era factor", err)
			}
			if factor == nil {
				continue
			}
			rows = append(rows, outwriter.EraFactorRow{ComponentName: c.Name, Factor: *factor})
		}

		if err := outwriter.NewOutWriter().WriteEraFactors(rows, era.Name, cfg); err != nil {
			contract.LogFatal("Cannot write era factors", err)
		}
	},
}
