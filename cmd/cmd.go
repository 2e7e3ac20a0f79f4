// Package cmd defines the command-line interface for goatrank.
package cmd

import (
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(eraCmd)
	rootCmd.AddCommand(influenceCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the score subcommands to the parent score command
	scoreCmd.AddCommand(scoreSubmitCmd)

	// Add the era subcommands to the parent era command
	eraCmd.AddCommand(eraCalcCmd)

	// Add the vote subcommands to the parent vote command
	voteCmd.AddCommand(voteExpertCmd)
	voteCmd.AddCommand(voteFanCmd)

	// Add the model subcommands to the parent model command
	modelCmd.AddCommand(modelCreateCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotCreateCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("explain", false, "Print per-entity component score breakdown")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("failure-mode", string(schema.FailFast), "Scoring failure mode: fail_fast or best_effort")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Datastore backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind scoreSubmitCmd flags
	scoreSubmitCmd.Flags().StringVar(&rawScoreInput.entityID, "entity", "", "Entity UUID (required)")
	scoreSubmitCmd.Flags().StringVar(&rawScoreInput.component, "component", "", "Component UUID or slug (required)")
	scoreSubmitCmd.Flags().Float64Var(&rawScoreInput.value, "value", 0, "Observed value (required)")
	scoreSubmitCmd.Flags().StringVar(&rawScoreInput.eraID, "era", "", "Optional era UUID to tag the observation with")
	scoreSubmitCmd.Flags().StringVar(&rawScoreInput.source, "source", "", "Free-form provenance note")
	markRequired(scoreSubmitCmd, "entity", "component", "value")

	// Bind scoreCmd and rankCmd model selection flags
	scoreCmd.Flags().StringVar(&scoreModelID, "model", "", "Scoring model UUID (defaults to the category's active model)")
	rankCmd.Flags().StringVar(&rankModelID, "model", "", "Scoring model UUID (defaults to the category's active model)")

	// Bind influenceCmd flags
	influenceCmd.Flags().StringVar(&influenceModelID, "model", "", "Influence model UUID (defaults to the category's active influence model)")

	// Bind voteExpertCmd flags
	voteExpertCmd.Flags().StringVar(&expertVoteInput.expertID, "expert", "", "Expert UUID (required)")
	voteExpertCmd.Flags().StringVar(&expertVoteInput.entityID, "entity", "", "Entity UUID (required)")
	voteExpertCmd.Flags().StringVar(&expertVoteInput.modelID, "model", "", "Scoring model UUID (required)")
	voteExpertCmd.Flags().Float64Var(&expertVoteInput.score, "score", 0, "Vote score on the 0-10 scale (required)")
	voteExpertCmd.Flags().Float64Var(&expertVoteInput.confidence, "confidence", 1.0, "Vote confidence in [0,1]")
	voteExpertCmd.Flags().StringVar(&expertVoteInput.rationale, "rationale", "", "Free-form vote rationale")
	markRequired(voteExpertCmd, "expert", "entity", "model", "score")

	// Bind voteFanCmd flags
	voteFanCmd.Flags().StringVar(&fanVoteInput.userID, "user", "", "Voting user UUID (required)")
	voteFanCmd.Flags().StringVar(&fanVoteInput.entityID, "entity", "", "Entity UUID (required)")
	voteFanCmd.Flags().StringVar(&fanVoteInput.categoryID, "category", "", "Category UUID (required)")
	voteFanCmd.Flags().Float64Var(&fanVoteInput.rating, "rating", 0, "Rating on the 0-10 scale (required)")
	voteFanCmd.Flags().Float64Var(&fanVoteInput.weight, "weight", 1.0, "Vote weight (user trust score)")
	markRequired(voteFanCmd, "user", "entity", "category", "rating")

	// Bind modelCreateCmd flags
	modelCreateCmd.Flags().StringVar(&modelCreateInput.categoryID, "category", "", "Category UUID (required)")
	modelCreateCmd.Flags().StringVar(&modelCreateInput.name, "name", "", "Model name (required)")
	modelCreateCmd.Flags().IntVar(&modelCreateInput.version, "model-version", 1, "Model version")
	modelCreateCmd.Flags().BoolVar(&modelCreateInput.active, "active", false, "Mark the model as the category's active model")
	modelCreateCmd.Flags().StringVar(&modelCreateInput.weights, "weights", "", "Component weights as slug=weight pairs, e.g. 'championships=0.6,mvp-awards=0.4' (required)")
	markRequired(modelCreateCmd, "category", "name", "weights")

	// Bind snapshotCreateCmd flags
	snapshotCreateCmd.Flags().StringVar(&snapshotLabel, "label", "", "Free-form label for the snapshot")
	snapshotCreateCmd.Flags().StringVar(&snapshotModelID, "model", "", "Scoring model UUID (defaults to the category's active model)")

	// Bind storeMigrateCmd flags
	storeMigrateCmd.Flags().IntVar(&migrateTargetVersion, "target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}

// markRequired marks flags as required, halting on wiring mistakes.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			contract.LogFatal("Error marking flag required", err)
		}
	}
}
