// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRankings prints ranked final scores using the configured output format.
func (ow *OutWriter) WriteRankings(scores []schema.FinalScore, cfg *contract.Config, duration time.Duration) error {
	return WriteRankingResults(scores, cfg, duration)
}

// WriteSnapshot prints a ranking snapshot using the configured output format.
func (ow *OutWriter) WriteSnapshot(snap *schema.RankingSnapshot, cfg *contract.Config) error {
	return WriteSnapshotResults(snap, cfg)
}

// WriteInfluence prints an influence score using the configured output format.
func (ow *OutWriter) WriteInfluence(score *schema.InfluenceScore, entityName string, cfg *contract.Config) error {
	return WriteInfluenceResult(score, entityName, cfg)
}

// WriteEraFactors prints computed era factors using the configured output format.
func (ow *OutWriter) WriteEraFactors(rows []EraFactorRow, eraName string, cfg *contract.Config) error {
	return WriteEraFactorResults(rows, eraName, cfg)
}

// WriteStatus prints datastore diagnostics using the configured output format.
func (ow *OutWriter) WriteStatus(status *schema.StoreStatus, cfg *contract.Config) error {
	return WriteStatusResult(status, cfg)
}

// GetMaxTableNameWidth calculates the maximum width for entity names in table
// output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 25 // Rank + Score + Label with borders/padding

	// Add explain column
	if cfg.Explain {
		baseWidth += 35 // Explain column with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 15

	// Calculate available space for the entity name
	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable name width
		return 12
	}
	if available > 50 {
		// Maximum name width to prevent overly wide tables
		return 50
	}
	return available
}
