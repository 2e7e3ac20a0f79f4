package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/parquet"
	"github.com/goatarena/goatrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankingResults outputs ranked final scores, dispatching based on the
// output format configured. The input slice order defines the rank.
func WriteRankingResults(scores []schema.FinalScore, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRankingJSONResults(scores, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRankingCSVResults(scores, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteRankingsParquet(parquet.ConvertFinalScores(scores), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingTable(scores, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRankingJSONResults handles opening the file and calling the JSON writer.
func writeRankingJSONResults(scores []schema.FinalScore, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForRankings(w, scores)
	}, "Wrote JSON")
}

// writeRankingCSVResults handles opening the file and calling the CSV writer.
func writeRankingCSVResults(scores []schema.FinalScore, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "entity", "score", "label", "explanation"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForRankings(csvWriter, scores, fmtFloat)
		})
	}, "Wrote CSV")
}

// writeRankingTable generates and writes the human-readable table.
func writeRankingTable(scores []schema.FinalScore, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Entity", "Score", "Label"}
	if cfg.Explain {
		headers = append(headers, "Top Contributors")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxNameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, s := range scores {
		row := []string{
			strconv.Itoa(i + 1),                     // Rank
			truncateName(s.EntityName, maxNameWidth), // Entity
			fmtFloat(s.Score),                       // Score
			labelFor(s.Score, cfg),                  // Label
		}
		if cfg.Explain {
			row = append(row, formatTopBreakdown(&s))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d entities\n", len(scores)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForRankings writes the ranked scores in CSV format.
func writeCSVResultsForRankings(w *csv.Writer, scores []schema.FinalScore, fmtFloat func(float64) string) error {
	for i, s := range scores {
		rec := []string{
			strconv.Itoa(i + 1),               // Rank
			s.EntityName,                      // Entity
			fmtFloat(s.Score),                 // Score
			contract.GetPlainLabel(s.Score),   // Label
			s.Explanation,                     // Explanation
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForRankings writes the ranked scores in JSON format.
func writeJSONResultsForRankings(w io.Writer, scores []schema.FinalScore) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONRankingResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.FinalScore
	}

	output := make([]JSONRankingResult, len(scores))
	for i, s := range scores {
		output[i] = JSONRankingResult{
			Rank:       i + 1,
			Label:      contract.GetPlainLabel(s.Score),
			FinalScore: s,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
