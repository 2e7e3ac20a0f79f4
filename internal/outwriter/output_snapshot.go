package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/internal/parquet"
	"github.com/goatarena/goatrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSnapshotResults outputs a ranking snapshot, dispatching based on the
// output format configured.
func WriteSnapshotResults(snap *schema.RankingSnapshot, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snap)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "entity", "score", "label", "snapshot_id", "snapshot_label"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVResultsForSnapshot(csvWriter, snap, fmtFloat)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteSnapshotParquet(parquet.ConvertSnapshot(snap), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotTable(snap, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeSnapshotTable generates and writes the human-readable table.
func writeSnapshotTable(snap *schema.RankingSnapshot, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	label := snap.Label
	if label == "" {
		label = "(unlabeled)"
	}
	if _, err := fmt.Fprintf(writer, "Snapshot %s %s, captured %s\n",
		snap.ID, label, snap.CreatedAt.Format(contract.DateTimeFormat)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Entity", "Score", "Label"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, e := range snap.Entries {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			truncateName(e.EntityName, maxNameWidth),
			fmtFloat(e.Score),
			labelFor(e.Score, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Snapshot holds %d entries\n", len(snap.Entries))
	return err
}

// writeCSVResultsForSnapshot writes the snapshot entries in CSV format.
func writeCSVResultsForSnapshot(w *csv.Writer, snap *schema.RankingSnapshot, fmtFloat func(float64) string) error {
	for _, e := range snap.Entries {
		rec := []string{
			strconv.Itoa(e.Rank),
			e.EntityName,
			fmtFloat(e.Score),
			contract.GetPlainLabel(e.Score),
			snap.ID.String(),
			snap.Label,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
