package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteStatusResult outputs datastore diagnostics, dispatching based on the
// output format configured. Parquet is not supported for diagnostics and
// falls through to JSON.
func WriteStatusResult(status *schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"backend", "connected", "categories", "entities", "raw_scores", "final_scores", "snapshots", "last_scored_at"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				lastScored := ""
				if status.LastScoredAt != nil {
					lastScored = status.LastScoredAt.Format(contract.DateTimeFormat)
				}
				return csvWriter.Write([]string{
					status.Backend,
					strconv.FormatBool(status.Connected),
					strconv.Itoa(status.Categories),
					strconv.Itoa(status.Entities),
					strconv.Itoa(status.RawScores),
					strconv.Itoa(status.FinalScores),
					strconv.Itoa(status.Snapshots),
					lastScored,
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusTable(status, w)
		}, "Wrote table")
	}
}

// writeStatusTable generates and writes the human-readable table.
func writeStatusTable(status *schema.StoreStatus, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	lastScored := "never"
	if status.LastScoredAt != nil {
		lastScored = status.LastScoredAt.Format(contract.DateTimeFormat)
	}

	data := [][]string{
		{"Backend", status.Backend},
		{"Connected", strconv.FormatBool(status.Connected)},
		{"Categories", strconv.Itoa(status.Categories)},
		{"Entities", strconv.Itoa(status.Entities)},
		{"Raw scores", strconv.Itoa(status.RawScores)},
		{"Final scores", strconv.Itoa(status.FinalScores)},
		{"Snapshots", strconv.Itoa(status.Snapshots)},
		{"Last scored", lastScored},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if !status.Connected {
		if _, err := fmt.Fprintln(writer, "Store is not reachable"); err != nil {
			return err
		}
	}
	return nil
}
