package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteInfluenceResult outputs an influence score for one entity, dispatching
// based on the output format configured. Parquet is not supported for single
// records and falls through to JSON.
func WriteInfluenceResult(score *schema.InfluenceScore, entityName string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			type JSONInfluenceResult struct {
				EntityName string `json:"entity_name"`
				schema.InfluenceScore
			}
			return writeJSON(w, JSONInfluenceResult{EntityName: entityName, InfluenceScore: *score})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"entity", "breadth", "depth", "longevity", "peer", "total", "confidence", "events"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return csvWriter.Write([]string{
					entityName,
					fmtFloat(score.Breadth),
					fmtFloat(score.Depth),
					fmtFloat(score.Longevity),
					fmtFloat(score.Peer),
					fmtFloat(score.Total),
					fmtFloat(score.Confidence),
					fmt.Sprintf("%d", score.EventCount),
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInfluenceTable(score, entityName, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeInfluenceTable generates and writes the human-readable table.
func writeInfluenceTable(score *schema.InfluenceScore, entityName string, fmtFloat func(float64) string, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Influence score for %s\n", entityName); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Dimension", "Score"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Breadth", fmtFloat(score.Breadth)},
		{"Depth", fmtFloat(score.Depth)},
		{"Longevity", fmtFloat(score.Longevity)},
		{"Peer Recognition", fmtFloat(score.Peer)},
		{"Total", fmtFloat(score.Total)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Confidence: %s (%d events)\n", fmtFloat(score.Confidence), score.EventCount); err != nil {
		return err
	}
	if score.Explanation != "" {
		if _, err := fmt.Fprintf(writer, "Explanation: %s\n", score.Explanation); err != nil {
			return err
		}
	}
	return nil
}
