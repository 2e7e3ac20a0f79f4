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

// EraFactorRow pairs a computed era factor with its component name for display.
type EraFactorRow struct {
	ComponentName string            `json:"component_name"`
	Factor        schema.EraFactor `json:"factor"`
}

// WriteEraFactorResults outputs computed era factors, dispatching based on
// the output format configured. Parquet is not supported for factor listings
// and falls through to JSON.
func WriteEraFactorResults(rows []EraFactorRow, eraName string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"era", "component", "mean", "std_dev", "multiplier"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, r := range rows {
					rec := []string{
						eraName,
						r.ComponentName,
						fmtFloat(r.Factor.Mean),
						fmtFloat(r.Factor.StdDev),
						fmtFloat(r.Factor.Multiplier),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEraFactorTable(rows, eraName, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeEraFactorTable generates and writes the human-readable table.
func writeEraFactorTable(rows []EraFactorRow, eraName string, fmtFloat func(float64) string, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Era factors for %s\n", eraName); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Component", "Mean", "StdDev", "Multiplier"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.ComponentName,
			fmtFloat(r.Factor.Mean),
			fmtFloat(r.Factor.StdDev),
			fmtFloat(r.Factor.Multiplier),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Computed factors for %d components\n", len(rows))
	return err
}
