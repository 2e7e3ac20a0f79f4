package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// labelFor returns the tier label for a score, colored for table output when
// the config allows it.
func labelFor(score float64, cfg *contract.Config) string {
	if cfg.Color {
		return contract.GetColorLabel(score)
	}
	return contract.GetPlainLabel(score)
}

// truncateName shortens an entity name to maxLen, appending an ellipsis when
// anything was cut.
func truncateName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	if maxLen <= 3 {
		return name[:maxLen]
	}
	return name[:maxLen-3] + "..."
}

// componentContribution holds a key-value pair from the Breakdown map
// representing a component's contribution to the final score.
type componentContribution struct {
	Name  string
	Value float64
}

const (
	contribMinimum = 0.5
	topNComponents = 3
)

// overlayKeys are breakdown entries that are overlays rather than component
// contributions. They are excluded from the top-contributor summary.
var overlayKeys = map[string]struct{}{
	string(schema.BreakdownExpert):    {},
	string(schema.BreakdownFan):       {},
	string(schema.BreakdownInfluence): {},
}

// formatTopBreakdown computes the top 3 components that contribute to the
// final score, highest contribution first.
func formatTopBreakdown(f *schema.FinalScore) string {
	var contribs []componentContribution

	for k, v := range f.Breakdown {
		if _, overlay := overlayKeys[k]; overlay {
			continue
		}
		// Only include meaningful contributions
		if v >= contribMinimum {
			contribs = append(contribs, componentContribution{Name: k, Value: v})
		}
	}

	if len(contribs) == 0 {
		return "No meaningful contributors"
	}

	sort.Slice(contribs, func(i, j int) bool {
		if math.Abs(contribs[i].Value) != math.Abs(contribs[j].Value) {
			return math.Abs(contribs[i].Value) > math.Abs(contribs[j].Value)
		}
		return contribs[i].Name < contribs[j].Name
	})

	var parts []string
	limit := min(len(contribs), topNComponents)
	for i := range limit {
		parts = append(parts, contribs[i].Name)
	}
	return strings.Join(parts, " > ")
}
