package contract

import (
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"
)

// Score tier label constants.
const (
	LegendaryValue = "Legendary" // all-time great
	EliteValue     = "Elite"     // elite tier
	GreatValue     = "Great"     // strong but not elite
	ContenderValue = "Contender" // everyone else
)

// Color variables for console output.
var (
	LegendaryColor = color.New(color.FgYellow, color.Bold)
	EliteColor     = color.New(color.FgMagenta, color.Bold)
	GreatColor     = color.New(color.FgCyan)
	ContenderColor = color.New(color.FgWhite)
)

// GetPlainLabel returns a plain text tier label based on the composite
// score. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return LegendaryValue
	case score >= 60:
		return EliteValue
	case score >= 40:
		return GreatValue
	default:
		return ContenderValue
	}
}

// GetColorLabel returns a colored tier label for console output (table).
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case LegendaryValue:
		return LegendaryColor.Sprint(text)
	case EliteValue:
		return EliteColor.Sprint(text)
	case GreatValue:
		return GreatColor.Sprint(text)
	default:
		return ContenderColor.Sprint(text)
	}
}

// RoundTo rounds v to the given number of decimal places. Persisted
// contributions and totals round to two places so re-runs are bit-for-bit
// identical.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogWarn logs a warning with its cause to stderr.
func LogWarn(msg string, err error) {
	fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
}

// LogFatal logs an error to stderr and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
