package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goatarena/goatrank/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
)

// DateTimeFormat is the default date time representation.
const DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Explain        bool   `mapstructure:"explain"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
	FailureMode    string `mapstructure:"failure-mode"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
}

// Config holds the runtime configuration after validation.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Explain     bool
	Color       bool
	Width       int // Terminal width override (0 = auto-detect)
	FailureMode schema.FailureMode

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// ProcessAndValidate converts the raw input into a validated Config,
// rejecting unknown enum values and clamping numeric ranges.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q. Must be text, csv, json, or parquet", input.Output)
	}
	cfg.Output = output

	backend := schema.DatabaseBackend(input.StoreBackend)
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q. Must be sqlite, mysql, or postgresql", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect

	mode := schema.FailureMode(input.FailureMode)
	if _, ok := schema.ValidFailureModes[mode]; !ok {
		return fmt.Errorf("invalid failure mode %q. Must be fail_fast or best_effort", input.FailureMode)
	}
	cfg.FailureMode = mode

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10")
	}
	cfg.Precision = input.Precision

	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	switch input.Color {
	case "yes", "true", "1", "":
		cfg.Color = true
	case "no", "false", "0":
		cfg.Color = false
	default:
		return fmt.Errorf("invalid color value %q. Use yes/no/true/false/1/0", input.Color)
	}

	return nil
}

// GetStoreDBFilePath returns the default path to the SQLite datastore file.
func GetStoreDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".goatrank.db"
	}
	return filepath.Join(home, ".goatrank", "store.db")
}
