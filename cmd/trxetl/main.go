package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dvloznov/trx-etl/internal/config"
	"github.com/dvloznov/trx-etl/internal/csvio"
	"github.com/dvloznov/trx-etl/internal/logger"
)

// Environment fallbacks for the logging flags.
const (
	envLogLevel  = "TRXETL_LOG_LEVEL"
	envLogFormat = "TRXETL_LOG_FORMAT"
)

var (
	// Global flags
	cfgPath    string
	inputPath  string
	outputPath string
	logLevel   string
	logFormat  string
	timeout    time.Duration

	// Logger, built once in PersistentPreRunE
	log zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trxetl",
	Short: "trxetl - clean raw transaction extracts into model-ready CSVs",
	Long: `trxetl reshapes a raw transaction extract into a dataset fit for modeling.

A run loads a delimited file, drops configured constant and empty columns,
decomposes the HHMMSSCC-encoded time column into a wall-clock time and an
hour, collapses response codes to 1/0/-1, flags one categorical value, and
writes the reordered, renamed result.

Every job is a YAML file; flags override its input and output paths.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values feed the TRXETL_* lookups below; explicit flags win.
		_ = godotenv.Overload()

		level := logLevel
		if level == "" {
			level = os.Getenv(envLogLevel)
		}
		format := logFormat
		if format == "" {
			format = os.Getenv(envLogFormat)
		}

		var err error
		log, err = logger.New(logger.Options{Level: level, Format: format})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Job YAML file (default: built-in transaction-export job)")
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "Input CSV path (overrides the job file)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "Output CSV path (overrides the job file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (or set TRXETL_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (or set TRXETL_LOG_FORMAT)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Run timeout")

	// Inspect flags
	inspectCmd.Flags().StringVar(&inspectColumn, "column", "", "Profile a single column instead of all of them")

	// Add commands to root
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadJob resolves the job for this invocation: the YAML file when -c is
// given, the built-in defaults otherwise, with path flags layered on top.
func loadJob() (config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if inputPath != "" {
		cfg.Input = inputPath
	}
	if outputPath != "" {
		cfg.Output = outputPath
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newReader(cfg config.Config) *csvio.Reader {
	return csvio.NewReader(csvio.Options{Comma: cfg.Delim(), IndexColumn: cfg.IndexColumn})
}
