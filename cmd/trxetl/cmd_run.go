package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/trx-etl/internal/csvio"
	"github.com/dvloznov/trx-etl/internal/logger"
	"github.com/dvloznov/trx-etl/internal/pipeline"
)

// runCmd executes one cleaning job end to end.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cleaning pipeline and write the output CSV",
	Long: `Run executes every step of the cleaning pipeline against the job's input
and writes the reshaped dataset to the job's output path. The run report is
printed to stdout; logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadJob()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("input", cfg.Input).Str("output", cfg.Output).Msg("Starting cleaning run")

	writer := csvio.NewWriter(csvio.Options{Comma: cfg.Delim()})
	report, err := pipeline.Run(ctx, cfg, newReader(cfg), writer)
	if err != nil {
		return err
	}

	fmt.Print(report.String())
	return nil
}
