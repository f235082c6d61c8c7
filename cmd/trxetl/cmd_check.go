package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/trx-etl/internal/logger"
	"github.com/dvloznov/trx-etl/internal/transform"
)

// checkCmd is the pre-flight: it loads the input and reports what a run
// would find, without writing anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a job against its input without writing anything",
	Long: `Check loads the job's input and reports whether each configured column is
present and whether the time column fits the HHMMSSCC layout. It fails only
on problems that would stop a run; columns a run would merely warn about are
reported and tolerated.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadJob()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	d, err := newReader(cfg).Load(ctx, cfg.Input)
	if err != nil {
		return err
	}

	fmt.Printf("input:  %s\n", cfg.Input)
	fmt.Printf("shape:  %d rows x %d columns\n", d.NumRows(), d.NumCols())

	ok, layoutErr := transform.HasClockLayout(d, cfg.Columns.Time)
	switch {
	case layoutErr != nil:
		fmt.Printf("time column %q: MISSING, derived columns would be all null\n", cfg.Columns.Time)
	case ok:
		fmt.Printf("time column %q: HHMMSSCC layout confirmed\n", cfg.Columns.Time)
	default:
		fmt.Printf("time column %q: values do not fit HHMMSSCC, derived columns would be all null\n", cfg.Columns.Time)
	}

	responseOK := d.HasColumn(cfg.Columns.Response)
	fmt.Printf("response column %q: %s\n", cfg.Columns.Response, presence(responseOK))
	if cfg.Flag.Column != "" {
		fmt.Printf("flag column %q: %s\n", cfg.Flag.Column, presence(d.HasColumn(cfg.Flag.Column)))
	}
	for _, name := range cfg.Drop.Constant {
		fmt.Printf("drop constant %q: %s\n", name, presence(d.HasColumn(name)))
	}
	for _, name := range cfg.Drop.Empty {
		fmt.Printf("drop empty %q: %s\n", name, presence(d.HasColumn(name)))
	}

	if !responseOK {
		return fmt.Errorf("check failed: input has no %q column, a run would stop at normalization", cfg.Columns.Response)
	}
	fmt.Println("job is runnable")
	return nil
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "MISSING"
}
