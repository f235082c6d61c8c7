package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/trx-etl/internal/dataset"
	"github.com/dvloznov/trx-etl/internal/logger"
)

var inspectColumn string

// inspectCmd profiles the input so drop lists and column names can be
// chosen by looking at the data instead of guessing.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Profile the input columns: kinds, nulls, distinct counts",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	if inspectColumn != "" {
		col, ok := d.Column(inspectColumn)
		if !ok {
			return fmt.Errorf("input has no column %q", inspectColumn)
		}
		printProfile(*col)
		return nil
	}

	fmt.Printf("%s: %d rows, %d columns\n", cfg.Input, d.NumRows(), d.NumCols())
	for _, c := range d.Columns {
		printProfile(c)
	}
	return nil
}

// printProfile writes one line per column. The trailing note marks the
// degenerate shapes the drop steps exist for.
func printProfile(c dataset.Column) {
	distinct := c.DistinctNonNull()
	nulls := c.NullCount()

	note := ""
	switch {
	case c.Len() > 0 && nulls == c.Len():
		note = "  (all null)"
	case nulls == 0 && len(distinct) == 1:
		note = "  (constant)"
	}
	fmt.Printf("  %-28s %-7s nulls=%-6d distinct=%-6d%s\n", c.Name, columnKind(c), nulls, len(distinct), note)
}

// columnKind reports the kind shared by the non-null cells, or "mixed" when
// they disagree. An all-null column reports "null".
func columnKind(c dataset.Column) string {
	kind := dataset.KindNull
	for _, v := range c.Values {
		if v.IsNull() {
			continue
		}
		if kind == dataset.KindNull {
			kind = v.Kind()
			continue
		}
		if v.Kind() != kind {
			return "mixed"
		}
	}
	return kind.String()
}
