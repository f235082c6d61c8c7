package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// StepReport is the per-step slice of a run report.
type StepReport struct {
	Name     string
	Duration time.Duration
	Warnings int
}

// Report accounts for one cleaning run. It lives in memory for the duration
// of the process; nothing persists between runs.
type Report struct {
	RunID       string
	Input       string
	Output      string
	RowsIn      int
	RowsOut     int
	ColumnsIn   []string
	ColumnsOut  []string
	ClockLayout bool
	Warnings    int
	Steps       []StepReport
	Duration    time.Duration
}

// String renders the report as the block the run command prints.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", r.RunID)
	fmt.Fprintf(&b, "  input:  %s (%d rows, %d columns)\n", r.Input, r.RowsIn, len(r.ColumnsIn))
	fmt.Fprintf(&b, "  output: %s (%d rows, %d columns)\n", r.Output, r.RowsOut, len(r.ColumnsOut))
	fmt.Fprintf(&b, "  clock layout: %v\n", r.ClockLayout)
	fmt.Fprintf(&b, "  warnings: %d\n", r.Warnings)
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "    %-20s %12s", s.Name, s.Duration.Round(time.Microsecond))
		if s.Warnings > 0 {
			fmt.Fprintf(&b, "  (%d warnings)", s.Warnings)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  total: %s\n", r.Duration.Round(time.Microsecond))
	return b.String()
}
