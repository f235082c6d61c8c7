// Package pipeline drives one cleaning run: a fixed sequence of steps that
// load a transaction export, derive and normalize its columns, reshape the
// schema and write the result. Steps share a PipelineState and report
// per-value recoveries as warnings; a step returns an error only when
// continuing would be meaningless, which stops the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/trx-etl/internal/config"
	"github.com/dvloznov/trx-etl/internal/dataset"
	"github.com/dvloznov/trx-etl/internal/logger"
	"github.com/dvloznov/trx-etl/internal/transform"
)

// PipelineStep represents a single step in the cleaning pipeline.
type PipelineStep interface {
	Name() string
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	Config config.Config
	Data   *dataset.Dataset
	Report *Report
}

// NewPipelineState seeds the state for one run of the given job.
func NewPipelineState(cfg config.Config) *PipelineState {
	return &PipelineState{
		Config: cfg,
		Report: &Report{
			RunID:  uuid.NewString(),
			Input:  cfg.Input,
			Output: cfg.Output,
		},
	}
}

// dropColumns removes names one at a time so each absence can be reported.
// A missing column is a warning, not a failure: the goal state already holds.
func dropColumns(ctx context.Context, state *PipelineState, names []string) {
	log := logger.FromContext(ctx)
	for _, name := range names {
		if state.Data.DropColumns(name) == 0 {
			log.Warn().Str("column", name).Msg("column to drop not present")
			state.Report.Warnings++
			continue
		}
		log.Debug().Str("column", name).Msg("column dropped")
	}
}

// Step 1: LoadStep reads the input file into the working dataset.
type LoadStep struct {
	Loader Loader
}

func (s *LoadStep) Name() string { return "load" }

func (s *LoadStep) Execute(ctx context.Context, state *PipelineState) error {
	d, err := s.Loader.Load(ctx, state.Config.Input)
	if err != nil {
		return err
	}
	state.Data = d
	state.Report.RowsIn = d.NumRows()
	state.Report.ColumnsIn = d.Names()
	log := logger.FromContext(ctx)
	log.Info().
		Str("input", state.Config.Input).
		Int("rows", d.NumRows()).
		Int("columns", d.NumCols()).
		Msg("dataset loaded")
	return nil
}

// Step 2: DropConstantColumnsStep removes the configured known-constant
// columns before any column-specific step runs.
type DropConstantColumnsStep struct{}

func (s *DropConstantColumnsStep) Name() string { return "drop-constant" }

func (s *DropConstantColumnsStep) Execute(ctx context.Context, state *PipelineState) error {
	dropColumns(ctx, state, state.Config.Drop.Constant)
	return nil
}

// Step 3: DeriveClockStep checks the encoded time column against the
// HHMMSSCC layout and derives the clock and hour-only columns from it. When
// the layout holds, the source column is replaced by the derived pair and
// each unusable value becomes a null with a warning. When it does not, the
// source column stays and the derived columns are appended all null, so the
// output schema is stable either way.
type DeriveClockStep struct{}

func (s *DeriveClockStep) Name() string { return "derive-clock" }

func (s *DeriveClockStep) Execute(ctx context.Context, state *PipelineState) error {
	log := logger.FromContext(ctx)
	cfg := state.Config
	rows := state.Data.NumRows()

	ok, layoutErr := transform.HasClockLayout(state.Data, cfg.Columns.Time)
	state.Report.ClockLayout = ok

	clock := dataset.Column{Name: cfg.Derived.Clock, Values: make([]dataset.Value, rows)}
	hour := dataset.Column{Name: cfg.Derived.Hour, Values: make([]dataset.Value, rows)}

	if ok {
		src, _ := state.Data.Column(cfg.Columns.Time)
		for i, v := range src.Values {
			t, err := transform.ParseClock(v)
			if err != nil {
				log.Warn().Err(err).Int("row", i).Str("column", cfg.Columns.Time).Msg("unusable time code")
				state.Report.Warnings++
			}
			if t != nil {
				clock.Values[i] = dataset.Time(*t)
			}
			// ParseHour can only fail where ParseClock already has, so one
			// warning per row covers both.
			if h, err := transform.ParseHour(v); err == nil && h != nil {
				hour.Values[i] = dataset.Int(int64(*h))
			}
		}
	} else {
		ev := log.Warn().Str("column", cfg.Columns.Time)
		if layoutErr != nil {
			ev = ev.Err(layoutErr)
		}
		ev.Msg("time column failed the layout check, derived columns are null")
		state.Report.Warnings++
	}

	if err := state.Data.AppendColumn(clock); err != nil {
		return err
	}
	if err := state.Data.AppendColumn(hour); err != nil {
		return err
	}
	if ok {
		state.Data.DropColumns(cfg.Columns.Time)
	}
	return nil
}

// Step 4: NormalizeResponseStep rewrites the response-code column as the
// tri-state success indicator. A missing response column stops the run: the
// delivered schema depends on it.
type NormalizeResponseStep struct{}

func (s *NormalizeResponseStep) Name() string { return "normalize-response" }

func (s *NormalizeResponseStep) Execute(ctx context.Context, state *PipelineState) error {
	col, err := transform.NormalizeResponseCodes(state.Data, state.Config.Columns.Response)
	if err != nil {
		return err
	}
	return state.Data.ReplaceColumn(col)
}

// Step 5: FlagCategoricalStep replaces the categorical column with a binary
// indicator: cells equal to the configured value become -1, everything else
// (missing cells included) becomes 0.
type FlagCategoricalStep struct{}

func (s *FlagCategoricalStep) Name() string { return "flag-categorical" }

func (s *FlagCategoricalStep) Execute(ctx context.Context, state *PipelineState) error {
	log := logger.FromContext(ctx)
	flag := state.Config.Flag
	if flag.Column == "" {
		log.Debug().Msg("no categorical flag configured")
		return nil
	}
	col, ok := state.Data.Column(flag.Column)
	if !ok {
		log.Warn().Str("column", flag.Column).Msg("flag column not present")
		state.Report.Warnings++
		return nil
	}

	out := make([]dataset.Value, col.Len())
	for i, v := range col.Values {
		if text, isText := v.Str(); isText && text == flag.Equals {
			out[i] = dataset.Int(-1)
		} else {
			out[i] = dataset.Int(0)
		}
	}
	return state.Data.ReplaceColumn(dataset.Column{Name: flag.Column, Values: out})
}

// Step 6: DropEmptyColumnsStep removes the configured all-null columns. It
// runs after derivation so the list refers to the post-derivation schema.
type DropEmptyColumnsStep struct{}

func (s *DropEmptyColumnsStep) Name() string { return "drop-empty" }

func (s *DropEmptyColumnsStep) Execute(ctx context.Context, state *PipelineState) error {
	dropColumns(ctx, state, state.Config.Drop.Empty)
	return nil
}

// Step 7: ReshapeStep reorders the columns for delivery and applies the
// rename table. Exactly one application: reshaping is not idempotent.
type ReshapeStep struct{}

func (s *ReshapeStep) Name() string { return "reshape" }

func (s *ReshapeStep) Execute(ctx context.Context, state *PipelineState) error {
	out, err := transform.Reshape(state.Data, state.Config.Renames)
	if err != nil {
		return err
	}
	state.Data = out
	state.Report.ColumnsOut = out.Names()
	return nil
}

// Step 8: WriteStep serializes the finished dataset to the output path.
type WriteStep struct {
	Writer Writer
}

func (s *WriteStep) Name() string { return "write" }

func (s *WriteStep) Execute(ctx context.Context, state *PipelineState) error {
	if err := s.Writer.Write(ctx, state.Config.Output, state.Data); err != nil {
		return err
	}
	state.Report.RowsOut = state.Data.NumRows()
	log := logger.FromContext(ctx)
	log.Info().
		Str("output", state.Config.Output).
		Int("rows", state.Report.RowsOut).
		Msg("dataset written")
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially, stopping at the
// first failure.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	log := logger.FromContext(ctx)
	for i, step := range p.steps {
		start := time.Now()
		before := state.Report.Warnings
		if err := step.Execute(ctx, state); err != nil {
			log.Error().Err(err).Str("step", step.Name()).Msg("pipeline step failed")
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
		took := time.Since(start)
		state.Report.Steps = append(state.Report.Steps, StepReport{
			Name:     step.Name(),
			Duration: took,
			Warnings: state.Report.Warnings - before,
		})
		log.Debug().Str("step", step.Name()).Dur("took", took).Msg("pipeline step done")
	}
	return nil
}

// NewCleanPipeline creates the standard 8-step pipeline for cleaning a
// transaction export.
func NewCleanPipeline(loader Loader, writer Writer) *Pipeline {
	return NewPipeline(
		&LoadStep{Loader: loader},
		&DropConstantColumnsStep{},
		&DeriveClockStep{},
		&NormalizeResponseStep{},
		&FlagCategoricalStep{},
		&DropEmptyColumnsStep{},
		&ReshapeStep{},
		&WriteStep{Writer: writer},
	)
}

// Run executes the standard pipeline for one job and returns its report.
// The report comes back alongside the error so a failed run still accounts
// for the steps that completed.
func Run(ctx context.Context, cfg config.Config, loader Loader, writer Writer) (*Report, error) {
	state := NewPipelineState(cfg)
	start := time.Now()
	err := NewCleanPipeline(loader, writer).Execute(ctx, state)
	state.Report.Duration = time.Since(start)
	return state.Report, err
}
