// Package config loads and validates the YAML job file that parameterizes a
// cleaning run: file paths, the columns each step acts on, and the rename
// table. Column names live here and nowhere else, so the transform code
// never hardcodes a schema.
package config

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Columns names the inputs the derivation and normalization steps act on.
type Columns struct {
	// Time is the encoded HHMMSSCC column.
	Time string `yaml:"time"`
	// Response is the raw response-code column.
	Response string `yaml:"response"`
}

// Derived names the columns the clock derivation appends.
type Derived struct {
	// Clock receives the full decomposed time.
	Clock string `yaml:"clock"`
	// Hour receives the hour-only value.
	Hour string `yaml:"hour"`
}

// Drop lists the columns removed before and after derivation.
type Drop struct {
	// Constant columns carry one repeated value and are dropped up front.
	Constant []string `yaml:"constant"`
	// Empty columns carry only nulls and are dropped after derivation.
	Empty []string `yaml:"empty"`
}

// Flag derives a binary indicator from a categorical column: cells equal to
// Equals become -1, everything else becomes 0. An empty Column disables the
// step.
type Flag struct {
	Column string `yaml:"column"`
	Equals string `yaml:"equals"`
}

// Config is one cleaning job.
type Config struct {
	Input       string            `yaml:"input"`
	Output      string            `yaml:"output"`
	IndexColumn bool              `yaml:"index_column"`
	Delimiter   string            `yaml:"delimiter"`
	Columns     Columns           `yaml:"columns"`
	Derived     Derived           `yaml:"derived"`
	Drop        Drop              `yaml:"drop"`
	Flag        Flag              `yaml:"flag"`
	Renames     map[string]string `yaml:"renames"`
}

// Default returns the configuration for the transaction export this tool
// was built around. Paths are intentionally absent: every job names its own.
func Default() Config {
	return Config{
		IndexColumn: true,
		Delimiter:   ",",
		Columns: Columns{
			Time:     "finaltrxhour",
			Response: "responsecode",
		},
		Derived: Derived{
			Clock: "hour_trx",
			Hour:  "hour_only",
		},
		Drop: Drop{
			Constant: []string{"channel", "devicenameid", "finaltrxmonth", "finaltrxyear"},
			Empty:    []string{"transactionvouchernumber"},
		},
		Flag: Flag{
			Column: "transactiontype",
			Equals: "Administrativa",
		},
	}
}

// Load reads the YAML job file at path over the defaults: keys the file
// omits keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem that would make the job unrunnable.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output path is required")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("config: delimiter must be one character, got %q", c.Delimiter)
	}
	if c.Columns.Time == "" {
		return fmt.Errorf("config: columns.time is required")
	}
	if c.Columns.Response == "" {
		return fmt.Errorf("config: columns.response is required")
	}
	if c.Derived.Clock == "" || c.Derived.Hour == "" {
		return fmt.Errorf("config: derived.clock and derived.hour are required")
	}
	if c.Derived.Clock == c.Derived.Hour {
		return fmt.Errorf("config: derived.clock and derived.hour both named %q", c.Derived.Clock)
	}
	if c.Flag.Column != "" && c.Flag.Equals == "" {
		return fmt.Errorf("config: flag.equals is required when flag.column is set")
	}
	return c.validateRenames()
}

// validateRenames rejects tables that cannot apply cleanly: empty targets,
// two sources renamed to one target, and a target that takes the name of a
// known column which itself keeps its name.
func (c Config) validateRenames() error {
	froms := make([]string, 0, len(c.Renames))
	for from := range c.Renames {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	kept := map[string]bool{}
	for _, name := range []string{c.Derived.Clock, c.Derived.Hour, c.Columns.Response, c.Flag.Column} {
		if name == "" {
			continue
		}
		if _, renamed := c.Renames[name]; !renamed {
			kept[name] = true
		}
	}

	targets := map[string]string{}
	for _, from := range froms {
		to := c.Renames[from]
		if to == "" {
			return fmt.Errorf("config: rename for %q has an empty target", from)
		}
		if prev, ok := targets[to]; ok {
			return fmt.Errorf("config: renames %q and %q both target %q", prev, from, to)
		}
		targets[to] = from
		if kept[to] {
			return fmt.Errorf("config: rename %q -> %q collides with a kept column", from, to)
		}
	}
	return nil
}

// Delim returns the delimiter as a rune. Call Validate first.
func (c Config) Delim() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
