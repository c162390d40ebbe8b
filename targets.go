package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Replacement is a literal substitution applied to extracted commands,
// typically swapping a full-size model invocation for a cheap smoke-test one.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Target describes one documentation smoke-test: which markdown file to
// extract commands from and how to rewrite them before execution.
type Target struct {
	Name         string        `yaml:"name"`
	Document     string        `yaml:"document"`
	Sections     bool          `yaml:"sections"`
	Enabled      bool          `yaml:"enabled"`
	Replacements []Replacement `yaml:"replace"`
	Suppressions []string      `yaml:"suppress"`
}

// ScriptName is the file name the generated script is written under.
func (t Target) ScriptName() string {
	return "run-" + t.Name + ".sh"
}

func (t Target) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.NotIn("all").Error("name is reserved")),
		validation.Field(&t.Document, validation.Required),
		validation.Field(&t.Replacements, validation.By(validateReplacements)),
	)
}

func validateReplacements(value interface{}) error {
	reps, _ := value.([]Replacement)
	for i, rep := range reps {
		if rep.Old == "" {
			return fmt.Errorf("replacement %d: old string is required", i)
		}
	}
	return nil
}

var smokeReplacements = []Replacement{
	{Old: "llama3.1", New: "stories15M"},
	{Old: "-l 3", New: "-l 2"},
}

// Steps needing interactive authentication cannot run in CI.
var authSuppressions = []string{"huggingface-cli", "HF_TOKEN"}

// builtinTargets is the default documentation matrix. The evaluation target
// ships disabled; re-enable it from a config file once its document runs
// clean end to end.
func builtinTargets() []Target {
	return []Target{
		{
			Name:         "readme",
			Document:     "README.md",
			Sections:     true,
			Enabled:      true,
			Replacements: smokeReplacements,
			Suppressions: authSuppressions,
		},
		{
			Name:         "quantization",
			Document:     "docs/quantization.md",
			Enabled:      true,
			Replacements: smokeReplacements,
			Suppressions: authSuppressions,
		},
		{
			Name:         "gguf",
			Document:     "docs/GGUF.md",
			Enabled:      true,
			Replacements: smokeReplacements,
			Suppressions: authSuppressions,
		},
		{
			Name:         "advanced",
			Document:     "docs/ADVANCED-USERS.md",
			Enabled:      true,
			Replacements: smokeReplacements,
			Suppressions: authSuppressions,
		},
		{
			Name:         "evaluation",
			Document:     "docs/evaluation.md",
			Enabled:      false,
			Replacements: smokeReplacements,
			Suppressions: authSuppressions,
		},
	}
}

type targetTable struct {
	targets []Target
}

func defaultTargetTable() *targetTable {
	return &targetTable{targets: builtinTargets()}
}

func (tt *targetTable) lookup(name string) (Target, bool) {
	for _, t := range tt.targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

func (tt *targetTable) enabled() []Target {
	var out []Target
	for _, t := range tt.targets {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

func (tt *targetTable) names() []string {
	names := make([]string, 0, len(tt.targets))
	for _, t := range tt.targets {
		names = append(names, t.Name)
	}
	return names
}

func (tt *targetTable) validate() error {
	if len(tt.targets) == 0 {
		return errors.New("target table is empty")
	}
	seen := make(map[string]struct{}, len(tt.targets))
	for _, t := range tt.targets {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("duplicate target %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

type configFile struct {
	Targets []Target `yaml:"targets"`
}

// loadTargetTable reads a YAML target table. The file replaces the built-in
// table entirely; unknown keys are rejected so typos surface as errors.
func loadTargetTable(path string) (*targetTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg configFile
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	table := &targetTable{targets: cfg.Targets}
	if err := table.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return table, nil
}
