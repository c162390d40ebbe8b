package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuiltinTable(t *testing.T) {
	table := defaultTargetTable()
	require.Equal(t, []string{"readme", "quantization", "gguf", "advanced", "evaluation"}, table.names())
	require.NoError(t, table.validate())

	readme, ok := table.lookup("readme")
	require.True(t, ok)
	require.True(t, readme.Sections)
	require.True(t, readme.Enabled)
	require.Equal(t, "README.md", readme.Document)
	require.Equal(t, smokeReplacements, readme.Replacements)
	require.Equal(t, authSuppressions, readme.Suppressions)

	evaluation, ok := table.lookup("evaluation")
	require.True(t, ok)
	require.False(t, evaluation.Enabled)

	require.Len(t, table.enabled(), 4)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := defaultTargetTable().lookup("bogus")
	require.False(t, ok)
}

func TestScriptName(t *testing.T) {
	require.Equal(t, "run-readme.sh", Target{Name: "readme"}.ScriptName())
}

func TestLoadTargetTable(t *testing.T) {
	path := writeConfig(t, `
targets:
  - name: demo
    document: demo.md
    sections: true
    enabled: true
    replace:
      - old: "llama3.1"
        new: "stories15M"
    suppress: ["huggingface-cli"]
  - name: other
    document: docs/other.md
    enabled: false
`)
	table, err := loadTargetTable(path)
	require.NoError(t, err)
	require.Equal(t, []string{"demo", "other"}, table.names())

	demo, ok := table.lookup("demo")
	require.True(t, ok)
	require.True(t, demo.Sections)
	require.Equal(t, []Replacement{{Old: "llama3.1", New: "stories15M"}}, demo.Replacements)
	require.Equal(t, []string{"huggingface-cli"}, demo.Suppressions)
	require.Len(t, table.enabled(), 1)
}

func TestLoadTargetTableRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
targets:
  - name: demo
    document: demo.md
    substitutions: []
`)
	_, err := loadTargetTable(path)
	require.Error(t, err)
}

func TestLoadTargetTableRejectsDuplicateNames(t *testing.T) {
	path := writeConfig(t, `
targets:
  - name: demo
    document: a.md
  - name: demo
    document: b.md
`)
	_, err := loadTargetTable(path)
	require.ErrorContains(t, err, "duplicate target")
}

func TestLoadTargetTableRejectsMissingDocument(t *testing.T) {
	path := writeConfig(t, `
targets:
  - name: demo
`)
	_, err := loadTargetTable(path)
	require.Error(t, err)
}

func TestLoadTargetTableRejectsReservedName(t *testing.T) {
	path := writeConfig(t, `
targets:
  - name: all
    document: a.md
`)
	_, err := loadTargetTable(path)
	require.ErrorContains(t, err, "reserved")
}

func TestLoadTargetTableRejectsEmptyTable(t *testing.T) {
	path := writeConfig(t, "targets: []\n")
	_, err := loadTargetTable(path)
	require.ErrorContains(t, err, "empty")
}

func TestLoadTargetTableMissingFile(t *testing.T) {
	_, err := loadTargetTable(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestTargetValidateRequiresReplacementOld(t *testing.T) {
	target := Target{
		Name:         "demo",
		Document:     "demo.md",
		Replacements: []Replacement{{New: "stories15M"}},
	}
	require.ErrorContains(t, target.Validate(), "old string is required")
}
