package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faketool.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestToolExtractorArgumentContract(t *testing.T) {
	tool := writeTool(t, "#!/bin/sh\necho \"$@\"\n")
	body, err := toolExtractor{command: tool}.Extract(context.Background(), Request{
		Document: "docs/demo.md",
		Sections: true,
		Replacements: []Replacement{
			{Old: "llama3.1", New: "stories15M"},
			{Old: "-l 3", New: "-l 2"},
		},
		Suppressions: []string{"huggingface-cli", "HF_TOKEN"},
	})
	require.NoError(t, err)
	out := string(body)
	require.Contains(t, out, "--file docs/demo.md")
	require.Contains(t, out, "--create-sections")
	require.Contains(t, out, "--replace llama3.1:stories15M,-l 3:-l 2")
	require.Contains(t, out, "--suppress huggingface-cli,HF_TOKEN")
}

func TestToolExtractorOmitsEmptyRuleFlags(t *testing.T) {
	tool := writeTool(t, "#!/bin/sh\necho \"$@\"\n")
	body, err := toolExtractor{command: tool}.Extract(context.Background(), Request{Document: "demo.md"})
	require.NoError(t, err)
	out := string(body)
	require.NotContains(t, out, "--create-sections")
	require.NotContains(t, out, "--replace")
	require.NotContains(t, out, "--suppress")
}

func TestToolExtractorUsesStdoutVerbatim(t *testing.T) {
	tool := writeTool(t, "#!/bin/sh\nprintf 'echo from-tool\\nexit 0\\n'\n")
	body, err := toolExtractor{command: tool}.Extract(context.Background(), Request{Document: "demo.md"})
	require.NoError(t, err)
	require.Equal(t, "echo from-tool\nexit 0\n", string(body))
}

func TestToolExtractorSurfacesFailure(t *testing.T) {
	tool := writeTool(t, "#!/bin/sh\necho 'parse error' >&2\nexit 2\n")
	_, err := toolExtractor{command: tool}.Extract(context.Background(), Request{Document: "demo.md"})
	require.ErrorContains(t, err, "parse error")
}

func TestToolExtractorMissingCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-tool")
	_, err := toolExtractor{command: missing}.Extract(context.Background(), Request{Document: "demo.md"})
	require.Error(t, err)
}
