package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// toolExtractor delegates conversion to an external markdown-to-script
// utility. The tool is invoked as
//
//	<command> --file <doc> [--create-sections] [--replace old:new,...] [--suppress m,...]
//
// and must print the generated script body on stdout.
type toolExtractor struct {
	command string
}

func (t toolExtractor) Extract(ctx context.Context, req Request) ([]byte, error) {
	args := []string{"--file", req.Document}
	if req.Sections {
		args = append(args, "--create-sections")
	}
	if len(req.Replacements) > 0 {
		pairs := make([]string, 0, len(req.Replacements))
		for _, rep := range req.Replacements {
			pairs = append(pairs, rep.Old+":"+rep.New)
		}
		args = append(args, "--replace", strings.Join(pairs, ","))
	}
	if len(req.Suppressions) > 0 {
		args = append(args, "--suppress", strings.Join(req.Suppressions, ","))
	}
	cmd := exec.CommandContext(ctx, t.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("conversion tool %s: %w: %s", t.command, err, msg)
		}
		return nil, fmt.Errorf("conversion tool %s: %w", t.command, err)
	}
	return stdout.Bytes(), nil
}
