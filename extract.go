package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Request is the conversion request handed to an Extractor: which document
// to read and how to rewrite what it finds.
type Request struct {
	Document     string
	Sections     bool
	Replacements []Replacement
	Suppressions []string
}

// Extractor converts a markdown document into a runnable shell script body.
type Extractor interface {
	Extract(ctx context.Context, req Request) ([]byte, error)
}

// Region markers are markdown link-reference definitions, so rendered docs
// do not show them.
const (
	skipBegin    = "[skip default]: begin"
	skipEnd      = "[skip default]: end"
	sectionBegin = "[section]: begin"
	sectionEnd   = "[section]: end"
)

var shellLanguages = map[string]bool{
	"bash":  true,
	"sh":    true,
	"shell": true,
	"zsh":   true,
}

// markdownExtractor is the built-in extraction pipeline: filter marked
// regions line by line, parse the rest with goldmark, and keep the fenced
// code blocks whose info string names a shell.
type markdownExtractor struct{}

func (markdownExtractor) Extract(ctx context.Context, req Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source, err := os.ReadFile(req.Document)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	filtered := filterRegions(source, req.Sections)
	blocks := collectShellBlocks(filtered)
	return assembleBody(req, blocks), nil
}

// filterRegions drops lines inside [skip default] regions and, when sections
// mode is on, lines outside [section] regions. An unterminated region
// extends to end of file. Marker lines themselves never survive.
func filterRegions(source []byte, sections bool) []byte {
	lines := strings.Split(string(source), "\n")
	kept := make([]string, 0, len(lines))
	skipping := false
	inSection := !sections
	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case skipBegin:
			skipping = true
			continue
		case skipEnd:
			skipping = false
			continue
		case sectionBegin:
			if sections {
				inSection = true
			}
			continue
		case sectionEnd:
			if sections {
				inSection = false
			}
			continue
		}
		if skipping || !inSection {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n"))
}

type shellBlock struct {
	lines []string
}

func collectShellBlocks(source []byte) []shellBlock {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	var blocks []shellBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !shellLanguages[string(fence.Language(source))] {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		for i := 0; i < fence.Lines().Len(); i++ {
			seg := fence.Lines().At(i)
			buf.Write(seg.Value(source))
		}
		blocks = append(blocks, shellBlock{lines: splitCommandLines(buf.String())})
		return ast.WalkContinue, nil
	})
	return blocks
}

func splitCommandLines(block string) []string {
	block = strings.TrimRight(block, "\n")
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}

// assembleBody turns the collected blocks into a script body: suppressed
// lines are dropped, replacements are applied in order over the whole text,
// and a trailing exit 0 is emitted only when at least one command survived.
// An empty body therefore falls through to the sentinel the dispatcher
// appends, so a broken extraction cannot report success.
func assembleBody(req Request, blocks []shellBlock) []byte {
	var buf bytes.Buffer
	commands := 0
	for i, block := range blocks {
		kept := make([]string, 0, len(block.lines))
		for _, line := range block.lines {
			if suppressed(line, req.Suppressions) {
				continue
			}
			kept = append(kept, line)
			if strings.TrimSpace(line) != "" {
				commands++
			}
		}
		if len(kept) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "# %s: code block %d\n", req.Document, i+1)
		for _, line := range kept {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	body := buf.String()
	for _, rep := range req.Replacements {
		body = strings.ReplaceAll(body, rep.Old, rep.New)
	}
	if commands > 0 {
		body += "exit 0\n"
	}
	return []byte(body)
}

func suppressed(line string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
