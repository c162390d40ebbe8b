package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// sentinelLine is appended as the unconditional last line of every generated
// script. The extractor terminates a non-empty body with exit 0, so the
// sentinel fires only when extraction produced nothing runnable or the
// script was truncated.
const sentinelLine = "exit 1"

var scriptSeparator = strings.Repeat("-", 72)

// assembleScript builds the on-disk script: header, extracted body, sentinel.
// Output is deterministic for a fixed target and body so repeated runs
// produce byte-identical scripts.
func assembleScript(target Target, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&buf, "# generated by docrun from %s\n", target.Document)
	buf.WriteString("set -e\n")
	buf.Write(body)
	if len(body) > 0 && !bytes.HasSuffix(body, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(sentinelLine + "\n")
	return buf.Bytes()
}

// writeScript overwrites the target's script in dir and returns its path.
// Scripts are deliberately left on disk after execution for inspection.
func writeScript(dir string, target Target, content []byte) (string, error) {
	path := filepath.Join(dir, target.ScriptName())
	if err := os.WriteFile(path, content, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// printScript emits the full script between separators so CI logs record
// exactly what is about to run.
func printScript(w io.Writer, name string, content []byte) {
	fmt.Fprintln(w, scriptSeparator)
	fmt.Fprintln(w, name)
	fmt.Fprintln(w, scriptSeparator)
	fmt.Fprint(w, string(content))
	if !bytes.HasSuffix(content, []byte("\n")) {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, scriptSeparator)
}
