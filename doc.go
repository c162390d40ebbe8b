// # docrun
//
// `docrun` smoke-tests the shell commands embedded in a project's markdown
// documentation. CI invokes it with a target name; the tool extracts the
// fenced shell blocks from that target's document, rewrites them into a
// cheap test configuration, and runs the result with command tracing so the
// docs stay executable.
//
// Key capabilities:
//
//   - a per-target configuration record (document path, substitution pairs,
//     suppression markers, sections flag, enabled flag) instead of copied
//     per-target branches; `--config` loads a custom YAML table.
//   - a built-in goldmark extractor that honors `[skip default]` and
//     `[section]` region markers, plus `--tool` to delegate extraction to an
//     external markdown-to-script converter.
//   - literal substitutions for swapping expensive example invocations for
//     small smoke-test ones (e.g. `llama3.1` → `stories15M`).
//   - suppression markers that drop commands needing interactive
//     authentication (e.g. `huggingface-cli`, `HF_TOKEN`).
//   - a guaranteed-failing sentinel appended to every generated script, so
//     an empty or truncated extraction fails instead of passing silently.
//   - a Cobra-powered CLI with `list`, shell completion, and a `gen-docs`
//     helper for publishing the CLI reference itself.
//
// ## Usage
//
//	docrun [flags] <target>
//
// Examples:
//
//   - Smoke-test the README in the current checkout:
//
//     docrun readme
//
//   - Run every enabled target sequentially:
//
//     docrun all
//
//   - Generate without executing, against another checkout:
//
//     docrun --dry-run -C ../project quantization
//
//   - Use a project-local converter instead of the built-in extractor:
//
//     docrun --tool ./scripts/updown.py readme
//
// ## Targets
//
// A target names a documentation source. The built-in table covers `readme`,
// `quantization`, `gguf`, `advanced`, and `evaluation` (the last one ships
// disabled until its document runs clean; re-enable it from a config file).
// Unknown targets are an error that lists the valid set; running a disabled
// target logs a skip and exits 0.
//
// ## Generated scripts
//
// Each run writes `run-<target>.sh` into the working directory, prints it in
// full between separators for CI log auditability, and executes it via
// `bash -x`. The script's exit status becomes docrun's exit status. Scripts
// are overwritten on each run and left on disk afterwards for inspection.
//
// ## Region markers
//
// Documents steer extraction with markdown link-reference lines, which are
// invisible in rendered output:
//
//	[skip default]: begin
//	...commands excluded from extraction...
//	[skip default]: end
//
// When a target sets `sections: true`, only fenced blocks between
// `[section]: begin` and `[section]: end` are extracted.
package main
