// Package cli contains the command line interface for dotcall.
//
// # Usage
//
// Documents are compiled by default, so both of these are equivalent:
//
//	dotcall report.qd
//	dotcall compile --format=html report.qd
//
// Other commands evaluate a single expression, list the available
// functions, or start an interactive session:
//
//	dotcall eval '.sum {1} {2}'
//	dotcall functions color
//	dotcall repl --lib ~/.local/share/dotcall
//
// # Libraries
//
// Library documents are compiled before the input so that the functions
// they declare are callable from it. Libraries are named with --lib or the
// DOTCALL_PATH environment variable, a list of files and directories
// separated like PATH. Every .qd and .md file of a directory is loaded.
//
// # Configuration
//
// Flag defaults are read from config.yaml (or config.json) in the user
// configuration directory. The init command writes the current global flag
// values to that file. Nested mappings are flattened with hyphens:
//
//	log:
//	  level: info
//	  pretty: false
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (kitchen, RFC3339, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o dotcall .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
