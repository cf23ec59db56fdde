// Package profile provides optional runtime profiling for the dotcall
// command.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] behind the "pprof" build
// tag. Without the tag every operation is a no-op and [Modes] is empty.
//
//	go build -tags pprof .
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof). The dotcall command
// exposes the same settings as --pprof-mode and --pprof-dir; the default
// directory is the "pprof" subdirectory of the user cache directory.
//
// Analyze the output with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// When built with the tag, the package also imports [net/http/pprof], which
// registers HTTP handlers at /debug/pprof/ on the default mux.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
