// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Warn("call failed", slog.String("name", "sum"))
//
// # Configuration
//
// Configure a logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level logger writes to standard error and is reconfigured
// with [Config]. [Logger.Wrap] derives a new logger from an existing one.
//
// # Adding Attributes
//
// Attributes added with [Logger.With] are included in every subsequent
// record:
//
//	logger = logger.With(slog.String("file", "doc.qd"))
//	logger.Info("compiled") // includes file=doc.qd
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware variants use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn] and [LevelError]. Messages below the configured
// level are discarded. The default is [LevelWarn].
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. Text output is styled with colors when [WithPretty] is
// enabled and the output is a terminal.
package log
