package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/dotcall/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Info("not shown")
	logger.Warn("call failed", slog.String("name", "sum"))

	// Output:
	// level=WARN msg="call failed" name=sum
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
	).With(slog.String("file", "doc.qd"))

	logger.Trace("cache lookup", slog.Bool("cache_hit", true))

	// Output:
	// {"level":"TRACE","msg":"cache lookup","file":"doc.qd","cache_hit":true}
}
