package log

import "io"

// Option modifies the configuration of a [Logger] under construction.
type Option func(*config)

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithOutput sets the destination of log records. A nil writer discards
// them.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel sets the minimum level of records that are written.
func WithLevel(level Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat sets the encoding of log records.
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithTimeLayout sets the layout of timestamps.
//
// The layout may name a layout of the [time] package, such as "RFC3339" or
// "Kitchen", or be a custom layout for [time.Time.Format]. A blank layout
// or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return func(c *config) {
		c.formatTime = format
	}
}

// WithCaller includes the source location of the logging call in each
// record.
func WithCaller(enable bool) Option {
	return func(c *config) {
		c.caller = enable
	}
}

// WithPretty styles text records with colors when the output is a
// terminal.
func WithPretty(enable bool) Option {
	return func(c *config) {
		c.pretty = enable
	}
}
