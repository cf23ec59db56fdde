package profile

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option modifies a [Profiler] under construction.
type Option func(*Profiler)

// New returns a [Profiler] configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode sets the profiling mode. An unknown mode disables profiling.
func WithMode(mode string) Option {
	return func(p *Profiler) { p.Mode = mode }
}

// WithPath sets the output directory of profile files.
func WithPath(path string) Option {
	return func(p *Profiler) { p.Path = path }
}

// WithQuiet suppresses the messages printed when profiling starts and
// stops.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) { p.Quiet = quiet }
}

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Start begins profiling and returns the handle that ends it.
//
// If the pprof build tag or p.Mode are unset, Start returns a no-op
// implementation. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
