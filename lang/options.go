package lang

import "github.com/ardnew/dotcall/log"

// DefaultMaxDepth is the default maximum depth of nested calls.
// Users may modify this before creating an [Env] to change the default.
var DefaultMaxDepth = 100

// DefaultSnippetLines is the number of source lines shown in an error box
// before the rest is folded.
var DefaultSnippetLines = 10

// Option configures an [Env].
type Option func(*Env)

// WithStrict makes every call failure abort expansion instead of rendering
// an error box.
func WithStrict(strict bool) Option {
	return func(e *Env) {
		e.strict = strict
	}
}

// WithDocumentType sets the type of the document being compiled.
func WithDocumentType(t DocumentType) Option {
	return func(e *Env) {
		e.docType = t
	}
}

// WithMaxDepth sets the maximum depth of nested calls.
func WithMaxDepth(depth int) Option {
	return func(e *Env) {
		e.maxDepth = depth
	}
}

// WithSnippetLines sets how many source lines an error box shows.
func WithSnippetLines(n int) Option {
	return func(e *Env) {
		e.snippetLines = n
	}
}

// WithLogger sets the structured logger used to trace execution.
func WithLogger(logger log.Logger) Option {
	return func(e *Env) {
		e.logger = logger
	}
}

// WithFunctions registers functions in the root scope.
func WithFunctions(fns ...*Function) Option {
	return func(e *Env) {
		for _, fn := range fns {
			e.frames[rootScope].define(fn)
		}
	}
}

// Library is a named set of native functions.
type Library struct {
	Name      string
	Functions []*Function
}

// WithLibrary registers the functions of each library in the root scope.
func WithLibrary(libs ...Library) Option {
	return func(e *Env) {
		for _, lib := range libs {
			WithFunctions(lib.Functions...)(e)
		}
	}
}

func applyDefaults(e *Env) {
	e.maxDepth = DefaultMaxDepth
	e.snippetLines = DefaultSnippetLines
	e.docType = DocumentPlain
}

func applyOptions(e *Env, opts ...Option) {
	for _, opt := range opts {
		opt(e)
	}
}
