package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/dotcall/log"
)

// Scope identifies a frame of an [Env]. Frames are stored in a single arena
// and refer to their parent by index.
type Scope int

const (
	noScope   Scope = -1
	rootScope Scope = 0
)

// frame is a function registry with a link to its enclosing frame. Lambda
// invocation frames also see the functions defined directly in the frame
// of their caller.
type frame struct {
	funcs    map[string]*Function
	parent   Scope
	caller   Scope
	captured bool
}

func (f *frame) define(fn *Function) {
	if f.funcs == nil {
		f.funcs = make(map[string]*Function)
	}

	f.funcs[fn.Name] = fn
}

// Env is the execution environment of a document: the scope arena, the
// document type, and compilation settings. An Env is not safe for
// concurrent use.
type Env struct {
	frames       []frame
	once         map[string]struct{}
	expanded     map[*CallNode][]Node
	logger       log.Logger
	maxDepth     int
	snippetLines int
	docType      DocumentType
	strict       bool
}

// NewEnv creates an environment whose root scope holds the given
// functions.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		frames:   []frame{{parent: noScope, caller: noScope}},
		once:     make(map[string]struct{}),
		expanded: make(map[*CallNode][]Node),
	}

	applyDefaults(e)
	applyOptions(e, opts...)

	return e
}

// Root returns a context evaluating in the root scope.
func (e *Env) Root(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Context{ctx: ctx, env: e, scope: rootScope}
}

// Strict reports whether call failures abort expansion.
func (e *Env) Strict() bool { return e.strict }

// DocumentType returns the type of the document being compiled.
func (e *Env) DocumentType() DocumentType { return e.docType }

// SetDocumentType changes the type of the document being compiled.
func (e *Env) SetDocumentType(t DocumentType) { e.docType = t }

// Logger returns the logger used to trace execution.
func (e *Env) Logger() log.Logger { return e.logger }

// Once reports whether key is being claimed for the first time.
func (e *Env) Once(key string) bool {
	if _, ok := e.once[key]; ok {
		return false
	}

	e.once[key] = struct{}{}

	return true
}

// Functions returns the functions visible from the root scope, sorted by
// name.
func (e *Env) Functions() []*Function {
	root := e.frames[rootScope].funcs
	out := make([]*Function, 0, len(root))

	for _, name := range slices.Sorted(maps.Keys(root)) {
		out = append(out, root[name])
	}

	return out
}

// Names returns the names of the functions visible from the root scope.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.frames[rootScope].funcs))
}

// Frames returns the number of frames currently held by the arena.
func (e *Env) Frames() int { return len(e.frames) }

func (e *Env) fork(parent, caller Scope) Scope {
	e.frames = append(e.frames, frame{parent: parent, caller: caller})

	return Scope(len(e.frames) - 1)
}

// release drops s if it is the newest frame and no lambda captured it.
func (e *Env) release(s Scope) {
	if int(s) == len(e.frames)-1 && s != rootScope && !e.frames[s].captured {
		e.frames[s] = frame{}
		e.frames = e.frames[:s]
	}
}

func (e *Env) lookup(s Scope, name string) (*Function, Scope, bool) {
	for cur := s; cur != noScope; cur = e.frames[cur].parent {
		f := &e.frames[cur]
		if fn, ok := f.funcs[name]; ok {
			return fn, cur, true
		}

		if f.caller != noScope {
			if fn, ok := e.frames[f.caller].funcs[name]; ok {
				return fn, f.caller, true
			}
		}
	}

	return nil, noScope, false
}

// Context is the state a call executes in: an environment, the current
// scope, and the nesting depth. Native functions receive the Context of
// their call site.
type Context struct {
	ctx   context.Context
	env   *Env
	scope Scope
	depth int
}

// Env returns the environment of c.
func (c *Context) Env() *Env { return c.env }

// Scope returns the current scope.
func (c *Context) Scope() Scope { return c.scope }

// Context returns the Go context of the compilation.
func (c *Context) Context() context.Context { return c.ctx }

// DocumentType returns the type of the document being compiled.
func (c *Context) DocumentType() DocumentType { return c.env.docType }

// Logger returns the logger used to trace execution.
func (c *Context) Logger() log.Logger { return c.env.logger }

// Lookup resolves name in the current scope chain, innermost first.
func (c *Context) Lookup(name string) (*Function, bool) {
	fn, _, ok := c.env.lookup(c.scope, name)

	return fn, ok
}

// Define registers fn in the current scope, shadowing outer definitions.
func (c *Context) Define(fn *Function) {
	c.env.frames[c.scope].define(fn)

	c.env.logger.TraceContext(c.ctx, "define",
		slog.String("name", fn.Name),
		slog.Int("scope", int(c.scope)))
}

// Assign replaces the definition of fn.Name in the scope that owns it, or
// defines it in the current scope if no scope does.
func (c *Context) Assign(fn *Function) {
	_, owner, ok := c.env.lookup(c.scope, fn.Name)
	if !ok {
		c.Define(fn)

		return
	}

	c.env.frames[owner].define(fn)

	c.env.logger.TraceContext(c.ctx, "assign",
		slog.String("name", fn.Name),
		slog.Int("scope", int(owner)))
}

// Fork returns a context evaluating in a new child scope of c.
func (c *Context) Fork() *Context {
	return c.at(c.env.fork(c.scope, noScope))
}

// Release discards the scope of c once it is no longer needed. Scopes
// captured by lambdas are kept.
func (c *Context) Release() { c.env.release(c.scope) }

// capture marks the current scope as referenced by a lambda.
func (c *Context) capture() Scope {
	c.env.frames[c.scope].captured = true

	return c.scope
}

func (c *Context) at(s Scope) *Context {
	return &Context{ctx: c.ctx, env: c.env, scope: s, depth: c.depth}
}
