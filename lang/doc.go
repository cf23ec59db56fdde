// Package lang implements the function-call expression language embedded in
// dotcall Markdown documents.
//
// A call starts with '.' followed by a function name and zero or more
// arguments in braces. Arguments may be named, calls may be chained with
// '::', and a call that ends its line may take an indented body:
//
//	.sum {2} {3}
//	.sum {2} {1}::subtract {1}
//	.function {greet}
//	  to from?:
//	  Hello .to from .from
//
// # Values
//
// Argument text stays [Dynamic] until a parameter asks for a specific
// [Kind]; it is then coerced, e.g. to a [Number], a [Size] or a [Color].
// Calls nested inside an argument are evaluated first and their results are
// composed with the surrounding text.
//
// # Scopes
//
// Functions live in scopes held by an [Env]. User functions and variables
// defined with .function and .var are registered in the scope of the call
// that defines them. A [Lambda] captures the scope it was created in.
//
// # Expansion
//
// [ParseDocument] turns source text into a tree with [CallNode]
// placeholders. [Context.Compile] executes each placeholder once and
// replaces it with the content produced. A failed call becomes an
// [ErrorBox] unless the environment is strict, in which case the error
// aborts compilation.
package lang
