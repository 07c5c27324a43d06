// Package trace records what the driver and the front-end passes are doing
// while a shader compiles. It is the compiler's operational log:
// diagnostics about the shader never go here, only events about the
// compiler itself.
//
//	hlslc diag --trace=- --trace-level=detail shaders/
//
// Events carry a Scope. Coarse scopes are emitted at low levels:
//
//   - ScopeDriver: one CLI command
//   - ScopeFile: one translation unit
//   - ScopePass: lex, parse, sema of one unit
//   - ScopeFunction: one function body inside sema
//
// Storage is either a stream (written as events arrive), a ring buffer that
// keeps the tail for a crash dump, or both.
//
// The tracer travels through context.Context:
//
//	ctx = trace.WithTracer(ctx, t)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, 0)
//	defer span.End("")
package trace
