// Package trace records what the compiler is doing: one span per driver
// call, per pass (lex, parse, codegen) and per file in directory mode.
//
// Tracing is off unless a command is run with --trace:
//
//	unsure compile --trace=- --trace-level=phase main.uns
//
// The tracer travels in context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.ParentID(ctx))
//	defer span.End("")
//
// Events are written as text or NDJSON; a disabled tracer costs one
// interface call per span.
package trace
