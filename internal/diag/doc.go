// Package diag defines the error and diagnostic model shared by every phase.
//
// Phases of the pipeline stop at the first problem and return it as a
// *SyntaxError: a message plus the exact source position. Drivers turn that
// error into a Diagnostic, collect diagnostics of several files in a Bag, and
// hand the Bag to internal/diagfmt for rendering.
//
// Codes are grouped by phase:
//
//   - LEX1xxx  scanner
//   - SYN2xxx  expression and statement parser
//   - GEN3xxx  code generator (compiler defects, never user errors)
//   - IO4xxx   file access
//   - PRJ5xxx  project manifest
//
// InternalError is reserved for states the algorithms guarantee cannot happen;
// it is never rendered as a user syntax error.
package diag
