// Package diag defines the diagnostic model shared by the toolchain phases
// (lexer, parser, checker, emitter) and the bridge driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Suggestion, Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable "TS<n>" form and a message
//     template (codes.go).
//   - Message – head message, already formatted.
//   - Chain – optional elaboration tree; Flatten joins it with a newline
//     convention chosen by the host.
//   - File / Primary – the source file and byte span the issue points at.
//     File is nil for option and program diagnostics.
//   - Notes – related locations.
//
// # Emitting diagnostics
//
// Phases report through a Reporter. BagReporter stores into a Bag, which
// supports sorting by (file, position), deduplication and merging. The
// checker reports through a DedupReporter so repeats never reach its bag.
//
// Package diag performs no IO and no rendering beyond FormatShort; the
// position-aware records handed back to the host are produced by
// internal/diagfmt.
package diag
