// Package token defines lexical token kinds.
// Invariants:
//   - Token.Text is a slice of the original source; for string literals it
//     includes the quotes.
//   - Token.Span matches Text exactly.
//   - "as", "from", "declare" and built-in type names are identifiers; the
//     parser recognises them by text.
package token
