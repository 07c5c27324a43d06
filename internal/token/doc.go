// Package token defines the lexical classes of HLSL source.
// Invariants:
//   - Token.Text is the exact source spelling; Token.Span covers it.
//   - Numeric type keywords are laid out so that vector and matrix kinds can
//     be decoded arithmetically (see Numeric).
//   - half, min16float and friends are accepted at full precision and lexed
//     as the corresponding float/int/uint kinds.
//   - A handful of keyword classes may also be read as identifiers
//     (IdentifierSpelling); the grammar decides which reading applies.
package token
