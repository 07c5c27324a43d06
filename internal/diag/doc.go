// Package diag defines the diagnostic model shared by the scanner, the
// grammar and the semantic passes.
//
// Diagnostic is the central record: severity, a numbered Code with a stable
// ID (LEX/SYN/SEM/IO/PRJ/OBS/FUT ranges), a message, the primary span and
// optional notes. Producers emit through a Reporter so they stay decoupled
// from storage; BagReporter collects into a Bag that supports sorting,
// deduplication and error counting.
//
// Package diag does no formatting; renderers live in internal/diagfmt.
//
// A compilation fails when its Bag has any SevError entry, even though the
// semantic pass keeps going after most errors to surface as many findings as
// possible in one run.
package diag
