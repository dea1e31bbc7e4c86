// Package inspect parses the human-readable report printed by gst-inspect-1.0
// into structured element records.
//
// The report has no formal grammar: it is column-aligned text, optionally
// prefixed with "<element>: " on every line (--print-all), with sections
// identified by a fixed set of header markers. Parsing is best effort and never
// fails; anything unrecognised is skipped and the affected fields keep their
// zero values.
//
// Key pieces:
//   - Segment/Chunks: split a multi-element dump into per-element chunks
//   - ExtractSection: pull one named section out of a chunk
//   - Parser.ParseElement: factory details plus property and pad template
//     blocks, each rebuilt by a small line-driven state machine
//   - FlagTokens: the locale-dependent words used on property "flags:" lines
//
// This package has no gstcatalog-specific dependencies and performs no I/O.
package inspect
