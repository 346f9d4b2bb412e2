// Package content provides the structured rich-text document model.
//
// A Model is an ordered list of Blocks. Each Block carries a structural type
// (paragraph, heading, quote), its text, and a set of inline style ranges.
// Models and Blocks are immutable: every mutation in this package is a pure
// function that returns a new Model and leaves its input untouched. Blocks
// that a mutation does not touch are shared between the old and new Model.
//
// # Offsets
//
// All offsets count Unicode code points of a block's text, not bytes.
// Style ranges are half-open intervals [Start, End) with
// 0 <= Start < End <= len(text).
//
// # Style Ranges
//
// Ranges of the same style never overlap or touch; they are merged on every
// construction. Ranges of different styles may overlap freely. The slice
// returned by Block.Styles is ordered by style name, then start offset, so two
// blocks with the same styled characters always compare equal.
//
// # Errors
//
// Operations fail closed. An out-of-bounds range yields ErrInvalidRange and
// an unknown block key yields ErrUnknownBlock; in both cases the caller gets a
// nil Model and keeps the one it already had.
package content
