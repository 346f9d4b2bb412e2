// Package style maps inline styles and block types to terminal attributes.
//
// A Table holds one Attributes value per inline style name and one
// BlockAttributes value per block type. Both vocabularies are open: any
// name can be registered, and names without an entry render plainly.
//
// Resolve layers the block's attributes first and the inline styles on
// top, in the order given, so "RED" over a header keeps the header bold.
package style
