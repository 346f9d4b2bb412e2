// Package selection provides the cursor and range location within a
// content model.
//
// A Selection is an immutable value: an anchor, where the selection started,
// and a focus, where the caret currently is, each expressed as a block key
// and a code point offset inside that block. When anchor and focus coincide
// the selection is a collapsed caret.
//
// Selections compare with ==. Operations that need document order (Start,
// End, IsBackward) take the content model the selection refers to.
package selection
