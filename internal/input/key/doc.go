// Package key provides key event types and parsing for editor input.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: identifies a keyboard key (editing keys, navigation keys, or runes)
//   - Modifier: represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers and timestamp
//
// # Key Specifications
//
// Bindings are written as specification strings and parsed with Parse:
//
//   - Simple keys: "a", "Enter", "Escape", "Space"
//   - With modifiers: "Ctrl+B", "Alt+1", "Shift+Left"
//   - Vim-style: "<C-b>", "<A-1>", "<S-Left>", "<CR>", "<Esc>"
//
// # The Space Key
//
// Terminals report the space bar either as a rune event carrying ' ' or as
// KeySpace. Event.IsSpace treats both the same way, which is what shortcut
// detection keys on.
package key
