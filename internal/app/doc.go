// Package app wires a keydraft session together.
//
// An Application owns the configuration, logger, document store, event
// bus, style table and editing engine. Open loads the stored document,
// falling back to an empty one when nothing usable is stored. HandleKey
// maps key events to engine operations, and Run drives a terminal screen
// until the user quits or the context is cancelled.
//
// Key bindings:
//
//	Space           shortcut detection, or a literal space
//	Enter           split block
//	Backspace/Del   delete backward/forward
//	Arrows/Home/End move; with Shift, extend the selection
//	Ctrl+B/I/U      toggle BOLD / ITALIC / UNDERLINE
//	Alt+1 / Alt+2   toggle header-one / header-two
//	Alt+Q / Alt+C   toggle blockquote / code-block
//	Ctrl+S          save
//	Ctrl+Q, Esc     quit
package app
