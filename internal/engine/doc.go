// Package engine owns the editing session of a keydraft document.
//
// The engine package is the facade over the pure editing packages:
//
//   - content: blocks, style ranges and invariant-preserving mutations
//   - selection: anchor/focus value type
//   - snapshot: immutable (content, selection, inline override, revision)
//   - transform: snapshot-to-snapshot editing functions
//
// An Engine holds exactly one current snapshot. Every editing call runs a
// transform against it and commits the result in one step, so observers
// never see a shortcut's trigger removed without its formatting applied.
//
// # Thread Safety
//
// All Engine operations are safe for concurrent use. Reads take a shared
// lock; commits are serialized. The rule table can be swapped while the
// session runs, which is how configuration reloads reach the engine.
//
// # Basic Usage
//
//	e := engine.New()
//	e.InsertText("#")
//	e.HandleSpace() // the block becomes header-one, the "#" is gone
//	e.InsertText("Title")
//
//	snap := e.Snapshot()
//	b, _ := snap.FocusBlock()
//	fmt.Println(b.Type(), b.Text()) // header-one Title
//
// # Snapshots
//
// Snapshots are immutable values. Keep the ones returned by Snapshot to
// build an undo stack outside the engine; the engine itself keeps no
// history.
package engine
