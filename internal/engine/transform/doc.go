// Package transform holds the pure editing functions of the engine.
//
// Every function takes a snapshot and returns the next snapshot together
// with a flag reporting whether anything changed. A function that cannot
// apply, because a key is stale or an offset is out of range, returns its
// input and false. Callers commit only when the flag is true, so a
// shortcut's trigger deletion and its formatting command always land as
// one revision.
package transform
