// Package event provides the synchronous notification bus of a keydraft
// session.
//
// Components publish Events on dot-separated topics such as
// "document.saved". Subscribers register a handler for a topic pattern;
// "document.*" matches one trailing segment and "**" matches everything.
// Publish calls every matching handler in subscription order on the
// caller's goroutine and returns once they have all run.
//
// A panicking handler does not take the session down: the panic is
// recovered, logged, and reported to Publish as a *PanicError.
package event
