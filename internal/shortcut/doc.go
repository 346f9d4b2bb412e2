// Package shortcut maps typed trigger sequences to formatting commands.
//
// A Table is an ordered, immutable list of Rules. A Rule fires when its
// trigger is the entire text of a block before the caret and the user
// presses space: "#" then space turns the block into a heading, "*" then
// space turns on bold for what is typed next, and so on.
//
// Rules are tried longest trigger first, so "***" is checked before "**"
// and "**" before "*". The first rule that matches wins.
//
// A trigger only ever acts as a line prefix. Typing "#" or "*" in the
// middle of running text never reformats anything, because the caret must
// sit exactly len(trigger) code points from the start of the block.
package shortcut
